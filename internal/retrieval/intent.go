package retrieval

import (
	"fmt"
	"strings"

	"github.com/jonathan/seo-assistant/internal/types"
)

var (
	transactionalMarkers = []string{"buy", "price", "pricing", "cheap", "discount", "deal", "purchase", "order", "cost", "coupon"}
	commercialMarkers    = []string{"best", "top", "review", "reviews", "vs", "versus", "compare", "comparison", "alternative", "alternatives"}
	navigationalMarkers  = []string{"login", "log in", "sign in", "signup", "official", "website", "download", "homepage"}
)

// classifyIntent maps a keyword to a search intent using surface markers,
// with an explanation of which marker fired. Keywords without a recognized
// marker default to informational intent.
func classifyIntent(keyword string) (types.SearchIntent, string) {
	normalized := " " + types.NormalizeKeyword(keyword) + " "

	if marker := firstMarker(normalized, transactionalMarkers); marker != "" {
		return types.IntentTransactional, fmt.Sprintf("contains purchase signal %q", marker)
	}
	if marker := firstMarker(normalized, commercialMarkers); marker != "" {
		return types.IntentCommercial, fmt.Sprintf("contains comparison signal %q", marker)
	}
	if marker := firstMarker(normalized, navigationalMarkers); marker != "" {
		return types.IntentNavigational, fmt.Sprintf("contains destination signal %q", marker)
	}
	return types.IntentInformational, "no transactional, commercial, or navigational signal; defaulting to informational"
}

func firstMarker(paddedKeyword string, markers []string) string {
	for _, marker := range markers {
		if strings.Contains(paddedKeyword, " "+marker+" ") {
			return marker
		}
	}
	return ""
}
