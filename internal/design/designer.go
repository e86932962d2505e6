// Package design is the "Context Design" phase: it scores a retrieval
// context for quality and distills it into processing hints for generation.
// Design is fully deterministic; the same context always produces the same
// score and hints.
package design

import (
	"strings"

	"github.com/jonathan/seo-assistant/internal/types"
)

// Quality score weights. Source relevance carries the most weight; the
// remaining components measure how much expansion signal retrieval found.
// Targets are the counts at which a component saturates.
const (
	relevanceWeight     = 0.3
	relatedWeight       = 0.2
	opportunitiesWeight = 0.2
	questionsWeight     = 0.2
	intentWeight        = 0.1

	relatedTarget       = 10
	opportunitiesTarget = 8
	questionsTarget     = 8
)

// Hint sizing.
const (
	maxFocusAreas      = 3
	maxKeyQuestions    = 3
	maxClusterKeywords = 5
)

// Designer computes quality scores and processing hints.
type Designer struct{}

// NewDesigner returns a designer with the standard weights.
func NewDesigner() *Designer {
	return &Designer{}
}

// Design enriches the context in place with a quality score and processing
// hints, and returns it for convenience.
func (d *Designer) Design(rc *types.RetrievalContext) *types.RetrievalContext {
	rc.QualityScore = d.Score(rc)
	rc.ProcessingHints = &types.ProcessingHints{
		FocusAreas:           head(rc.ContentOpportunities, maxFocusAreas),
		KeyQuestions:         head(rc.UserQuestions, maxKeyQuestions),
		SemanticCluster:      head(clusterKeywords(rc.RelatedKeywords), maxClusterKeywords),
		SuggestedContentType: SuggestContentType(rc.Keyword),
	}
	return rc
}

// Score rates the richness of a retrieval context in [0, 1]. Each component
// is normalized against its target before weighting, so a context with ten
// related keywords scores that component fully even if more were found.
func (d *Designer) Score(rc *types.RetrievalContext) float64 {
	score := relevanceWeight * rc.MeanSourceRelevance()
	score += relatedWeight * saturate(len(rc.RelatedKeywords), relatedTarget)
	score += opportunitiesWeight * saturate(len(rc.ContentOpportunities), opportunitiesTarget)
	score += questionsWeight * saturate(len(rc.UserQuestions), questionsTarget)
	if rc.SearchIntent != "" {
		score += intentWeight
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// SuggestContentType picks a content type from surface patterns in the
// keyword. The generator treats it as a hint; the model may still choose
// another type within the allowed set.
func SuggestContentType(keyword string) types.ContentType {
	k := " " + strings.ToLower(strings.TrimSpace(keyword)) + " "
	switch {
	case strings.Contains(k, " how to ") || strings.HasPrefix(k, " how to"):
		return types.ContentHowTo
	case strings.Contains(k, " vs ") || strings.Contains(k, " versus ") || strings.Contains(k, " compared "):
		return types.ContentComparison
	case strings.Contains(k, " best ") || strings.Contains(k, " top "):
		return types.ContentListicle
	case strings.Contains(k, " review ") || strings.Contains(k, " reviews "):
		return types.ContentReview
	default:
		return types.ContentGuide
	}
}

func saturate(count, target int) float64 {
	if target <= 0 || count >= target {
		return 1.0
	}
	if count <= 0 {
		return 0.0
	}
	return float64(count) / float64(target)
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// clusterKeywords collapses near-duplicate related keywords (plural forms
// and shared stems) to one representative each, preserving first-seen order.
func clusterKeywords(keywords []string) []string {
	var representatives []string
	for _, candidate := range keywords {
		duplicate := false
		for _, kept := range representatives {
			if nearDuplicate(candidate, kept) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			representatives = append(representatives, candidate)
		}
	}
	return representatives
}

// nearDuplicate treats two terms as one concept when they reduce to the
// same stem, e.g. "ranking" and "rankings".
func nearDuplicate(a, b string) bool {
	return stem(a) == stem(b)
}

func stem(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	for _, suffix := range []string{"ings", "ing", "es", "s"} {
		if trimmed := strings.TrimSuffix(term, suffix); trimmed != term && len(trimmed) >= 4 {
			return trimmed
		}
	}
	return term
}
