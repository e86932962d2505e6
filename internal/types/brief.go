//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ContentType classifies the kind of artifact a brief plans for.
// The variant set is closed; downstream code switches exhaustively over it.
type ContentType string

// Content type classifications
const (
	ContentGuide      ContentType = "guide"
	ContentListicle   ContentType = "listicle"
	ContentComparison ContentType = "comparison"
	ContentHowTo      ContentType = "how_to"
	ContentNews       ContentType = "news"
	ContentReview     ContentType = "review"
)

// ValidContentType reports whether ct is one of the closed variant set.
func ValidContentType(ct ContentType) bool {
	switch ct {
	case ContentGuide, ContentListicle, ContentComparison, ContentHowTo, ContentNews, ContentReview:
		return true
	}
	return false
}

// ContentBrief is a generated content plan for a single keyword.
// It is derived from exactly one RetrievalContext and immutable once created.
type ContentBrief struct {
	Keyword         string      `json:"keyword"`
	Title           string      `json:"title"`
	MetaDescription string      `json:"meta_description"`
	ContentType     ContentType `json:"content_type"`
	WordCountTarget int         `json:"word_count_target"`
	Outline         []string    `json:"outline"`
	CallToAction    string      `json:"call_to_action"`
	CreatedAt       time.Time   `json:"created_at"`
}
