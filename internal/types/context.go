// Package types provides type definitions for structured data used throughout the seo-assistant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// SearchIntent classifies what a searcher is trying to accomplish
type SearchIntent string

// Search intent classifications
const (
	IntentInformational SearchIntent = "informational"
	IntentNavigational  SearchIntent = "navigational"
	IntentTransactional SearchIntent = "transactional"
	IntentCommercial    SearchIntent = "commercial"
)

// KnowledgeSource is a single ranked reference from the knowledge source
type KnowledgeSource struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Snippet        string  `json:"snippet,omitempty"`
	RelevanceScore float64 `json:"relevance_score"` // 0.0-1.0, higher = more relevant
}

// ProcessingHints carries the designer's guidance for the generation phase
type ProcessingHints struct {
	FocusAreas           []string    `json:"focus_areas"`
	KeyQuestions         []string    `json:"key_questions"`
	SemanticCluster      []string    `json:"semantic_cluster"`
	SuggestedContentType ContentType `json:"suggested_content_type,omitempty"`
}

// RetrievalContext is the structured bundle of retrieval signals for a keyword.
// QualityScore is computed by the context designer and must be recomputed
// whenever any of the input fields change.
type RetrievalContext struct {
	Keyword              string            `json:"keyword"`
	Goal                 string            `json:"goal,omitempty"`
	SearchIntent         SearchIntent      `json:"search_intent"`
	IntentExplanation    string            `json:"intent_explanation,omitempty"`
	RelatedKeywords      []string          `json:"related_keywords"`
	ContentOpportunities []string          `json:"content_opportunities"`
	UserQuestions        []string          `json:"user_questions"`
	KnowledgeSources     []KnowledgeSource `json:"knowledge_sources"`
	QualityScore         float64           `json:"quality_score"`
	ProcessingHints      *ProcessingHints  `json:"processing_hints,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

// NormalizeKeyword lowercases, trims, and collapses internal whitespace.
// Cache entries and bulk result keys are always keyed by the normalized form.
func NormalizeKeyword(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}

// MeanSourceRelevance returns the mean relevance score across knowledge
// sources, or 0 when there are none.
func (c *RetrievalContext) MeanSourceRelevance() float64 {
	if len(c.KnowledgeSources) == 0 {
		return 0
	}
	var sum float64
	for _, s := range c.KnowledgeSources {
		sum += s.RelevanceScore
	}
	return sum / float64(len(c.KnowledgeSources))
}
