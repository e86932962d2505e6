package generation

import (
	"fmt"
	"strings"

	"github.com/jonathan/seo-assistant/internal/types"
)

// formatContext renders a retrieval context as the prompt block the model
// sees. Sections with no content are omitted to keep prompts tight.
func formatContext(rc *types.RetrievalContext) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PRIMARY KEYWORD: %s\n", rc.Keyword)
	if rc.Goal != "" {
		fmt.Fprintf(&sb, "CONTENT GOAL: %s\n", rc.Goal)
	}
	if rc.SearchIntent != "" {
		fmt.Fprintf(&sb, "SEARCH INTENT: %s (%s)\n", rc.SearchIntent, rc.IntentExplanation)
	}

	if hints := rc.ProcessingHints; hints != nil {
		if hints.SuggestedContentType != "" {
			fmt.Fprintf(&sb, "SUGGESTED CONTENT TYPE: %s\n", hints.SuggestedContentType)
		}
		if len(hints.FocusAreas) > 0 {
			sb.WriteString("\nFOCUS AREAS:\n")
			writeList(&sb, hints.FocusAreas)
		}
	}
	if len(rc.RelatedKeywords) > 0 {
		fmt.Fprintf(&sb, "\nRELATED KEYWORDS: %s\n", strings.Join(rc.RelatedKeywords, ", "))
	}
	if len(rc.ContentOpportunities) > 0 {
		sb.WriteString("\nCONTENT OPPORTUNITIES:\n")
		writeList(&sb, rc.ContentOpportunities)
	}
	if len(rc.UserQuestions) > 0 {
		sb.WriteString("\nUSER QUESTIONS TO ANSWER:\n")
		writeList(&sb, rc.UserQuestions)
	}
	if len(rc.KnowledgeSources) > 0 {
		sb.WriteString("\nREFERENCE MATERIAL:\n")
		for _, src := range rc.KnowledgeSources {
			fmt.Fprintf(&sb, "- %s: %s\n", src.Title, src.Snippet)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func writeList(sb *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
