// Package generation turns designed retrieval contexts into content
// artifacts. Briefs come from a single structured model call; articles are
// written section by section from the brief's outline, so a failed section
// is attributable to its heading.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/prompts"
	"github.com/jonathan/seo-assistant/internal/schemas"
	"github.com/jonathan/seo-assistant/internal/types"
)

// Word count bounds for generated briefs.
const (
	MinWordCount     = 800
	MaxWordCount     = 5000
	DefaultWordCount = 1500
)

// Generator produces briefs and articles through an LLM client. Transient
// provider failures are retried with backoff; parse failures are permanent.
type Generator struct {
	client     llm.Client
	maxRetries int
}

// NewGenerator creates a generator over the given client.
func NewGenerator(client llm.Client, maxRetries int) *Generator {
	if maxRetries < 0 {
		maxRetries = llm.DefaultMaxRetries
	}
	return &Generator{client: client, maxRetries: maxRetries}
}

type briefPayload struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	ContentType     string   `json:"content_type"`
	WordCountTarget int      `json:"word_count_target"`
	Outline         []string `json:"outline"`
	CallToAction    string   `json:"call_to_action"`
}

// Brief generates a content brief for the given context.
func (g *Generator) Brief(ctx context.Context, rc *types.RetrievalContext) (*types.ContentBrief, error) {
	template, err := prompts.Get("generation.json", "generate-brief")
	if err != nil {
		return nil, fmt.Errorf("failed to load brief prompt: %w", err)
	}
	prompt := prompts.Format(template, map[string]string{
		"Context":  formatContext(rc),
		"MinWords": strconv.Itoa(MinWordCount),
		"MaxWords": strconv.Itoa(MaxWordCount),
	})

	raw, err := llm.GenerateJSONWithRetry(ctx, g.client, prompt, llm.TierStandard, g.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("brief generation failed: %w", err)
	}

	return parseBrief(rc.Keyword, raw)
}

// parseBrief validates and decodes a raw model response into a brief.
func parseBrief(keyword, raw string) (*types.ContentBrief, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.Validate(schemas.ContentBriefSchema, cleaned); err != nil {
		return nil, &ParseError{Message: "brief did not match schema", Raw: raw, Cause: err}
	}

	var payload briefPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &ParseError{Message: "brief is not valid JSON", Raw: raw, Cause: err}
	}
	if !types.ValidContentType(types.ContentType(payload.ContentType)) {
		return nil, &ParseError{Message: fmt.Sprintf("unknown content type %q", payload.ContentType), Raw: raw}
	}

	return &types.ContentBrief{
		Keyword:         keyword,
		Title:           payload.Title,
		MetaDescription: payload.MetaDescription,
		ContentType:     types.ContentType(payload.ContentType),
		WordCountTarget: payload.WordCountTarget,
		Outline:         payload.Outline,
		CallToAction:    payload.CallToAction,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// Article generates a brief and then writes the full article from it.
func (g *Generator) Article(ctx context.Context, rc *types.RetrievalContext) (*types.Article, error) {
	brief, err := g.Brief(ctx, rc)
	if err != nil {
		return nil, err
	}
	return g.ArticleFromBrief(ctx, brief)
}

// ArticleFromBrief writes one section per outline heading. Any section
// failure fails the whole article; partial articles are never returned.
func (g *Generator) ArticleFromBrief(ctx context.Context, brief *types.ContentBrief) (*types.Article, error) {
	if len(brief.Outline) == 0 {
		return nil, &ParseError{Message: "brief has an empty outline"}
	}

	template, err := prompts.Get("generation.json", "generate-section")
	if err != nil {
		return nil, fmt.Errorf("failed to load section prompt: %w", err)
	}

	target := brief.WordCountTarget
	if target <= 0 {
		target = DefaultWordCount
	}
	perSection := target / len(brief.Outline)

	sections := make([]types.Section, 0, len(brief.Outline))
	for _, heading := range brief.Outline {
		prompt := prompts.Format(template, map[string]string{
			"ArticleTitle": brief.Title,
			"Keyword":      brief.Keyword,
			"Heading":      heading,
			"TargetWords":  strconv.Itoa(perSection),
		})

		body, err := llm.GenerateWithRetry(ctx, g.client, prompt, llm.TierAdvanced, g.maxRetries)
		if err != nil {
			return nil, fmt.Errorf("failed to generate section %q: %w", heading, err)
		}
		if body == "" {
			return nil, &ParseError{Message: fmt.Sprintf("empty body for section %q", heading)}
		}
		sections = append(sections, types.Section{Heading: heading, Body: body})
	}

	article := &types.Article{
		ContentBrief: *brief,
		Sections:     sections,
	}
	article.RecountWords()
	return article, nil
}
