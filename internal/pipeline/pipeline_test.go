package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/retrieval"
	"github.com/jonathan/seo-assistant/internal/types"
)

const briefJSON = `{
  "title": "SEO Tools: The Complete Guide",
  "meta_description": "Learn how to pick and use the best SEO tools to grow organic traffic, with practical tips for audits, keywords, and tracking results.",
  "content_type": "guide",
  "word_count_target": 1500,
  "outline": ["Introduction", "Choosing a tool", "Running an audit", "Conclusion"],
  "call_to_action": "Try an audit on your own site today."
}`

type stubClient struct {
	jsonErr error
}

func (c *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	if c.jsonErr != nil {
		return "", c.jsonErr
	}
	return briefJSON, nil
}

func (c *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return "Body text for a generated section with a handful of words.", nil
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (c *stubClient) Close() error                  { return nil }

type stubSource struct {
	calls int
}

func (s *stubSource) Search(context.Context, string, int) ([]retrieval.Document, error) {
	s.calls++
	return []retrieval.Document{
		{Title: "Search engine optimization", URL: "https://example.org/seo", Snippet: "seo tools improve visibility"},
	}, nil
}

func newTestPipeline(client llm.Client, source retrieval.Source) *Pipeline {
	return New(client, source, Options{})
}

func TestAnalyzeKeyword(t *testing.T) {
	source := &stubSource{}
	p := newTestPipeline(&stubClient{}, source)

	rc, err := p.AnalyzeKeyword(context.Background(), "SEO Tools", "grow traffic")
	require.NoError(t, err)

	assert.Equal(t, "seo tools", rc.Keyword)
	assert.Greater(t, rc.QualityScore, 0.0)
	assert.NotEmpty(t, rc.ProcessingHints.FocusAreas)
}

func TestAnalyzeKeyword_CachedAcrossOperations(t *testing.T) {
	source := &stubSource{}
	p := newTestPipeline(&stubClient{}, source)

	_, err := p.AnalyzeKeyword(context.Background(), "seo tools", "")
	require.NoError(t, err)
	_, err = p.GenerateBrief(context.Background(), "seo tools", "")
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls, "second operation reuses the cached context")
}

func TestAnalyzeKeyword_EmptyKeyword(t *testing.T) {
	p := newTestPipeline(&stubClient{}, &stubSource{})

	_, err := p.AnalyzeKeyword(context.Background(), "   ", "")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "keyword", ve.Field)
}

func TestGenerateBrief(t *testing.T) {
	p := newTestPipeline(&stubClient{}, &stubSource{})

	brief, err := p.GenerateBrief(context.Background(), "seo tools", "grow traffic")
	require.NoError(t, err)
	assert.Equal(t, "seo tools", brief.Keyword)
	assert.Equal(t, types.ContentGuide, brief.ContentType)
}

func TestGenerateArticle(t *testing.T) {
	p := newTestPipeline(&stubClient{}, &stubSource{})

	article, err := p.GenerateArticle(context.Background(), "seo tools", "")
	require.NoError(t, err)
	assert.Len(t, article.Sections, 4)
	assert.Greater(t, article.TotalWordCount, 0)
}

func TestGenerateBrief_ProviderFailurePropagates(t *testing.T) {
	client := &stubClient{jsonErr: &llm.ProviderError{Message: "invalid api key"}}
	p := newTestPipeline(client, &stubSource{})

	_, err := p.GenerateBrief(context.Background(), "seo tools", "")
	assert.Error(t, err)
}

func TestProgressEventsEmitted(t *testing.T) {
	var events []ProgressEvent
	source := &stubSource{}
	p := New(&stubClient{}, source, Options{
		OnProgress: func(event ProgressEvent) { events = append(events, event) },
	})

	_, err := p.GenerateArticle(context.Background(), "seo tools", "")
	require.NoError(t, err)

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, StepArticle, last.Step)
	assert.InDelta(t, 1.0, last.Fraction, 1e-9)

	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].Fraction, events[i-1].Fraction,
			fmt.Sprintf("event %d regressed", i))
	}
}
