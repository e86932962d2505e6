package bulk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-assistant/internal/llm"
	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/retrieval"
	"github.com/jonathan/seo-assistant/internal/types"
)

const briefJSON = `{
  "title": "SEO Tools: The Complete Guide",
  "meta_description": "Learn how to pick and use the best SEO tools to grow organic traffic, with practical tips for audits, keywords, and tracking results.",
  "content_type": "guide",
  "word_count_target": 1500,
  "outline": ["Introduction", "Choosing a tool", "Conclusion"],
  "call_to_action": "Try an audit on your own site today."
}`

// keywordAwareClient fails generation for prompts mentioning keywords in
// failFor, and can track peak concurrency.
type keywordAwareClient struct {
	failFor []string
	delay   time.Duration

	mu       sync.Mutex
	active   int32
	peak     int32
	jsonCall int
}

func (c *keywordAwareClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	current := atomic.AddInt32(&c.active, 1)
	defer atomic.AddInt32(&c.active, -1)

	c.mu.Lock()
	if current > c.peak {
		c.peak = current
	}
	c.jsonCall++
	c.mu.Unlock()

	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	for _, kw := range c.failFor {
		if strings.Contains(prompt, "PRIMARY KEYWORD: "+kw) {
			return "", &llm.ProviderError{Message: "model refused keyword " + kw}
		}
	}
	return briefJSON, nil
}

func (c *keywordAwareClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "Section body.", nil
}

func (c *keywordAwareClient) GetModel(llm.ModelTier) string { return "fake" }
func (c *keywordAwareClient) Close() error                  { return nil }

type stubSource struct{}

func (stubSource) Search(context.Context, string, int) ([]retrieval.Document, error) {
	return nil, errors.New("source offline")
}

func newCoordinator(client llm.Client, concurrency int) *Coordinator {
	p := pipeline.New(client, stubSource{}, pipeline.Options{})
	return NewCoordinator(p, concurrency)
}

func TestProcess_AllSucceed(t *testing.T) {
	c := newCoordinator(&keywordAwareClient{}, 0)

	keywords := []string{"seo tools", "keyword research", "link building"}
	result, err := c.Process(context.Background(), keywords, "grow traffic")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Results, 3)
	for i, outcome := range result.Results {
		assert.Equal(t, keywords[i], outcome.Keyword, "input order is preserved")
		assert.Equal(t, types.BulkStatusSuccess, outcome.Status)
		require.NotNil(t, outcome.Brief)
		assert.Empty(t, outcome.Error)
	}
}

func TestProcess_FailureIsolated(t *testing.T) {
	client := &keywordAwareClient{failFor: []string{"broken keyword"}}
	c := newCoordinator(client, 0)

	keywords := []string{"one", "two", "broken keyword", "four", "five"}
	result, err := c.Process(context.Background(), keywords, "")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, result.Total, result.Succeeded+result.Failed)

	failed := result.Results[2]
	assert.Equal(t, "broken keyword", failed.Keyword)
	assert.Equal(t, types.BulkStatusFailed, failed.Status)
	assert.Nil(t, failed.Brief)
	assert.NotEmpty(t, failed.Error)
}

func TestProcess_EmptyBatchRejected(t *testing.T) {
	c := newCoordinator(&keywordAwareClient{}, 0)

	_, err := c.Process(context.Background(), nil, "")
	var ve *pipeline.ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestProcess_OversizedBatchRejected(t *testing.T) {
	client := &keywordAwareClient{}
	c := newCoordinator(client, 0)

	keywords := make([]string, MaxKeywords+1)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("keyword %d", i)
	}

	_, err := c.Process(context.Background(), keywords, "")
	var ve *pipeline.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, 0, client.jsonCall, "validation happens before any generation")
}

func TestProcess_RepeatedKeywordsShareCachedContext(t *testing.T) {
	client := &keywordAwareClient{delay: time.Millisecond}
	c := newCoordinator(client, 5)

	// The same two keywords repeated across the batch: workers hit the
	// shared context cache concurrently, so cached contexts must be
	// immutable once published.
	keywords := make([]string, 30)
	for i := range keywords {
		if i%2 == 0 {
			keywords[i] = "seo tools"
		} else {
			keywords[i] = "keyword research"
		}
	}

	result, err := c.Process(context.Background(), keywords, "grow traffic")
	require.NoError(t, err)
	assert.Equal(t, 30, result.Succeeded)
	for i, outcome := range result.Results {
		assert.Equal(t, keywords[i], outcome.Keyword)
		require.NotNil(t, outcome.Brief, "keyword %d", i)
	}
}

func TestProcess_ConcurrencyBounded(t *testing.T) {
	client := &keywordAwareClient{delay: 20 * time.Millisecond}
	c := newCoordinator(client, 3)

	keywords := make([]string, 12)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("keyword %d", i)
	}

	result, err := c.Process(context.Background(), keywords, "")
	require.NoError(t, err)
	assert.Equal(t, 12, result.Succeeded)
	assert.LessOrEqual(t, client.peak, int32(3), "concurrency limit respected")
}
