package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/seo-assistant/internal/types"
)

func testContext(keyword string) *types.RetrievalContext {
	return &types.RetrievalContext{
		Keyword:      types.NormalizeKeyword(keyword),
		SearchIntent: types.IntentInformational,
		CreatedAt:    time.Now(),
	}
}

func TestContextCache_PutGet(t *testing.T) {
	c := New(10, time.Hour)
	c.Put("seo tools", testContext("seo tools"))

	got, ok := c.Get("seo tools")
	require.True(t, ok)
	assert.Equal(t, "seo tools", got.Keyword)
}

func TestContextCache_KeywordNormalization(t *testing.T) {
	c := New(10, time.Hour)
	c.Put("  SEO Tools ", testContext("seo tools"))

	got, ok := c.Get("seo   tools")
	require.True(t, ok)
	assert.Equal(t, "seo tools", got.Keyword)
	assert.Equal(t, 1, c.Len())
}

func TestContextCache_Miss(t *testing.T) {
	c := New(10, time.Hour)
	_, ok := c.Get("unknown")
	assert.False(t, ok)
}

func TestContextCache_TTLExpiry(t *testing.T) {
	c := New(10, time.Hour)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put("seo tools", testContext("seo tools"))

	_, ok := c.Get("seo tools")
	assert.True(t, ok)

	// Advance past the TTL: the entry becomes a miss and is evicted.
	current = current.Add(time.Hour + time.Second)
	_, ok = c.Get("seo tools")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestContextCache_PutTTLOverridesDefault(t *testing.T) {
	c := New(10, time.Hour)
	current := time.Now()
	c.now = func() time.Time { return current }

	c.PutTTL("short lived", testContext("short lived"), time.Minute)

	current = current.Add(2 * time.Minute)
	_, ok := c.Get("short lived")
	assert.False(t, ok)
}

func TestContextCache_LRUEviction(t *testing.T) {
	c := New(3, time.Hour)
	for i := 1; i <= 3; i++ {
		kw := fmt.Sprintf("keyword %d", i)
		c.Put(kw, testContext(kw))
	}

	// Touch keyword 1 so keyword 2 becomes least recently used.
	_, ok := c.Get("keyword 1")
	require.True(t, ok)

	c.Put("keyword 4", testContext("keyword 4"))

	_, ok = c.Get("keyword 2")
	assert.False(t, ok, "least recently used entry should have been evicted")
	for _, kw := range []string{"keyword 1", "keyword 3", "keyword 4"} {
		_, ok := c.Get(kw)
		assert.True(t, ok, kw)
	}
	assert.Equal(t, 3, c.Len())
}

func TestContextCache_LastWriterWins(t *testing.T) {
	c := New(10, time.Hour)
	first := testContext("seo tools")
	second := testContext("seo tools")
	second.QualityScore = 0.9

	c.Put("seo tools", first)
	c.Put("seo tools", second)

	got, ok := c.Get("seo tools")
	require.True(t, ok)
	assert.InDelta(t, 0.9, got.QualityScore, 1e-9)
	assert.Equal(t, 1, c.Len())
}

func TestContextCache_Clear(t *testing.T) {
	c := New(10, time.Hour)
	c.Put("a", testContext("a"))
	c.Put("b", testContext("b"))
	c.Clear()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
