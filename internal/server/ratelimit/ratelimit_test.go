package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig(defaultLimit, generationLimit int) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    defaultLimit,
		GenerationLimit: generationLimit,
		Window:          time.Minute,
	}
}

func TestAllow_WithinLimit(t *testing.T) {
	l := NewLimiter(testConfig(5, 2))
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/tasks/abc", "GET")
		assert.True(t, allowed, "request %d", i)
	}
	allowed, info := l.Allow("1.2.3.4", "/tasks/abc", "GET")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_GenerationBudgetSeparate(t *testing.T) {
	l := NewLimiter(testConfig(100, 2))
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/brief", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	l.Allow("1.2.3.4", "/brief", "POST")
	allowed, _ = l.Allow("1.2.3.4", "/article", "POST")
	assert.False(t, allowed, "generation endpoints share one budget")

	allowed, _ = l.Allow("1.2.3.4", "/health", "GET")
	assert.True(t, allowed, "read budget unaffected")
}

func TestAllow_ClientsIndependent(t *testing.T) {
	l := NewLimiter(testConfig(1, 1))
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/health", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/health", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/health", "GET")
	assert.True(t, allowed, "a throttled client must not affect others")
}

func TestAllow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 1000; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/brief", "POST")
		assert.True(t, allowed)
	}
}

func TestIsGenerationPath(t *testing.T) {
	assert.True(t, isGenerationPath("/brief"))
	assert.True(t, isGenerationPath("/calendar"))
	assert.False(t, isGenerationPath("/tasks/abc"))
	assert.False(t, isGenerationPath("/health"))
}
