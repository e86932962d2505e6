// Package ratelimit provides per-client request limiting using token
// buckets. Generation endpoints get a tighter budget than read endpoints
// because each request fans out into model calls.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// bucket is a token bucket refilled continuously at rate tokens/second.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

func newBucket(capacity int, window time.Duration) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: float64(capacity) / window.Seconds(),
		lastRefill: time.Now(),
	}
}

func (b *bucket) refill(now time.Time) {
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

func (b *bucket) take() (allowed bool, remaining int, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refill(now)

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true, int(b.tokens), 0
	}
	deficit := 1.0 - b.tokens
	return false, 0, time.Duration(deficit / b.refillRate * float64(time.Second))
}

// Info reports the limit state for response headers.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int           // requests per window for read endpoints
	GenerationLimit int           // requests per window for generation endpoints
	Window          time.Duration // refill window
	CleanupInterval time.Duration
}

// DefaultConfig returns the standard limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		GenerationLimit: 30,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// generationPaths are the endpoints that trigger model calls.
var generationPaths = []string{"/analyze", "/brief", "/article", "/bulk", "/calendar"}

func isGenerationPath(path string) bool {
	for _, prefix := range generationPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Limiter tracks a bucket per client and endpoint class.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time
	config     *Config
	stop       chan struct{}
}

// NewLimiter creates a limiter; a nil config uses the defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		config:     config,
		stop:       make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether the client may make this request now.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{}
	}

	limit := l.config.DefaultLimit
	class := "read"
	if method == "POST" && isGenerationPath(path) {
		limit = l.config.GenerationLimit
		class = "generate"
	}

	key := clientID + "|" + class

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(limit, l.config.Window)
		l.buckets[key] = b
	}
	l.lastAccess[key] = time.Now()
	l.mu.Unlock()

	allowed, remaining, retryAfter := b.take()
	return allowed, Info{
		Limit:      limit,
		Remaining:  remaining,
		ResetTime:  time.Now().Add(l.config.Window),
		RetryAfter: retryAfter,
	}
}

// Stop halts the idle-bucket cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

// evictIdle drops buckets not touched for two cleanup intervals.
func (l *Limiter) evictIdle() {
	cutoff := time.Now().Add(-2 * l.config.CleanupInterval)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}
