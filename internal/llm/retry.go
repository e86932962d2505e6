package llm

import (
	"context"
	"errors"
	"time"
)

// BackoffBase is the base delay for exponential backoff between retry
// attempts: base, 2*base, 4*base, ... capped at maxBackoff. Tests override
// this to avoid real sleeps.
var BackoffBase = 1 * time.Second

const (
	// DefaultMaxRetries is the number of additional attempts after the first
	// call fails with a transient error.
	DefaultMaxRetries = 3

	maxBackoff = 30 * time.Second
)

// generateFunc is one provider invocation (prose or JSON).
type generateFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)

// GenerateWithRetry invokes the client's prose generation with bounded
// retries on transient provider errors. Permanent errors are returned
// immediately. When maxRetries <= 0 the default (3) is used. If the context
// is cancelled during a backoff wait the context error is returned.
func GenerateWithRetry(ctx context.Context, client Client, prompt string, tier ModelTier, maxRetries int) (string, error) {
	return retryLoop(ctx, client.GenerateContent, prompt, tier, maxRetries)
}

// GenerateJSONWithRetry is GenerateWithRetry for structured JSON generation.
func GenerateJSONWithRetry(ctx context.Context, client Client, prompt string, tier ModelTier, maxRetries int) (string, error) {
	return retryLoop(ctx, client.GenerateJSON, prompt, tier, maxRetries)
}

func retryLoop(ctx context.Context, generate generateFunc, prompt string, tier ModelTier, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		text, err := generate(ctx, prompt, tier)
		if err == nil {
			return text, nil
		}

		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			provErr = Classify(err, "generation failed")
		}
		if !provErr.Transient {
			return "", provErr
		}
		lastErr = provErr

		// Exhausted retries: surface the last transient failure.
		if attempt >= maxRetries {
			return "", lastErr
		}

		delay := BackoffBase << attempt
		if delay > maxBackoff {
			delay = maxBackoff
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
}
