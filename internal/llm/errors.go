package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/api/googleapi"
)

// ProviderError represents a failure from the text-generation provider.
// Transient errors (timeouts, rate limits, 5xx) may be retried with backoff;
// permanent errors (auth failures, malformed requests) must not be.
type ProviderError struct {
	Message   string
	Transient bool
	Cause     error
}

func (e *ProviderError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider error (%s): %s: %v", kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error (%s): %s", kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Classify wraps a raw provider error as a *ProviderError with a
// transient/permanent classification derived from the underlying cause.
func Classify(err error, message string) *ProviderError {
	return &ProviderError{
		Message:   message,
		Transient: IsTransient(err),
		Cause:     err,
	}
}

// IsTransient reports whether an error is worth retrying: HTTP 429, HTTP 5xx,
// deadline expiry, and network timeouts. Everything else (auth failures,
// invalid requests) is treated as permanent.
func IsTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
