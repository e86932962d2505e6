package generation

import "fmt"

// ParseError indicates the model returned content that could not be parsed
// or validated into the expected artifact. It is permanent: retrying the
// same prompt is not expected to help, so callers should surface it.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse generated content: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse generated content: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
