package errs

import "fmt"

// UpstreamError wraps a failed call to the store or the message broker.
type UpstreamError struct {
	Operation string
	Cause     error
}

func NewUpstreamError(operation string, cause error) *UpstreamError {
	return &UpstreamError{Operation: operation, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpstream, e.Operation, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	return []error{ErrUpstream, e.Cause}
}
