package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrTransitionIsNotAllowed = errors.New("transition is not allowed")
	ErrObjectNotFound         = errors.New("object not found")
	ErrConflict               = errors.New("conflict")
	ErrUpstream               = errors.New("upstream failure")
)

// IsValidation reports whether err is one of the validation kinds.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrTransitionIsNotAllowed)
}

// IsNotFound reports whether err is an ObjectNotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsConflict reports whether err is a ConflictError or AmountMismatchError.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUpstream reports whether err wraps a failed store or broker call.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}
