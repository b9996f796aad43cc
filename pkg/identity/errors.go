package identity

import (
	"errors"
	"fmt"
)

var (
	ErrTooManySignatures        = errors.New("more minimum signatures than primary addresses")
	ErrInvalidMinimumSignatures = errors.New("minimum signatures must be at least 1")
	ErrMissingName              = errors.New("no identity name was given")
	ErrMissingAddress           = errors.New("no primary address given, need at least 1")
	ErrInvalidContentMap        = errors.New("invalid content map")
)

// ValidationError reports the first invariant a request violates.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Field, e.Err, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err came from request validation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
