package gateway_errors

import (
	"errors"
)

// Common errors
var (
	ErrMissingIdentifier = errors.New("missing user identifier")
	ErrProvider          = errors.New("provider error")
	ErrRateLimited       = errors.New("rate limited")
	ErrInvalidConfig     = errors.New("invalid config")
)

// ProviderError wraps a failed call to the remote provider. Its message is the
// provider's own error text, unchanged.
type ProviderError struct {
	Op  string
	Err error
}

func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return ErrProvider.Error()
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}
