package runner

import "errors"

// ChainError wraps an infrastructure failure with a human-readable hint. The
// full message concatenates the hint with the cause chain's own message.
type ChainError struct {
	Hint  string
	Cause error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if e.Cause != nil {
		return e.Hint + ": " + e.Cause.Error()
	}
	return e.Hint
}

// Unwrap returns the underlying error.
func (e *ChainError) Unwrap() error {
	return e.Cause
}

// NewChainError creates a new ChainError.
func NewChainError(hint string, cause error) *ChainError {
	return &ChainError{Hint: hint, Cause: cause}
}

// IsChainError checks if the error is a ChainError.
func IsChainError(err error) bool {
	var ce *ChainError
	return errors.As(err, &ce)
}
