package validation

import (
	"context"
	"fmt"
)

// Result is the outcome of a business rule check. It is never persisted.
type Result struct {
	Valid   bool
	Message string
}

// OK returns a passing result
func OK() Result {
	return Result{Valid: true}
}

// Invalid returns a failing result with a formatted message
func Invalid(format string, args ...any) Result {
	return Result{Valid: false, Message: fmt.Sprintf(format, args...)}
}

// Validator is one rule in a chain.
// A rule violation is reported through Result; the error return is reserved for
// unexpected failures such as a store being unreachable.
type Validator[T any] interface {
	// Name returns a human-readable identifier for this validator
	Name() string

	Validate(ctx context.Context, subject T) (Result, error)
}

// FatalError wraps an unexpected error raised while a validator was running
type FatalError struct {
	Validator string
	Err       error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("validator %s failed: %v", e.Validator, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
