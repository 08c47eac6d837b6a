package validation

import (
	"context"

	"go.uber.org/zap"
)

// Chain runs validators in order and stops at the first failure
type Chain[T any] struct {
	name       string
	validators []Validator[T]
	keyFields  func(T) []zap.Field
	logger     *zap.Logger
}

// NewChain creates a chain. keyFields describes the subject in error logs and may be nil.
func NewChain[T any](name string, logger *zap.Logger, keyFields func(T) []zap.Field, validators ...Validator[T]) *Chain[T] {
	if keyFields == nil {
		keyFields = func(T) []zap.Field { return nil }
	}
	return &Chain[T]{
		name:       name,
		validators: validators,
		keyFields:  keyFields,
		logger:     logger,
	}
}

// Names returns the validator names in execution order
func (c *Chain[T]) Names() []string {
	names := make([]string, len(c.validators))
	for i, v := range c.validators {
		names[i] = v.Name()
	}
	return names
}

// Validate returns the first failing result, or OK when every validator passes.
// An unexpected validator error is logged with the subject's key fields and returned as a *FatalError.
func (c *Chain[T]) Validate(ctx context.Context, subject T) (Result, error) {
	c.logger.Debug("Running validation chain",
		zap.String("chain", c.name),
		zap.Int("validators", len(c.validators)))

	for _, v := range c.validators {
		c.logger.Debug("Running validator", zap.String("validator", v.Name()))

		result, err := v.Validate(ctx, subject)
		if err != nil {
			fields := append([]zap.Field{
				zap.String("chain", c.name),
				zap.String("validator", v.Name()),
				zap.Error(err),
			}, c.keyFields(subject)...)
			c.logger.Error("Validator failed unexpectedly", fields...)
			return Result{}, &FatalError{Validator: v.Name(), Err: err}
		}

		if !result.Valid {
			c.logger.Warn("Validator rejected",
				zap.String("chain", c.name),
				zap.String("validator", v.Name()),
				zap.String("message", result.Message))
			return result, nil
		}
	}

	c.logger.Debug("All validators passed", zap.String("chain", c.name))
	return OK(), nil
}
