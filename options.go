package modelreg

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures validation behavior.
type Option func(*validatorConfig) error

// validatorConfig holds all validation configuration.
type validatorConfig struct {
	strictVersionLayout bool
	collectAll          bool
	maxFailures         int

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithStrictVersionLayout limits the version descriptors associated with a
// model to direct children of its versions/ directory. By default, files in
// nested directories below versions/ are associated as well.
func WithStrictVersionLayout(strict bool) Option {
	return func(c *validatorConfig) error {
		c.strictVersionLayout = strict
		return nil
	}
}

// WithCollectAll keeps validating after a failure and returns every failure
// as a *ValidationErrors. Without it, validation stops at the first failure.
func WithCollectAll() Option {
	return func(c *validatorConfig) error {
		c.collectAll = true
		return nil
	}
}

// WithMaxFailures stops a collect-all run once n failures have been recorded.
// Zero means no limit. Requires WithCollectAll.
func WithMaxFailures(n int) Option {
	return func(c *validatorConfig) error {
		c.maxFailures = n
		return nil
	}
}

// WithLogger sets a structured logger for validation diagnostics.
// If not set, logging is disabled (silent mode).
//
// Any slog backend works, for example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	report, err := modelreg.Validate(ctx, ".", modelreg.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *validatorConfig) error {
		if l == nil {
			return errors.New("WithLogger: logger is nil")
		}
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *validatorConfig) validate() error {
	if c.maxFailures < 0 {
		return errors.New("maxFailures must not be negative")
	}
	if c.maxFailures > 0 && !c.collectAll {
		return errors.New("maxFailures requires collectAll to be enabled")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *validatorConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newValidatorConfig applies opts to a zero configuration and validates the result.
func newValidatorConfig(opts ...Option) (*validatorConfig, error) {
	c := &validatorConfig{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
