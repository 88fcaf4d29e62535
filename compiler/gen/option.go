package gen

import (
	"errors"
	"log/slog"
	"slices"
)

// Option configures the resolver.
type Option func(*Config) error

// WithContainers replaces the definition container keywords.
// For example: "definitions", "$defs".
func WithContainers(keywords ...string) Option {
	return func(c *Config) error {
		if len(keywords) == 0 {
			return NewConfigError("Containers", nil, "at least one container keyword is required")
		}
		if slices.Contains(keywords, "") {
			return NewConfigError("Containers", keywords, "container keyword cannot be empty")
		}
		c.Containers = slices.Clone(keywords)
		return nil
	}
}

// WithEmbeddedContainers sets the containers whose members are embedded
// value objects. Passing no keywords makes every definition a table.
func WithEmbeddedContainers(keywords ...string) Option {
	return func(c *Config) error {
		c.EmbeddedContainers = slices.Clone(keywords)
		return nil
	}
}

// WithPrimaryKeyKeyword sets the extension keyword that marks a property
// as primary key.
func WithPrimaryKeyKeyword(kw string) Option {
	return func(c *Config) error {
		if kw == "" {
			return NewConfigError("PrimaryKeyKeyword", nil, "keyword cannot be empty")
		}
		c.PrimaryKeyKeyword = kw
		return nil
	}
}

// WithPrimaryKeyPolicy sets the policy for entities without a primary key.
func WithPrimaryKeyPolicy(p PrimaryKeyPolicy) Option {
	return func(c *Config) error {
		switch p {
		case PrimaryKeyRequired, PrimaryKeyOptional:
			c.PrimaryKeyPolicy = p
			return nil
		default:
			return NewConfigError("PrimaryKeyPolicy", p, "unsupported policy; use PrimaryKeyRequired or PrimaryKeyOptional")
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
