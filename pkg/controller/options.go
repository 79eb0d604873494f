package controller

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/sink"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Option mutates controller configuration.
type Option func(*Controller)

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSink sets the destination for submitted values.
func WithSink(s sink.Sink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithSubmitPolicy selects which sections Submit validates.
func WithSubmitPolicy(policy wizard.SubmitPolicy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}
