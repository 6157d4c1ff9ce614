package bootstrap

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbukum/streamcast/logger"
)

// Option configures the Runtime during creation.
type Option func(*runtimeOptions)

type runtimeOptions struct {
	logger     *logger.Logger
	registerer prometheus.Registerer
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *runtimeOptions {
	o := &runtimeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger.
// If not set, the global logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *runtimeOptions) {
		o.logger = l
	}
}

// WithRegisterer registers Prometheus metrics with reg instead of a fresh
// registry, e.g. prometheus.DefaultRegisterer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *runtimeOptions) {
		o.registerer = reg
	}
}
