package config

import (
	"time"

	"github.com/kbukum/streamcast/logger"
	"github.com/kbukum/streamcast/validation"
	"github.com/kbukum/streamcast/version"
)

// Metrics backends.
const (
	BackendOTel       = "otel"
	BackendPrometheus = "prometheus"
)

// Config is the ambient configuration of a process using streamcast.
type Config struct {
	Name        string            `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string            `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string            `yaml:"version" mapstructure:"version"`
	Logging     logger.Config     `yaml:"logging" mapstructure:"logging"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics" mapstructure:"diagnostics"`
	Metrics     MetricsConfig     `yaml:"metrics" mapstructure:"metrics"`
	Tracing     TracingConfig     `yaml:"tracing" mapstructure:"tracing"`
}

// DiagnosticsConfig controls reporting of anomalies seen on source streams.
type DiagnosticsConfig struct {
	// ReportUnknownEvents logs a warning for every source event of an
	// unrecognised shape. Such events are dropped either way.
	ReportUnknownEvents bool `yaml:"report_unknown_events" mapstructure:"report_unknown_events"`
}

// MetricsConfig selects and configures the metrics recorder.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Backend is "otel" (OTLP HTTP push) or "prometheus" (registry pull).
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Endpoint is the OTLP HTTP host:port, used by the otel backend.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Interval is the OTLP export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	// Namespace prefixes Prometheus metric names.
	Namespace string `yaml:"namespace" mapstructure:"namespace" validate:"required"`
}

// TracingConfig configures bridge spans.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	cfg := &Config{
		Diagnostics: DiagnosticsConfig{ReportUnknownEvents: true},
		Tracing:     TracingConfig{Insecure: true, SampleRate: 1.0},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values. Booleans are left alone; their defaults
// come from Default and the loader.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "streamcast"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.Logging.ApplyDefaults()
	if c.Metrics.Backend == "" {
		c.Metrics.Backend = BackendOTel
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = "localhost:4318"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = 15 * time.Second
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "streamcast"
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = "localhost:4318"
	}
}

// Validate checks struct tags, the logging section and the rules that span
// fields. All problems are reported together.
func (c *Config) Validate() error {
	v := validation.New()
	v.Merge("config", validation.Validate(c))
	v.Merge("logging", c.Logging.Validate())
	v.OneOf("metrics.backend", c.Metrics.Backend, []string{BackendOTel, BackendPrometheus})
	v.Positive("metrics.interval", c.Metrics.Interval)
	v.Between("tracing.sample_rate", c.Tracing.SampleRate, 0, 1)
	if c.Metrics.Enabled && c.Metrics.Backend == BackendOTel {
		v.Required("metrics.endpoint", c.Metrics.Endpoint)
	}
	if c.Tracing.Enabled {
		v.Required("tracing.endpoint", c.Tracing.Endpoint)
	}
	return v.Err()
}
