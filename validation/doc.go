// Package validation validates configuration structs.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as an
// errors.AppError with code INVALID_CONFIG and the offending fields under
// Details["fields"].
//
// # Struct Tag Validation
//
//	type Metrics struct {
//	    Backend string `mapstructure:"backend" validate:"oneof=otel prometheus"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("metrics.endpoint", cfg.Metrics.Endpoint)
//	v.Between("tracing.sample_rate", cfg.Tracing.SampleRate, 0, 1)
//	err := v.Err()
package validation
