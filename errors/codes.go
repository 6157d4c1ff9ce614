package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Stream errors
const (
	// ErrCodeSourceError wraps an error payload reported by a source stream.
	ErrCodeSourceError ErrorCode = "SOURCE_ERROR"
	// ErrCodeUnknownEvent marks a source event whose shape was not recognised.
	ErrCodeUnknownEvent ErrorCode = "UNKNOWN_EVENT"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates a configuration value is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeConfigLoad indicates configuration could not be read or decoded.
	ErrCodeConfigLoad ErrorCode = "CONFIG_LOAD"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
