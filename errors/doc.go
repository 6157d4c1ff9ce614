// Package errors provides the structured error type used across streamcast.
// Errors carry a machine-readable code so callers can tell a producer's own
// error (SOURCE_ERROR) from adapter diagnostics and configuration failures.
package errors
