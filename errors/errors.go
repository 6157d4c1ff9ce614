package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// SourceError turns an error payload reported by a source stream into an
// error. Payloads that already are errors are returned unchanged so callers
// keep the producer's identity; anything else is wrapped with the payload
// kept under Details["payload"].
func SourceError(payload any) error {
	if err, ok := payload.(error); ok && err != nil {
		return err
	}
	return &AppError{
		Code:    ErrCodeSourceError,
		Message: fmt.Sprintf("source reported an error: %v", payload),
		Details: map[string]any{"payload": payload},
	}
}

// UnknownEvent describes a source event that matched none of the shapes
// known for its protocol.
func UnknownEvent(protocol, shape string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownEvent,
		Message: fmt.Sprintf("unknown %s event %s", protocol, shape),
		Details: map[string]any{"protocol": protocol, "shape": shape},
	}
}

// InvalidConfig creates an error for a configuration field with a bad value.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Details: details,
	}
}

// Validation creates an InvalidConfig error from a pre-formatted message.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// ConfigLoad creates an error for configuration that could not be loaded.
func ConfigLoad(source string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeConfigLoad,
		Message: fmt.Sprintf("failed to load configuration from %s", source),
		Details: map[string]any{"source": source},
		Cause:   cause,
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause}
}

// --- Helpers ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err is, or wraps, an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Payload returns the raw payload of an error created by SourceError.
// For errors that were passed through unchanged it returns err itself.
func Payload(err error) (any, bool) {
	if err == nil {
		return nil, false
	}
	if appErr, ok := AsAppError(err); ok && appErr.Code == ErrCodeSourceError {
		p, found := appErr.Details["payload"]
		return p, found
	}
	return err, true
}
