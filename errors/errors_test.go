package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if err.Message != "boom" {
		t.Errorf("expected message 'boom', got %q", err.Message)
	}
}

func TestSourceError_ErrorPassthrough(t *testing.T) {
	orig := stderrors.New("some err")
	if got := SourceError(orig); got != orig {
		t.Errorf("expected identical error, got %v", got)
	}
}

func TestSourceError_WrapsPayload(t *testing.T) {
	err := SourceError("bad")
	if !Is(err, ErrCodeSourceError) {
		t.Fatalf("expected SOURCE_ERROR, got %v", err)
	}
	p, ok := Payload(err)
	if !ok || p != "bad" {
		t.Errorf("expected payload 'bad', got %v (ok=%v)", p, ok)
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("message should mention payload: %q", err.Error())
	}
}

func TestSourceError_NilPayload(t *testing.T) {
	err := SourceError(nil)
	if !Is(err, ErrCodeSourceError) {
		t.Fatalf("expected SOURCE_ERROR, got %v", err)
	}
	p, ok := Payload(err)
	if !ok || p != nil {
		t.Errorf("expected nil payload, got %v (ok=%v)", p, ok)
	}
}

func TestPayload_PlainError(t *testing.T) {
	orig := stderrors.New("x")
	p, ok := Payload(orig)
	if !ok || p != orig {
		t.Errorf("expected error itself as payload, got %v", p)
	}
	if _, ok := Payload(nil); ok {
		t.Error("nil error should have no payload")
	}
}

func TestUnknownEvent_Details(t *testing.T) {
	err := UnknownEvent("kefir", "type=\"weird\"")
	if err.Code != ErrCodeUnknownEvent {
		t.Errorf("expected UNKNOWN_EVENT, got %s", err.Code)
	}
	if err.Details["protocol"] != "kefir" {
		t.Errorf("expected protocol=kefir, got %v", err.Details["protocol"])
	}
}

func TestInvalidConfig_EmptyField(t *testing.T) {
	err := InvalidConfig("", "nope")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
	err = InvalidConfig("metrics.backend", "nope")
	if err.Details["field"] != "metrics.backend" {
		t.Errorf("expected field detail, got %v", err.Details["field"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	root := stderrors.New("root")
	err := ConfigLoad("config.yml", root)
	if !stderrors.Is(err, root) {
		t.Error("expected errors.Is to find root cause")
	}
	if !strings.Contains(err.Error(), "cause: root") {
		t.Errorf("unexpected format %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := New(ErrCodeInternal, "x").WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := Validation("bad")
	wrapped := fmt.Errorf("outer: %w", inner)
	if !Is(wrapped, ErrCodeInvalidConfig) {
		t.Error("expected wrapped INVALID_CONFIG")
	}
	if Is(wrapped, ErrCodeInternal) {
		t.Error("unexpected code match")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = Internal(nil)
	if err.Error() != "INTERNAL_ERROR: an unexpected error occurred" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
