package event

import "fmt"

// Kind identifies which of the four event variants an Event carries.
type Kind uint8

const (
	// KindInitial is the current value a property replays on subscribe.
	KindInitial Kind = iota + 1
	// KindNext is a freshly produced value.
	KindNext
	// KindError carries an error reported by the producer.
	KindError
	// KindEnd terminates the subscription.
	KindEnd
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Thunk is a zero-argument value accessor. Producers hand values around as
// thunks so that computing the value is deferred until a consumer asks.
type Thunk func() any

// Constant returns a Thunk that yields v.
func Constant(v any) Thunk {
	return func() any { return v }
}

// Event is a single notification travelling from a producer to a Sink.
// The zero Event is invalid; use the constructors.
type Event struct {
	kind  Kind
	value Thunk
	err   error
}

// Initial creates an initial-value event. The thunk is not called.
func Initial(value Thunk) Event {
	return Event{kind: KindInitial, value: value}
}

// Next creates a next-value event. The thunk is not called.
func Next(value Thunk) Event {
	return Event{kind: KindNext, value: value}
}

// Error creates an error event.
func Error(err error) Event {
	return Event{kind: KindError, err: err}
}

// End creates an end event.
func End() Event {
	return Event{kind: KindEnd}
}

// Kind returns the event variant.
func (e Event) Kind() Kind { return e.kind }

func (e Event) IsInitial() bool { return e.kind == KindInitial }
func (e Event) IsNext() bool    { return e.kind == KindNext }
func (e Event) IsError() bool   { return e.kind == KindError }
func (e Event) IsEnd() bool     { return e.kind == KindEnd }

// HasValue reports whether the event carries a value (Initial or Next).
func (e Event) HasValue() bool {
	return e.kind == KindInitial || e.kind == KindNext
}

// Value forces the event's thunk and returns the value. It returns nil for
// events that carry no value.
func (e Event) Value() any {
	if !e.HasValue() || e.value == nil {
		return nil
	}
	return e.value()
}

// Thunk returns the unforced value accessor, or nil for events without a value.
func (e Event) Thunk() Thunk {
	if !e.HasValue() {
		return nil
	}
	return e.value
}

// Err returns the error carried by an Error event, nil otherwise.
func (e Event) Err() error { return e.err }

// String describes the event without forcing its value.
func (e Event) String() string {
	if e.kind == KindError {
		return fmt.Sprintf("<error %v>", e.err)
	}
	return "<" + e.kind.String() + ">"
}
