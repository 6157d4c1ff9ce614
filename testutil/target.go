package testutil

import (
	"github.com/kbukum/streamcast/cast"
	"github.com/kbukum/streamcast/event"
)

// Target is a cast.Target whose streams share nothing: every Subscribe runs
// the binder again and gets its own bridge.
type Target struct{}

var _ cast.Target[*Stream] = Target{}

// Stream is the stream type produced by Target.
type Stream struct {
	binder event.Binder
}

// Once returns a stream emitting value and End to each subscriber.
func (Target) Once(value any) *Stream {
	return &Stream{binder: func(sink event.Sink) event.Unsub {
		event.Push(sink, event.Next(event.Constant(value)), event.End())
		return event.Nop
	}}
}

// FromBinder returns a stream driven by binder.
func (Target) FromBinder(binder event.Binder) *Stream {
	return &Stream{binder: binder}
}

// Subscribe binds sink and returns the binder's teardown.
func (s *Stream) Subscribe(sink event.Sink) event.Unsub {
	return s.binder(sink)
}
