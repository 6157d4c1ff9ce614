package stream

import (
	"github.com/kbukum/streamcast/cast"
	"github.com/kbukum/streamcast/event"
)

// Stream is a lazy multicast event stream.
type Stream struct {
	d *dispatcher
}

// FromBinder returns a stream fed by binder. The binder runs when the first
// subscriber arrives and is released when the last one leaves.
func FromBinder(binder event.Binder) *Stream {
	return &Stream{d: newDispatcher(binder)}
}

// Once returns a stream that emits v and ends. Only the first subscriber sees
// v; later ones get End.
func Once(v any) *Stream {
	return FromBinder(func(sink event.Sink) event.Unsub {
		event.Push(sink, event.Next(event.Constant(v)), event.End())
		return event.Nop
	})
}

// Never returns a stream that ends immediately.
func Never() *Stream {
	return FromBinder(func(sink event.Sink) event.Unsub {
		sink(event.End())
		return event.Nop
	})
}

// Subscribe registers sink and returns its unsubscriber. The sink stops
// receiving events after it returns event.NoMore or receives End.
func (s *Stream) Subscribe(sink event.Sink) event.Unsub {
	return s.d.subscribe(sink)
}

// OnValue calls f with the value of every Initial and Next event.
func (s *Stream) OnValue(f func(v any)) event.Unsub {
	return s.Subscribe(func(e event.Event) event.Reply {
		if e.HasValue() {
			f(e.Value())
		}
		return event.More
	})
}

// OnError calls f for every Error event.
func (s *Stream) OnError(f func(err error)) event.Unsub {
	return s.Subscribe(func(e event.Event) event.Reply {
		if e.IsError() {
			f(e.Err())
		}
		return event.More
	})
}

// OnEnd calls f when the stream ends.
func (s *Stream) OnEnd(f func()) event.Unsub {
	return s.Subscribe(func(e event.Event) event.Reply {
		if e.IsEnd() {
			f()
		}
		return event.More
	})
}

// Subscribers returns the number of current subscribers.
func (s *Stream) Subscribers() int {
	return s.d.subscribers()
}

// Target builds Streams for cast.Cast.
type Target struct{}

var _ cast.Target[*Stream] = Target{}

// Once implements cast.Target.
func (Target) Once(v any) *Stream { return Once(v) }

// FromBinder implements cast.Target.
func (Target) FromBinder(binder event.Binder) *Stream { return FromBinder(binder) }
