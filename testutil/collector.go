package testutil

import (
	"sync"

	"github.com/kbukum/streamcast/event"
)

// Recorded is a comparable snapshot of an event. Err holds the error text.
type Recorded struct {
	Kind  event.Kind
	Value any
	Err   string
}

// Next, Initial, Error and End build expected Recorded values.
func Next(v any) Recorded       { return Recorded{Kind: event.KindNext, Value: v} }
func Initial(v any) Recorded    { return Recorded{Kind: event.KindInitial, Value: v} }
func Error(msg string) Recorded { return Recorded{Kind: event.KindError, Err: msg} }
func End() Recorded             { return Recorded{Kind: event.KindEnd} }

// Collector is a sink that stores every event it receives. Values are not
// forced on receipt.
type Collector struct {
	mu        sync.Mutex
	events    []event.Event
	stopAfter int
	onEnd     func()
}

// NewCollector returns a collector that always answers event.More.
func NewCollector() *Collector {
	return &Collector{}
}

// StopAfter makes the collector answer event.NoMore to the n-th event.
func (c *Collector) StopAfter(n int) *Collector {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAfter = n
	return c
}

// OnEnd registers f to run when End arrives, after it is recorded.
func (c *Collector) OnEnd(f func()) *Collector {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEnd = f
	return c
}

// Sink is the event.Sink.
func (c *Collector) Sink(e event.Event) event.Reply {
	c.mu.Lock()
	c.events = append(c.events, e)
	reply := event.More
	if c.stopAfter > 0 && len(c.events) >= c.stopAfter {
		reply = event.NoMore
	}
	onEnd := c.onEnd
	c.mu.Unlock()

	if e.IsEnd() && onEnd != nil {
		onEnd()
	}
	return reply
}

// Events returns the raw events received so far.
func (c *Collector) Events() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.Event(nil), c.events...)
}

// Kinds returns the kinds of the events received so far.
func (c *Collector) Kinds() []event.Kind {
	events := c.Events()
	kinds := make([]event.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}

// Recorded snapshots the events received so far, forcing their values.
func (c *Collector) Recorded() []Recorded {
	events := c.Events()
	out := make([]Recorded, len(events))
	for i, e := range events {
		r := Recorded{Kind: e.Kind()}
		if e.HasValue() {
			r.Value = e.Value()
		}
		if err := e.Err(); err != nil {
			r.Err = err.Error()
		}
		out[i] = r
	}
	return out
}

// Len returns the number of events received.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}
