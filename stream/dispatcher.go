package stream

import (
	"slices"
	"sync"

	"github.com/kbukum/streamcast/event"
)

type subscriber struct {
	sink event.Sink
}

// binding is one invocation of the binder. Pushes from a binding that is no
// longer current are refused, which keeps a released source from leaking
// events into a later binding.
type binding struct {
	unbind   event.Unsub
	released bool
}

// dispatcher shares one binding among all current subscribers. The first
// subscriber binds, the last one to leave releases the binding, and End
// finishes the stream for good.
type dispatcher struct {
	binder event.Binder

	mu      sync.Mutex
	subs    []*subscriber
	current *binding
	ended   bool
}

func newDispatcher(binder event.Binder) *dispatcher {
	return &dispatcher{binder: binder}
}

func (d *dispatcher) subscribe(sink event.Sink) event.Unsub {
	d.mu.Lock()
	if d.ended {
		d.mu.Unlock()
		sink(event.End())
		return event.Nop
	}
	sub := &subscriber{sink: sink}
	d.subs = append(d.subs, sub)
	var b *binding
	if d.current == nil {
		b = &binding{}
		d.current = b
	}
	d.mu.Unlock()

	if b != nil {
		unbind := d.binder(func(e event.Event) event.Reply {
			return d.push(b, e)
		})
		d.mu.Lock()
		if b.released {
			d.mu.Unlock()
			if unbind != nil {
				unbind()
			}
		} else {
			b.unbind = unbind
			d.mu.Unlock()
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(sub) })
	}
}

func (d *dispatcher) push(b *binding, e event.Event) event.Reply {
	d.mu.Lock()
	if d.current != b || d.ended {
		d.mu.Unlock()
		return event.NoMore
	}
	subs := slices.Clone(d.subs)
	var unbind event.Unsub
	if e.IsEnd() {
		d.ended = true
		d.subs = nil
		unbind = d.release()
	}
	d.mu.Unlock()

	for _, s := range subs {
		if !e.IsEnd() && !d.has(s) {
			continue
		}
		if s.sink(e) == event.NoMore && !e.IsEnd() {
			d.remove(s)
		}
	}

	if e.IsEnd() {
		if unbind != nil {
			unbind()
		}
		return event.NoMore
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current != b {
		return event.NoMore
	}
	return event.More
}

func (d *dispatcher) has(s *subscriber) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Contains(d.subs, s)
}

func (d *dispatcher) remove(s *subscriber) {
	d.mu.Lock()
	i := slices.Index(d.subs, s)
	if i < 0 {
		d.mu.Unlock()
		return
	}
	d.subs = slices.Delete(d.subs, i, i+1)
	var unbind event.Unsub
	if len(d.subs) == 0 {
		unbind = d.release()
	}
	d.mu.Unlock()

	if unbind != nil {
		unbind()
	}
}

// release detaches the current binding and returns its unbind, if the binder
// already returned one. A binder still running unbinds itself when it returns.
// Must be called with d.mu held.
func (d *dispatcher) release() event.Unsub {
	b := d.current
	if b == nil {
		return nil
	}
	d.current = nil
	b.released = true
	unbind := b.unbind
	b.unbind = nil
	return unbind
}

func (d *dispatcher) subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
