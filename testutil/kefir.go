package testutil

import (
	"sync"

	"github.com/kbukum/streamcast/cast"
)

// KefirBus is a Kefir stream, or a property when it holds a current value.
// A property replays its current value to each new listener, flagged Current.
type KefirBus struct {
	mu         sync.Mutex
	listeners  []cast.KefirListener
	property   bool
	current    any
	hasCurrent bool
	ended      bool
	offs       int
}

var _ cast.KefirObservable = (*KefirBus)(nil)

// NewKefirStream returns a stream with no current value.
func NewKefirStream() *KefirBus {
	return &KefirBus{}
}

// NewKefirProperty returns a property whose current value is initial.
func NewKefirProperty(initial any) *KefirBus {
	return &KefirBus{property: true, current: initial, hasCurrent: true}
}

func (k *KefirBus) OnAny(l cast.KefirListener) {
	k.mu.Lock()
	current, hasCurrent, ended := k.current, k.hasCurrent, k.ended
	if !ended {
		k.listeners = append(k.listeners, l)
	}
	k.mu.Unlock()

	if hasCurrent {
		l.HandleAny(cast.KefirEvent{Type: cast.KefirValue, Value: current, Current: true})
	}
	if ended {
		l.HandleAny(cast.KefirEvent{Type: cast.KefirEnd, Current: true})
	}
}

func (k *KefirBus) OffAny(l cast.KefirListener) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.offs++
	for i, x := range k.listeners {
		if x == l {
			k.listeners = append(k.listeners[:i:i], k.listeners[i+1:]...)
			return
		}
	}
}

// Emit delivers a value. A property also remembers it as current.
func (k *KefirBus) Emit(v any) {
	k.mu.Lock()
	if k.property {
		k.current, k.hasCurrent = v, true
	}
	k.mu.Unlock()
	k.EmitEvent(cast.KefirEvent{Type: cast.KefirValue, Value: v})
}

// Error delivers an error event carrying payload.
func (k *KefirBus) Error(payload any) {
	k.EmitEvent(cast.KefirEvent{Type: cast.KefirError, Value: payload})
}

// End delivers end and drops every listener.
func (k *KefirBus) End() {
	k.mu.Lock()
	listeners := k.listeners
	k.listeners = nil
	k.ended = true
	k.mu.Unlock()
	for _, l := range listeners {
		l.HandleAny(cast.KefirEvent{Type: cast.KefirEnd})
	}
}

// EmitEvent delivers ev as is to current listeners.
func (k *KefirBus) EmitEvent(ev cast.KefirEvent) {
	k.mu.Lock()
	listeners := append([]cast.KefirListener(nil), k.listeners...)
	k.mu.Unlock()
	for _, l := range listeners {
		l.HandleAny(ev)
	}
}

// Listeners returns the number of registered listeners.
func (k *KefirBus) Listeners() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.listeners)
}

// Offs returns how many times OffAny was called.
func (k *KefirBus) Offs() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.offs
}
