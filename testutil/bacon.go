package testutil

import (
	"sync"

	"github.com/kbukum/streamcast/cast"
	"github.com/kbukum/streamcast/event"
)

// BaconEvent is a hand-built Bacon event. The flags back the Is* predicates
// directly, so malformed combinations can be expressed too.
type BaconEvent struct {
	Initial bool
	Next    bool
	Error   bool
	End     bool
	Thunk   func() any
	Cause   error
}

var _ cast.BaconEvent = BaconEvent{}

// BaconInitial, BaconNext, BaconError and BaconEnd build well-formed events.
func BaconInitial(thunk func() any) BaconEvent { return BaconEvent{Initial: true, Thunk: thunk} }
func BaconNext(thunk func() any) BaconEvent    { return BaconEvent{Next: true, Thunk: thunk} }
func BaconError(err error) BaconEvent          { return BaconEvent{Error: true, Cause: err} }
func BaconEnd() BaconEvent                     { return BaconEvent{End: true} }

func (e BaconEvent) IsInitial() bool { return e.Initial }
func (e BaconEvent) IsNext() bool    { return e.Next }
func (e BaconEvent) IsError() bool   { return e.Error }
func (e BaconEvent) IsEnd() bool     { return e.End }
func (e BaconEvent) Err() error      { return e.Cause }

func (e BaconEvent) Value() any {
	if e.Thunk == nil {
		return nil
	}
	return e.Thunk()
}

// BaconBus is a Bacon bus. A subscriber answering event.NoMore is removed,
// as Bacon does.
type BaconBus struct {
	mu      sync.Mutex
	seq     int
	subs    map[int]func(cast.BaconEvent) event.Reply
	initial *BaconEvent
	ended   bool
	unsubs  int
}

var _ cast.BaconObservable = (*BaconBus)(nil)

// NewBaconBus returns an empty bus.
func NewBaconBus() *BaconBus {
	return &BaconBus{subs: make(map[int]func(cast.BaconEvent) event.Reply)}
}

// NewBaconProperty returns a bus that sends Initial(v) to each new subscriber.
func NewBaconProperty(v any) *BaconBus {
	b := NewBaconBus()
	ev := BaconInitial(func() any { return v })
	b.initial = &ev
	return b
}

func (b *BaconBus) Subscribe(sink func(cast.BaconEvent) event.Reply) func() {
	b.mu.Lock()
	id := b.seq
	b.seq++
	initial, ended := b.initial, b.ended
	if !ended {
		b.subs[id] = sink
	}
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.unsubs++
		delete(b.subs, id)
	}
	if initial != nil && sink(*initial) == event.NoMore {
		b.remove(id)
		return unsub
	}
	if ended {
		sink(BaconEnd())
	}
	return unsub
}

func (b *BaconBus) OnValue(f func(any)) func() {
	return b.Subscribe(func(ev cast.BaconEvent) event.Reply {
		if ev.IsInitial() || ev.IsNext() {
			f(ev.Value())
		}
		return event.More
	})
}

// Push sends Next(v).
func (b *BaconBus) Push(v any) {
	b.PushEvent(BaconNext(func() any { return v }))
}

// PushLazy sends Next with thunk as its value accessor.
func (b *BaconBus) PushLazy(thunk func() any) {
	b.PushEvent(BaconNext(thunk))
}

// Error sends an error event. The bus stays open.
func (b *BaconBus) Error(err error) {
	b.PushEvent(BaconError(err))
}

// End sends End and closes the bus.
func (b *BaconBus) End() {
	b.PushEvent(BaconEnd())
	b.mu.Lock()
	b.ended = true
	b.subs = make(map[int]func(cast.BaconEvent) event.Reply)
	b.mu.Unlock()
}

// PushEvent sends ev as is, in subscription order.
func (b *BaconBus) PushEvent(ev cast.BaconEvent) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for i := 0; i < b.seq; i++ {
		if _, ok := b.subs[i]; ok {
			ids = append(ids, i)
		}
	}
	b.mu.Unlock()

	for _, id := range ids {
		b.mu.Lock()
		sink, ok := b.subs[id]
		b.mu.Unlock()
		if !ok {
			continue
		}
		if sink(ev) == event.NoMore {
			b.remove(id)
		}
	}
}

func (b *BaconBus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Subscribers returns the number of live subscribers.
func (b *BaconBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Unsubs returns how many times an unsubscriber was called.
func (b *BaconBus) Unsubs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unsubs
}

// BaconMock is a bare Bacon-shaped source. It keeps the last sink it was
// given and delivers whatever it is told to, ignoring replies and its own End.
type BaconMock struct {
	mu     sync.Mutex
	sink   func(cast.BaconEvent) event.Reply
	unsubs int
}

var _ cast.BaconObservable = (*BaconMock)(nil)

func (m *BaconMock) Subscribe(sink func(cast.BaconEvent) event.Reply) func() {
	m.mu.Lock()
	m.sink = sink
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.unsubs++
	}
}

func (m *BaconMock) OnValue(f func(any)) func() {
	return m.Subscribe(func(ev cast.BaconEvent) event.Reply {
		f(ev.Value())
		return event.More
	})
}

// Send delivers ev to the subscribed sink and returns its reply.
func (m *BaconMock) Send(ev cast.BaconEvent) event.Reply {
	m.mu.Lock()
	sink := m.sink
	m.mu.Unlock()
	return sink(ev)
}

// Unsubs returns how many times the unsubscriber was called.
func (m *BaconMock) Unsubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsubs
}
