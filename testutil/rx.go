package testutil

import (
	"sync"

	"github.com/kbukum/streamcast/cast"
)

type rxObserver struct {
	next     func(any)
	err      func(error)
	complete func()
}

// rxCore is the subject logic shared by both Rx generations.
type rxCore struct {
	mu        sync.Mutex
	seq       int
	observers map[int]rxObserver
	teardowns int
	done      bool
	doneErr   error

	cold              []any
	completeOnDispose bool
}

func newRxCore(cold []any) *rxCore {
	return &rxCore{observers: make(map[int]rxObserver), cold: cold}
}

// subscribe registers o and returns its teardown. Cold values are replayed
// synchronously, followed by completion, before subscribe returns.
func (c *rxCore) subscribe(o rxObserver) func() {
	c.mu.Lock()
	if c.done {
		err := c.doneErr
		c.mu.Unlock()
		c.finish(o, err)
		return c.teardownFor(-1, o)
	}
	if c.cold != nil {
		values := c.cold
		c.mu.Unlock()
		for _, v := range values {
			if o.next != nil {
				o.next(v)
			}
		}
		c.finish(o, nil)
		return c.teardownFor(-1, o)
	}
	id := c.seq
	c.seq++
	c.observers[id] = o
	c.mu.Unlock()
	return c.teardownFor(id, o)
}

func (c *rxCore) teardownFor(id int, o rxObserver) func() {
	return func() {
		c.mu.Lock()
		c.teardowns++
		_, live := c.observers[id]
		delete(c.observers, id)
		completeOnDispose := c.completeOnDispose
		c.mu.Unlock()
		if live && completeOnDispose && o.complete != nil {
			o.complete()
		}
	}
}

func (c *rxCore) finish(o rxObserver, err error) {
	switch {
	case err != nil && o.err != nil:
		o.err(err)
	case err == nil && o.complete != nil:
		o.complete()
	}
}

func (c *rxCore) snapshot() []rxObserver {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]rxObserver, 0, len(c.observers))
	for i := 0; i < c.seq; i++ {
		if o, ok := c.observers[i]; ok {
			out = append(out, o)
		}
	}
	return out
}

func (c *rxCore) next(v any) {
	for _, o := range c.snapshot() {
		if o.next != nil {
			o.next(v)
		}
	}
}

func (c *rxCore) terminate(err error) {
	observers := c.snapshot()
	c.mu.Lock()
	c.done = true
	c.doneErr = err
	c.observers = make(map[int]rxObserver)
	c.mu.Unlock()
	for _, o := range observers {
		c.finish(o, err)
	}
}

func (c *rxCore) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers)
}

func (c *rxCore) teardownCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teardowns
}

// --- Legacy generation ---

// RxLegacySubject is a hot legacy Rx subject.
type RxLegacySubject struct {
	core *rxCore
}

var _ cast.RxLegacyObservable = (*RxLegacySubject)(nil)

// NewRxLegacySubject returns an empty subject.
func NewRxLegacySubject() *RxLegacySubject {
	return &RxLegacySubject{core: newRxCore(nil)}
}

// NewColdRxLegacy returns an observable that, on every subscription, emits
// values and completes before Subscribe returns.
func NewColdRxLegacy(values ...any) *RxLegacySubject {
	if values == nil {
		values = []any{}
	}
	return &RxLegacySubject{core: newRxCore(values)}
}

// CompleteOnDispose makes Dispose deliver onCompleted to the observer being
// disposed, the way some Rx implementations do.
func (s *RxLegacySubject) CompleteOnDispose() *RxLegacySubject {
	s.core.completeOnDispose = true
	return s
}

func (s *RxLegacySubject) Subscribe(onNext func(any), onError func(error), onCompleted func()) cast.Disposable {
	return disposer(s.core.subscribe(rxObserver{next: onNext, err: onError, complete: onCompleted}))
}

func (s *RxLegacySubject) SubscribeOnNext(onNext func(any)) cast.Disposable {
	return s.Subscribe(onNext, nil, nil)
}

// OnNext emits v to current observers.
func (s *RxLegacySubject) OnNext(v any) { s.core.next(v) }

// OnError fails the subject.
func (s *RxLegacySubject) OnError(err error) { s.core.terminate(err) }

// OnCompleted completes the subject.
func (s *RxLegacySubject) OnCompleted() { s.core.terminate(nil) }

// Observers returns the number of live observers.
func (s *RxLegacySubject) Observers() int { return s.core.live() }

// Disposed returns how many times Dispose was called.
func (s *RxLegacySubject) Disposed() int { return s.core.teardownCount() }

type disposer func()

func (d disposer) Dispose() { d() }

// --- Modern generation ---

// RxSubject is a hot modern Rx subject.
type RxSubject struct {
	core *rxCore
}

var _ cast.RxObservable = (*RxSubject)(nil)

// NewRxSubject returns an empty subject.
func NewRxSubject() *RxSubject {
	return &RxSubject{core: newRxCore(nil)}
}

// NewColdRx returns an observable that, on every subscription, emits values
// and completes before Subscribe returns.
func NewColdRx(values ...any) *RxSubject {
	if values == nil {
		values = []any{}
	}
	return &RxSubject{core: newRxCore(values)}
}

// CompleteOnUnsubscribe makes Unsubscribe deliver complete to the observer
// being removed.
func (s *RxSubject) CompleteOnUnsubscribe() *RxSubject {
	s.core.completeOnDispose = true
	return s
}

func (s *RxSubject) Subscribe(next func(any), err func(error), complete func()) cast.Subscription {
	return unsubscriber(s.core.subscribe(rxObserver{next: next, err: err, complete: complete}))
}

// OnErrorResumeNext only marks the generation; resuming is not modelled.
func (s *RxSubject) OnErrorResumeNext(cast.RxObservable) cast.RxObservable {
	return s
}

// Next emits v to current observers.
func (s *RxSubject) Next(v any) { s.core.next(v) }

// Error fails the subject.
func (s *RxSubject) Error(err error) { s.core.terminate(err) }

// Complete completes the subject.
func (s *RxSubject) Complete() { s.core.terminate(nil) }

// Observers returns the number of live observers.
func (s *RxSubject) Observers() int { return s.core.live() }

// Unsubscribed returns how many times Unsubscribe was called.
func (s *RxSubject) Unsubscribed() int { return s.core.teardownCount() }

type unsubscriber func()

func (u unsubscriber) Unsubscribe() { u() }
