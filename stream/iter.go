package stream

import (
	"context"
	"sync"

	"github.com/kbukum/streamcast/event"
)

// Iterator provides pull-based access to a stream's events.
// Close may be called at any time and is idempotent.
type Iterator interface {
	// Next returns the next event. Returns (zero, false, nil) after End.
	Next(ctx context.Context) (event.Event, bool, error)
	// Close unsubscribes from the stream.
	Close() error
}

// Iter subscribes to s and returns an iterator over its events. Error events
// are returned as events; only context errors come back as err. End is not
// returned: it exhausts the iterator. Pushes block once buffer events are
// waiting to be pulled. Close must be called unless the stream ended.
func (s *Stream) Iter(buffer int) Iterator {
	if buffer < 0 {
		buffer = 0
	}
	it := &channelIter{
		ch:   make(chan event.Event, buffer),
		done: make(chan struct{}),
	}
	// Subscribing may push synchronously and fill the buffer before anyone
	// pulls, so it must not happen on the caller's goroutine.
	it.wg.Add(1)
	go func() {
		defer it.wg.Done()
		unsub := s.Subscribe(it.push)
		it.mu.Lock()
		if it.closed {
			it.mu.Unlock()
			unsub()
			return
		}
		it.unsub = unsub
		it.mu.Unlock()
	}()
	return it
}

type channelIter struct {
	ch   chan event.Event
	done chan struct{}
	wg   sync.WaitGroup

	mu        sync.Mutex
	unsub     event.Unsub
	closed    bool
	exhausted bool
}

func (it *channelIter) push(e event.Event) event.Reply {
	select {
	case it.ch <- e:
	case <-it.done:
		return event.NoMore
	}
	if e.IsEnd() {
		return event.NoMore
	}
	return event.More
}

func (it *channelIter) Next(ctx context.Context) (event.Event, bool, error) {
	it.mu.Lock()
	finished := it.closed || it.exhausted
	it.mu.Unlock()
	if finished {
		return event.Event{}, false, nil
	}

	select {
	case e := <-it.ch:
		if e.IsEnd() {
			it.mu.Lock()
			it.exhausted = true
			it.mu.Unlock()
			return event.Event{}, false, nil
		}
		return e, true, nil
	case <-it.done:
		return event.Event{}, false, nil
	case <-ctx.Done():
		return event.Event{}, false, ctx.Err()
	}
}

func (it *channelIter) Close() error {
	it.mu.Lock()
	if it.closed {
		it.mu.Unlock()
		return nil
	}
	it.closed = true
	unsub := it.unsub
	it.unsub = nil
	close(it.done)
	it.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	it.wg.Wait()
	return nil
}
