package cast

import (
	"fmt"

	"github.com/kbukum/streamcast/errors"
	"github.com/kbukum/streamcast/event"
)

func baconBinder(src BaconObservable, o *options) event.Binder {
	return func(sink event.Sink) event.Unsub {
		b := newBridge(ProtocolBacon, sink, o)
		unsub := src.Subscribe(b.handleBacon)
		if unsub != nil {
			b.attach(unsub)
		}
		return b.unsubscribe
	}
}

// handleBacon answers the source with the bridge's own reply, so a Bacon
// source also stops on its side once downstream is done.
// A nil event is an unknown shape like any other.
func (b *bridge) handleBacon(ev BaconEvent) event.Reply {
	var (
		e  event.Event
		ok bool
	)
	if !isNil(ev) {
		e, ok = decodeBacon(ev)
	}
	if !ok {
		b.unknown(baconShape(ev))
		if b.active() {
			return event.More
		}
		return event.NoMore
	}
	return b.forward(e)
}

func baconShape(ev BaconEvent) string {
	if ev == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", ev)
}

// decodeBacon tests the predicates in the order Initial, Next, Error, End and
// the first one that holds decides. The value accessor is passed on uncalled.
func decodeBacon(ev BaconEvent) (event.Event, bool) {
	switch {
	case ev.IsInitial():
		return event.Initial(ev.Value), true
	case ev.IsNext():
		return event.Next(ev.Value), true
	case ev.IsError():
		return event.Error(errors.SourceError(ev.Err())), true
	case ev.IsEnd():
		return event.End(), true
	default:
		return event.Event{}, false
	}
}
