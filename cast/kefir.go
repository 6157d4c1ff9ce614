package cast

import (
	"strconv"

	"github.com/kbukum/streamcast/errors"
	"github.com/kbukum/streamcast/event"
)

func kefirBinder(src KefirObservable, o *options) event.Binder {
	return func(sink event.Sink) event.Unsub {
		b := newBridge(ProtocolKefir, sink, o)
		l := &kefirListener{bridge: b}
		src.OnAny(l)
		b.attach(func() { src.OffAny(l) })
		return b.unsubscribe
	}
}

// kefirListener is registered with OnAny. A fresh pointer per bridge keeps
// OffAny from removing another subscriber's listener.
type kefirListener struct {
	bridge *bridge
}

func (l *kefirListener) HandleAny(ev KefirEvent) {
	e, ok := decodeKefir(ev)
	if !ok {
		l.bridge.unknown(strconv.Quote(ev.Type))
		return
	}
	l.bridge.forward(e)
}

// decodeKefir maps a Kefir event onto the target vocabulary. Current values
// become Initial. Errors are not terminal in Kefir and stay that way.
func decodeKefir(ev KefirEvent) (event.Event, bool) {
	switch ev.Type {
	case KefirValue:
		if ev.Current {
			return event.Initial(event.Constant(ev.Value)), true
		}
		return event.Next(event.Constant(ev.Value)), true
	case KefirError:
		return event.Error(errors.SourceError(ev.Value)), true
	case KefirEnd:
		return event.End(), true
	default:
		return event.Event{}, false
	}
}
