package cast

import "github.com/kbukum/streamcast/event"

// Both Rx generations treat onError as terminal, so it becomes Error then End.

func rxLegacyBinder(src RxLegacyObservable, o *options) event.Binder {
	return func(sink event.Sink) event.Unsub {
		b := newBridge(ProtocolRxLegacy, sink, o)
		d := src.Subscribe(b.rxNext, b.fail, b.end)
		if !isNil(d) {
			b.attach(d.Dispose)
		}
		return b.unsubscribe
	}
}

func rxBinder(src RxObservable, o *options) event.Binder {
	return func(sink event.Sink) event.Unsub {
		b := newBridge(ProtocolRx, sink, o)
		s := src.Subscribe(b.rxNext, b.fail, b.end)
		if !isNil(s) {
			b.attach(s.Unsubscribe)
		}
		return b.unsubscribe
	}
}

func (b *bridge) rxNext(v any) {
	b.push(event.Next(event.Constant(v)))
}
