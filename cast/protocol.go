package cast

import "github.com/kbukum/streamcast/event"

// Disposable is the subscription handle of legacy Rx observables.
type Disposable interface {
	Dispose()
}

// RxLegacyObservable is the shape of legacy (v4 and older) Rx observables:
// a three-callback Subscribe returning a Disposable, plus SubscribeOnNext,
// which only that generation has.
type RxLegacyObservable interface {
	Subscribe(onNext func(any), onError func(error), onCompleted func()) Disposable
	SubscribeOnNext(onNext func(any)) Disposable
}

// Subscription is the subscription handle of modern Rx observables.
type Subscription interface {
	Unsubscribe()
}

// RxObservable is the shape of modern (v5+) Rx observables. Both Rx
// generations subscribe with three callbacks; OnErrorResumeNext is what
// tells the modern one apart.
type RxObservable interface {
	Subscribe(next func(any), err func(error), complete func()) Subscription
	OnErrorResumeNext(next RxObservable) RxObservable
}

// Kefir event types.
const (
	KefirValue = "value"
	KefirError = "error"
	KefirEnd   = "end"
)

// KefirEvent is the tagged event object Kefir hands to OnAny listeners.
// Current marks a property's current value replayed on subscribe.
type KefirEvent struct {
	Type    string
	Value   any
	Current bool
}

// KefirListener receives every event of a Kefir observable. OffAny matches
// listeners by identity, so implementations should be pointers.
type KefirListener interface {
	HandleAny(ev KefirEvent)
}

// KefirObservable is the shape of Kefir streams and properties.
type KefirObservable interface {
	OnAny(l KefirListener)
	OffAny(l KefirListener)
}

// BaconEvent is the event object Bacon passes to Subscribe callbacks.
// Exactly one predicate is expected to hold. Value is an accessor and may be
// expensive; it is only called by whoever consumes the value.
type BaconEvent interface {
	IsInitial() bool
	IsNext() bool
	IsError() bool
	IsEnd() bool
	Value() any
	Err() error
}

// BaconObservable is the shape of Bacon streams and properties, including
// ones produced by a different copy of the library. The func returned by
// Subscribe is the unsubscriber.
type BaconObservable interface {
	Subscribe(sink func(BaconEvent) event.Reply) func()
	OnValue(f func(any)) func()
}
