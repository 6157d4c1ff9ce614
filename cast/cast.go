package cast

import (
	"context"

	"github.com/kbukum/streamcast/event"
	"github.com/kbukum/streamcast/logger"
)

// Target builds streams in the output protocol.
//
// FromBinder must call the binder lazily, once per subscription it wants to
// drive, and call the returned Unsub when that subscription is no longer
// wanted. Returning event.NoMore from the sink is the stop signal.
type Target[S any] interface {
	// Once returns a stream that emits value then ends.
	Once(value any) S
	// FromBinder returns a stream fed by binder.
	FromBinder(binder event.Binder) S
}

// Cast returns a stream of target's kind mirroring input. Inputs that
// implement none of the supported protocols become a single-value stream.
// Cast never subscribes to input itself; that happens when the returned
// stream is subscribed.
func Cast[S any](target Target[S], input any, opts ...Option) S {
	o := newOptions(opts)
	protocol := Detect(input)
	o.recorder.CastDetected(context.Background(), protocol.String())
	if o.log.DebugEnabled() {
		o.log.Debug("cast input", logger.Fields(logger.FieldProtocol, protocol.String()))
	}

	switch protocol {
	case ProtocolRxLegacy:
		return target.FromBinder(rxLegacyBinder(input.(RxLegacyObservable), o))
	case ProtocolRx:
		return target.FromBinder(rxBinder(input.(RxObservable), o))
	case ProtocolKefir:
		return target.FromBinder(kefirBinder(input.(KefirObservable), o))
	case ProtocolBacon:
		return target.FromBinder(baconBinder(input.(BaconObservable), o))
	default:
		return target.Once(input)
	}
}
