// Package cast converts streams from other reactive protocols into a target
// stream type.
//
// Detection is structural and ordered; the first match wins:
//
//   - RxLegacyObservable: three-callback Subscribe plus SubscribeOnNext, torn down with Dispose
//   - RxObservable: three-callback Subscribe plus OnErrorResumeNext, torn down with Unsubscribe
//   - KefirObservable: OnAny/OffAny with tagged events, torn down with OffAny
//   - BaconObservable: Subscribe with event objects, torn down by the returned func
//
// Anything else, nil included, is emitted as a single value followed by End.
//
// Each subscription of the returned stream binds a fresh bridge to the
// source. Events go through one to one and in order. Values stay behind
// thunks until the consumer asks for them. When the consumer's sink answers
// event.NoMore the bridge detaches from the source exactly once and drops
// whatever the source still delivers.
//
// # Usage
//
//	s := cast.Cast(stream.Target{}, kefirProperty,
//	    cast.WithLogger(log),
//	    cast.WithRecorder(rec),
//	)
//	unsub := s.Subscribe(func(e event.Event) event.Reply {
//	    // ...
//	    return event.More
//	})
//	defer unsub()
package cast
