// Package testutil provides in-memory sources and sinks for testing streamcast.
//
// Each supported source protocol has a fake that records how it was
// subscribed and torn down:
//
//   - RxLegacySubject and RxSubject: hot Rx subjects, optionally replaying
//     cold values on subscribe or completing when disposed
//   - KefirBus: a Kefir stream, or a property when built with a current value
//   - BaconBus: a Bacon bus that honours event.NoMore from its subscribers
//
// Collector is a sink that stores events without forcing their values, and
// Target is a cast target with no sharing: every Subscribe runs the binder.
//
// # Usage
//
//	bus := testutil.NewKefirProperty("beep")
//	c := testutil.NewCollector()
//	unsub := cast.Cast(testutil.Target{}, bus).Subscribe(c.Sink)
//	defer unsub()
//	bus.End()
//	// c.Recorded() == [{Initial beep} {End}]
package testutil
