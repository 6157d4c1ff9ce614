// Package stream is a small event stream runtime and the default target for
// cast.Cast.
//
// Streams are lazy and multicast. The binder of a FromBinder stream runs when
// the first subscriber arrives; later subscribers share that binding. When the
// last subscriber leaves the binding is released, and the next subscriber
// binds again. End finishes a stream for good: anyone subscribing afterwards
// receives End straight away.
//
// A subscriber stops receiving events once its sink returns event.NoMore.
//
// # Usage
//
//	s := cast.Cast(stream.Target{}, source)
//	unsub := s.OnValue(func(v any) {
//	    fmt.Println(v)
//	})
//	defer unsub()
//
// Pull style:
//
//	it := s.Iter(16)
//	defer it.Close()
//	for {
//	    e, ok, err := it.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    // ...
//	}
package stream
