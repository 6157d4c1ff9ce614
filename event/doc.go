// Package event defines the event vocabulary of streamcast's target protocol.
//
// An Event is one of Initial, Next, Error or End. Value-carrying events hold
// a Thunk instead of the value itself, so nothing is computed until a
// consumer calls Value. Producers push events into a Sink; the Sink's Reply
// tells the producer whether to continue (More) or stop (NoMore).
//
// # Usage
//
//	sink := func(e event.Event) event.Reply {
//	    if e.IsNext() {
//	        fmt.Println(e.Value())
//	    }
//	    return event.More
//	}
//	event.Push(sink, event.Next(event.Constant(1)), event.End())
package event
