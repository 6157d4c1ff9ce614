package event

// Reply is what a Sink answers to each event it receives.
type Reply uint8

const (
	// More asks the producer to keep going.
	More Reply = iota
	// NoMore tells the producer that no further events are wanted.
	NoMore
)

// String returns "more" or "no-more".
func (r Reply) String() string {
	if r == NoMore {
		return "no-more"
	}
	return "more"
}

// Sink receives events pushed by a producer.
type Sink func(Event) Reply

// Unsub detaches a subscription. Implementations must tolerate repeated calls.
type Unsub func()

// Binder connects a sink to a live producer and returns the teardown for
// that connection. A stream runtime calls it once per binding.
type Binder func(sink Sink) Unsub

// Push delivers events to sink in order and stops at the first NoMore.
// It returns the last reply.
func Push(sink Sink, events ...Event) Reply {
	reply := More
	for _, e := range events {
		if reply = sink(e); reply == NoMore {
			return NoMore
		}
	}
	return reply
}

// Discard is a Sink that drops everything and asks for nothing more.
func Discard(Event) Reply { return NoMore }

// Nop is an Unsub that does nothing.
func Nop() {}
