package observability

import "context"

// Close reasons reported to Recorder.BridgeClosed.
const (
	ReasonEnded        = "ended"
	ReasonStopped      = "stopped"
	ReasonUnsubscribed = "unsubscribed"
)

// Recorder receives bridge lifecycle and traffic notifications.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// CastDetected is called once per Cast with the detected protocol name.
	CastDetected(ctx context.Context, protocol string)
	// BridgeOpened is called when a bridge subscribes to its source.
	BridgeOpened(ctx context.Context, protocol string)
	// BridgeClosed is called once when a bridge detaches from its source.
	BridgeClosed(ctx context.Context, protocol, reason string)
	// EventForwarded is called for every event handed to the downstream sink.
	EventForwarded(ctx context.Context, protocol, kind string)
	// UnknownEvent is called for every source event that was dropped
	// because its shape was not recognised.
	UnknownEvent(ctx context.Context, protocol string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

func (NopRecorder) CastDetected(context.Context, string)           {}
func (NopRecorder) BridgeOpened(context.Context, string)           {}
func (NopRecorder) BridgeClosed(context.Context, string, string)   {}
func (NopRecorder) EventForwarded(context.Context, string, string) {}
func (NopRecorder) UnknownEvent(context.Context, string)           {}
