package cast

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamcast/errors"
	"github.com/kbukum/streamcast/event"
	"github.com/kbukum/streamcast/logger"
	"github.com/kbukum/streamcast/observability"
)

type bridgeState uint8

const (
	stateActive bridgeState = iota
	stateTearingDown
	stateClosed
)

// bridge links one source subscription to one downstream sink.
//
// The mutex guards state, sink and detach only. It is never held while
// calling the sink or the source's teardown, so a source that delivers
// synchronously from inside Dispose, or a sink that unsubscribes from inside
// its own callback, re-enters without deadlocking.
type bridge struct {
	mu     sync.Mutex
	state  bridgeState
	sink   event.Sink
	detach func()
	events int

	// delivering counts sink calls in flight. An unsubscribe issued while
	// one is running is the sink stopping from inside its callback.
	delivering int

	id       string
	protocol Protocol
	opts     *options
	log      *logger.Logger
	ctx      context.Context
	span     trace.Span
}

func newBridge(protocol Protocol, sink event.Sink, o *options) *bridge {
	id := uuid.NewString()
	ctx, span := o.tracer.Start(context.Background(), observability.SpanBridge,
		trace.WithAttributes(
			attribute.String(observability.AttrProtocol, protocol.String()),
			attribute.String(observability.AttrBridgeID, id),
		),
	)
	b := &bridge{
		state:    stateActive,
		sink:     sink,
		id:       id,
		protocol: protocol,
		opts:     o,
		log: o.log.WithFields(logger.Fields(
			logger.FieldProtocol, protocol.String(),
			logger.FieldBridgeID, id,
		)),
		ctx:  ctx,
		span: span,
	}
	o.recorder.BridgeOpened(ctx, protocol.String())
	b.log.Debug("bridge opened")
	return b
}

// attach records the source teardown. If the bridge already closed while the
// source was still subscribing, teardown runs right away.
func (b *bridge) attach(detach func()) {
	b.mu.Lock()
	if b.state == stateActive {
		b.detach = detach
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	detach()
}

func (b *bridge) active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == stateActive
}

// push forwards a non-terminal event. It returns NoMore once the bridge is
// no longer active, including when this very event made the sink stop.
func (b *bridge) push(e event.Event) event.Reply {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return event.NoMore
	}
	sink := b.sink
	b.events++
	b.delivering++
	b.mu.Unlock()

	b.opts.recorder.EventForwarded(b.ctx, b.protocol.String(), e.Kind().String())
	reply := sink(e)

	b.mu.Lock()
	b.delivering--
	b.mu.Unlock()

	if reply == event.NoMore {
		b.close(observability.ReasonStopped)
		return event.NoMore
	}
	if !b.active() {
		return event.NoMore
	}
	return event.More
}

// forward routes a decoded event: End closes the bridge, anything else is pushed.
func (b *bridge) forward(e event.Event) event.Reply {
	if e.IsEnd() {
		b.end()
		return event.NoMore
	}
	return b.push(e)
}

// end detaches from the source and then delivers End downstream.
func (b *bridge) end() {
	sink, ok := b.shutdown(observability.ReasonEnded)
	if !ok {
		return
	}
	b.opts.recorder.EventForwarded(b.ctx, b.protocol.String(), event.KindEnd.String())
	sink(event.End())
}

// fail forwards a terminal source error as Error followed by End.
func (b *bridge) fail(err error) {
	if b.push(event.Error(errors.SourceError(err))) == event.More {
		b.end()
	}
}

// unsubscribe is the teardown handed to the target. Safe to call repeatedly.
// Called during a delivery, as a multicasting target does when its last
// subscriber returns NoMore, it counts as a downstream stop.
func (b *bridge) unsubscribe() {
	b.mu.Lock()
	inDelivery := b.delivering > 0
	b.mu.Unlock()
	if inDelivery {
		b.close(observability.ReasonStopped)
		return
	}
	b.close(observability.ReasonUnsubscribed)
}

func (b *bridge) close(reason string) {
	b.shutdown(reason)
}

// shutdown moves the bridge out of the active state exactly once. The sink is
// swapped for event.Discard before the source teardown runs so anything the
// source delivers during teardown is dropped. The previous sink is returned
// to the caller that won the transition.
func (b *bridge) shutdown(reason string) (event.Sink, bool) {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return nil, false
	}
	b.state = stateTearingDown
	sink := b.sink
	b.sink = event.Discard
	detach := b.detach
	b.detach = nil
	b.mu.Unlock()

	if detach != nil {
		detach()
	}

	b.mu.Lock()
	b.state = stateClosed
	events := b.events
	b.mu.Unlock()

	if reason == observability.ReasonStopped {
		b.span.AddEvent(observability.SpanEventStop)
	}
	b.opts.recorder.BridgeClosed(b.ctx, b.protocol.String(), reason)
	b.log.Debug("bridge closed", logger.Fields(logger.FieldReason, reason, "events", events))
	b.span.SetAttributes(
		attribute.String(observability.AttrReason, reason),
		attribute.Int(observability.AttrEventCount, events),
	)
	b.span.End()
	return sink, true
}

// unknown reports a source event whose shape is not recognised. The event is
// dropped and the bridge keeps running.
func (b *bridge) unknown(shape string) {
	if !b.active() {
		return
	}
	b.opts.recorder.UnknownEvent(b.ctx, b.protocol.String())
	b.span.AddEvent(observability.SpanEventUnknown, trace.WithAttributes(
		attribute.String(observability.AttrEventKind, shape),
	))
	if b.opts.diagnostics {
		b.log.WithError(errors.UnknownEvent(b.protocol.String(), shape)).
			Warn("dropping unknown source event", logger.Fields(logger.FieldEventType, shape))
	}
}
