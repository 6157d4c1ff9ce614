package cast

import (
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/streamcast/logger"
	"github.com/kbukum/streamcast/observability"
)

// Option configures a Cast call.
type Option func(*options)

type options struct {
	log         *logger.Logger
	recorder    observability.Recorder
	tracer      trace.Tracer
	diagnostics bool
}

func newOptions(opts []Option) *options {
	o := &options{diagnostics: true}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Get("streamcast")
	}
	if o.recorder == nil {
		o.recorder = observability.NopRecorder{}
	}
	if o.tracer == nil {
		o.tracer = noop.NewTracerProvider().Tracer(observability.TracerName)
	}
	return o
}

// WithLogger sets the logger used for bridge diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r observability.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithTracer enables a span per bridge, covering subscribe to detach.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithDiagnostics turns warnings about unrecognised source events on or off.
// Unknown events are dropped either way. Enabled by default.
func WithDiagnostics(enabled bool) Option {
	return func(o *options) { o.diagnostics = enabled }
}
