package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/streamcast/cast"
	"github.com/kbukum/streamcast/config"
	"github.com/kbukum/streamcast/logger"
	"github.com/kbukum/streamcast/observability"
)

// Runtime holds the ambient services built from a Config.
type Runtime struct {
	Cfg      *config.Config
	Logger   *logger.Logger
	Recorder observability.Recorder
	Tracer   trace.Tracer
	// Registry is the Prometheus registry metrics are registered with when
	// the prometheus backend is selected and no registerer was supplied.
	Registry *prometheus.Registry

	onStop []Hook
}

// New applies defaults to cfg, validates it and builds the logger, the
// metrics recorder and the tracer it asks for. Call Shutdown when done.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	rt := &Runtime{
		Cfg:      cfg,
		Recorder: observability.NopRecorder{},
		Tracer:   noop.NewTracerProvider().Tracer(observability.TracerName),
	}

	if o.logger != nil {
		rt.Logger = o.logger
	} else {
		rt.Logger = logger.New(&cfg.Logging, cfg.Name)
		logger.SetGlobalLogger(rt.Logger)
	}
	rt.Logger = rt.Logger.WithComponent("streamcast")
	logger.Register("streamcast", rt.Logger)
	rt.OnStop(func(context.Context) error {
		logger.Unregister("streamcast")
		return nil
	})

	if cfg.Metrics.Enabled {
		if err := rt.initMetrics(ctx, o); err != nil {
			_ = rt.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.Tracing.Enabled {
		if err := rt.initTracing(ctx); err != nil {
			_ = rt.Shutdown(ctx)
			return nil, err
		}
	}

	rt.Logger.Debug("runtime initialized", logger.Fields(
		"metrics", cfg.Metrics.Enabled,
		"backend", cfg.Metrics.Backend,
		"tracing", cfg.Tracing.Enabled,
	))
	return rt, nil
}

func (r *Runtime) initMetrics(ctx context.Context, o *runtimeOptions) error {
	m := r.Cfg.Metrics
	switch m.Backend {
	case config.BackendPrometheus:
		reg := o.registerer
		if reg == nil {
			r.Registry = prometheus.NewRegistry()
			reg = r.Registry
		}
		rec, err := observability.NewPrometheusRecorder(reg, m.Namespace)
		if err != nil {
			return fmt.Errorf("prometheus recorder: %w", err)
		}
		r.Recorder = rec
	default:
		mc := observability.DefaultMeterConfig(r.Cfg.Name)
		mc.ServiceVersion = r.Cfg.Version
		mc.Environment = r.Cfg.Environment
		mc.Endpoint = m.Endpoint
		mc.Interval = m.Interval
		mp, err := observability.InitMeter(ctx, &mc)
		if err != nil {
			return err
		}
		r.OnStop(mp.Shutdown)
		rec, err := observability.NewOTelRecorder(mp.Meter(observability.TracerName))
		if err != nil {
			return fmt.Errorf("otel recorder: %w", err)
		}
		r.Recorder = rec
	}
	return nil
}

func (r *Runtime) initTracing(ctx context.Context) error {
	t := r.Cfg.Tracing
	tc := observability.DefaultTracerConfig(r.Cfg.Name)
	tc.ServiceVersion = r.Cfg.Version
	tc.Environment = r.Cfg.Environment
	tc.Endpoint = t.Endpoint
	tc.Insecure = t.Insecure
	tc.SampleRate = t.SampleRate
	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return err
	}
	r.OnStop(tp.Shutdown)
	r.Tracer = tp.Tracer(observability.TracerName)
	return nil
}

// CastOptions returns the cast options wired to this runtime.
func (r *Runtime) CastOptions() []cast.Option {
	return []cast.Option{
		cast.WithLogger(r.Logger),
		cast.WithRecorder(r.Recorder),
		cast.WithTracer(r.Tracer),
		cast.WithDiagnostics(r.Cfg.Diagnostics.ReportUnknownEvents),
	}
}

// Shutdown runs the stop hooks in reverse registration order. It keeps going
// past failures and returns them joined.
func (r *Runtime) Shutdown(ctx context.Context) error {
	hooks := r.onStop
	r.onStop = nil
	return runHooksReverse(ctx, hooks)
}

// Options is New followed by CastOptions, for callers that only need the
// options and a shutdown func.
func Options(ctx context.Context, cfg *config.Config, opts ...Option) ([]cast.Option, func(context.Context) error, error) {
	rt, err := New(ctx, cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return rt.CastOptions(), rt.Shutdown, nil
}
