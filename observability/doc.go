// Package observability provides metrics and tracing for streamcast bridges.
//
// Metrics go through the Recorder interface, with an OpenTelemetry backend
// (NewOTelRecorder) and a Prometheus backend (NewPrometheusRecorder). Both
// count casts per detected protocol, forwarded events per kind, dropped
// unknown events and bridge lifetimes.
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("streamcast"))
//	defer mp.Shutdown(ctx)
//
//	rec, err := observability.NewOTelRecorder(observability.Meter("streamcast"))
//	s := cast.Cast(stream.Target{}, src, cast.WithRecorder(rec))
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("streamcast"))
//	defer tp.Shutdown(ctx)
//	s := cast.Cast(stream.Target{}, src, cast.WithTracer(observability.Tracer("streamcast")))
package observability
