// Package bootstrap turns a config.Config into the services cast uses:
// a logger, a metrics recorder and a tracer.
//
// # Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	rt, err := bootstrap.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer rt.Shutdown(context.Background())
//
//	s := cast.Cast(stream.Target{}, source, rt.CastOptions()...)
//
// With the prometheus backend, metrics go to rt.Registry unless a registerer
// is supplied with WithRegisterer. The otel backend and tracing push over
// OTLP HTTP and are flushed by Shutdown.
package bootstrap
