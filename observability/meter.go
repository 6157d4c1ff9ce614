package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/kbukum/streamcast/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider with an OTLP HTTP
// exporter and installs it globally. The caller owns shutdown.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(config.ServiceName, config.ServiceVersion, config.Environment)),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// newResource describes the service without pinning a semantic-convention
// schema, so it merges with whatever the SDK defaults to.
func newResource(serviceName, serviceVersion, environment string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String(AttrServiceName, serviceName),
		attribute.String(AttrServiceVersion, serviceVersion),
		attribute.String(AttrEnvironment, environment),
	)
}

// OTelRecorder records bridge metrics with OpenTelemetry instruments.
type OTelRecorder struct {
	castTotal    metric.Int64Counter
	bridgeActive metric.Int64UpDownCounter
	bridgeClosed metric.Int64Counter
	eventTotal   metric.Int64Counter
	unknownTotal metric.Int64Counter
}

var _ Recorder = (*OTelRecorder)(nil)

// NewOTelRecorder creates metric instruments on the given meter.
func NewOTelRecorder(meter metric.Meter) (*OTelRecorder, error) {
	castTotal, err := meter.Int64Counter("streamcast.cast.total",
		metric.WithDescription("Total number of casts by detected protocol"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamcast.cast.total counter: %w", err)
	}

	bridgeActive, err := meter.Int64UpDownCounter("streamcast.bridge.active",
		metric.WithDescription("Number of bridges currently attached to a source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamcast.bridge.active gauge: %w", err)
	}

	bridgeClosed, err := meter.Int64Counter("streamcast.bridge.closed",
		metric.WithDescription("Total number of bridges detached, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamcast.bridge.closed counter: %w", err)
	}

	eventTotal, err := meter.Int64Counter("streamcast.event.total",
		metric.WithDescription("Total number of events forwarded downstream, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamcast.event.total counter: %w", err)
	}

	unknownTotal, err := meter.Int64Counter("streamcast.event.unknown",
		metric.WithDescription("Total number of source events dropped as unrecognised"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamcast.event.unknown counter: %w", err)
	}

	return &OTelRecorder{
		castTotal:    castTotal,
		bridgeActive: bridgeActive,
		bridgeClosed: bridgeClosed,
		eventTotal:   eventTotal,
		unknownTotal: unknownTotal,
	}, nil
}

func (r *OTelRecorder) CastDetected(ctx context.Context, protocol string) {
	r.castTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrProtocol, protocol)))
}

func (r *OTelRecorder) BridgeOpened(ctx context.Context, protocol string) {
	r.bridgeActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrProtocol, protocol)))
}

func (r *OTelRecorder) BridgeClosed(ctx context.Context, protocol, reason string) {
	r.bridgeActive.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrProtocol, protocol)))
	r.bridgeClosed.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrProtocol, protocol),
		attribute.String(AttrReason, reason),
	))
}

func (r *OTelRecorder) EventForwarded(ctx context.Context, protocol, kind string) {
	r.eventTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrProtocol, protocol),
		attribute.String(AttrEventKind, kind),
	))
}

func (r *OTelRecorder) UnknownEvent(ctx context.Context, protocol string) {
	r.unknownTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrProtocol, protocol)))
}
