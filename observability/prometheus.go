package observability

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder records bridge metrics as Prometheus collectors.
type PrometheusRecorder struct {
	castTotal    *prometheus.CounterVec
	bridgeActive *prometheus.GaugeVec
	bridgeClosed *prometheus.CounterVec
	eventTotal   *prometheus.CounterVec
	unknownTotal *prometheus.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates the collectors under namespace and registers
// them with reg. Collectors that are already registered (for example by a
// second recorder on the same registry) are reused.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		castTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "casts_total",
			Help:      "Total number of casts by detected protocol",
		}, []string{AttrProtocol}),
		bridgeActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bridges_active",
			Help:      "Number of bridges currently attached to a source",
		}, []string{AttrProtocol}),
		bridgeClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridges_closed_total",
			Help:      "Total number of bridges detached, by reason",
		}, []string{AttrProtocol, AttrReason}),
		eventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of events forwarded downstream, by kind",
		}, []string{AttrProtocol, "kind"}),
		unknownTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_events_total",
			Help:      "Total number of source events dropped as unrecognised",
		}, []string{AttrProtocol}),
	}

	var err error
	if r.castTotal, err = registerOrReuse(reg, r.castTotal); err != nil {
		return nil, err
	}
	if r.bridgeActive, err = registerOrReuse(reg, r.bridgeActive); err != nil {
		return nil, err
	}
	if r.bridgeClosed, err = registerOrReuse(reg, r.bridgeClosed); err != nil {
		return nil, err
	}
	if r.eventTotal, err = registerOrReuse(reg, r.eventTotal); err != nil {
		return nil, err
	}
	if r.unknownTotal, err = registerOrReuse(reg, r.unknownTotal); err != nil {
		return nil, err
	}
	return r, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if stderrors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("registering streamcast collector: %w", err)
	}
	return c, nil
}

func (r *PrometheusRecorder) CastDetected(_ context.Context, protocol string) {
	r.castTotal.WithLabelValues(protocol).Inc()
}

func (r *PrometheusRecorder) BridgeOpened(_ context.Context, protocol string) {
	r.bridgeActive.WithLabelValues(protocol).Inc()
}

func (r *PrometheusRecorder) BridgeClosed(_ context.Context, protocol, reason string) {
	r.bridgeActive.WithLabelValues(protocol).Dec()
	r.bridgeClosed.WithLabelValues(protocol, reason).Inc()
}

func (r *PrometheusRecorder) EventForwarded(_ context.Context, protocol, kind string) {
	r.eventTotal.WithLabelValues(protocol, kind).Inc()
}

func (r *PrometheusRecorder) UnknownEvent(_ context.Context, protocol string) {
	r.unknownTotal.WithLabelValues(protocol).Inc()
}
