// Package promobserve records reference lookup events as Prometheus metrics.
package promobserve

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metric names, before namespacing.
const (
	MetricLookupsTotal          = "lookups_total"
	MetricLookupDurationSeconds = "lookup_duration_seconds"
	MetricLookupsInFlight       = "lookups_in_flight"
	MetricLookupsDiscardedTotal = "lookups_discarded_total"
)

// Lookup outcomes used as the "outcome" label.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Config holds configuration for the observer.
type Config struct {
	// Namespace is the prefix for all metrics.
	// Default: "skemaform"
	Namespace string

	// HistogramBuckets are the buckets for lookup durations.
	// Default: prometheus.DefBuckets
	HistogramBuckets []float64
}

// Observer implements the form's lookup observer on Prometheus collectors.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Observer struct {
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	inFlight       *prometheus.GaugeVec
	discardedTotal *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer, cfg Config) (*Observer, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = "skemaform"
	}
	if len(cfg.HistogramBuckets) == 0 {
		cfg.HistogramBuckets = prometheus.DefBuckets
	}
	o := &Observer{
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricLookupsTotal,
			Help:      "Reference lookups completed, by target and outcome.",
		}, []string{"target", "outcome"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      MetricLookupDurationSeconds,
			Help:      "Reference lookup latency in seconds.",
			Buckets:   cfg.HistogramBuckets,
		}, []string{"target"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      MetricLookupsInFlight,
			Help:      "Reference lookups started and not yet applied or discarded.",
		}, []string{"target"}),
		discardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      MetricLookupsDiscardedTotal,
			Help:      "Lookup results dropped because the field moved on.",
		}, []string{"target"}),
	}
	for _, c := range []prometheus.Collector{o.lookupsTotal, o.lookupDuration, o.inFlight, o.discardedTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) LookupStarted(target string) {
	o.inFlight.WithLabelValues(target).Inc()
}

func (o *Observer) LookupCompleted(target string, elapsed time.Duration, err error) {
	o.inFlight.WithLabelValues(target).Dec()
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	o.lookupsTotal.WithLabelValues(target, outcome).Inc()
	o.lookupDuration.WithLabelValues(target).Observe(elapsed.Seconds())
}

func (o *Observer) LookupDiscarded(target string) {
	o.inFlight.WithLabelValues(target).Dec()
	o.discardedTotal.WithLabelValues(target).Inc()
}
