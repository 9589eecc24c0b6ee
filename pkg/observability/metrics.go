package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reasons used as the "reason" label of protocompat_runs_failed_total.
const (
	ReasonUnsupported = "unsupported_feature"
	ReasonMalformed   = "malformed_description"
	ReasonCanceled    = "canceled"
	ReasonOther       = "other"
)

// Metrics holds the engine collectors.
type Metrics struct {
	registry *prometheus.Registry

	Rounds        prometheus.Counter
	Pairs         prometheus.Counter
	RoundDuration prometheus.Histogram
	RunsFailed    *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Rounds: factory.NewCounter(prometheus.CounterOpts{
			Name: "protocompat_rounds_total",
			Help: "Total number of compatibility rounds computed",
		}),
		Pairs: factory.NewCounter(prometheus.CounterOpts{
			Name: "protocompat_pairs_total",
			Help: "Total number of state pairs scored",
		}),
		RoundDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "protocompat_round_duration_seconds",
			Help:    "Duration of a compatibility round",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		RunsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "protocompat_runs_failed_total",
			Help: "Compatibility runs aborted, by reason",
		}, []string{"reason"}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoundEnd: func(_ context.Context, e *domain.RoundEvent) {
			m.Rounds.Inc()
			m.RoundDuration.Observe(e.Duration.Seconds())
		},
		OnPairScored: func(_ context.Context, _ *domain.PairEvent) {
			m.Pairs.Inc()
		},
		OnRunFailed: func(_ context.Context, e *domain.FailureEvent) {
			m.RunsFailed.WithLabelValues(Reason(e.Err)).Inc()
		},
	}
}

// Reason classifies a run error into a metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFeature):
		return ReasonUnsupported
	case errors.Is(err, domain.ErrMalformedDescription):
		return ReasonMalformed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return ReasonOther
	}
}
