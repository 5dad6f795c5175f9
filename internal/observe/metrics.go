// Package observe holds the prometheus instrumentation of the paste store.
package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the outcomes of store operations. A single instance is
// shared by the handlers and the janitor.
type Metrics struct {
	PastesCreated  prometheus.Counter
	PasteReads     *prometheus.CounterVec
	PastesDeleted  prometheus.Counter
	ExpiredSwept   prometheus.Counter
	RateLimitedReq prometheus.Counter
}

// NewMetrics registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PastesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vanishbin",
			Name:      "pastes_created_total",
			Help:      "Number of pastes created.",
		}),
		PasteReads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vanishbin",
			Name:      "paste_reads_total",
			Help:      "Number of read attempts by outcome.",
		}, []string{"outcome"}),
		PastesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vanishbin",
			Name:      "pastes_deleted_total",
			Help:      "Number of pastes removed by an explicit delete.",
		}),
		ExpiredSwept: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vanishbin",
			Name:      "expired_pastes_swept_total",
			Help:      "Number of expired pastes removed by the janitor.",
		}),
		RateLimitedReq: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vanishbin",
			Name:      "rate_limited_requests_total",
			Help:      "Number of requests rejected by the rate limiter.",
		}),
	}
}

// Read outcome labels.
const (
	ReadOutcomeHit         = "hit"
	ReadOutcomeUnavailable = "unavailable"
	ReadOutcomeError       = "error"
)
