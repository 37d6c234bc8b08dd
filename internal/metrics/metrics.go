package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the gateway's Prometheus collectors.
type Metrics struct {
	RateFetchTotal     *prometheus.CounterVec
	RateFallbackTotal  prometheus.Counter
	RateFetchDuration  prometheus.Histogram
	CacheHitTotal      prometheus.Counter
	PurchasesTotal     *prometheus.CounterVec
	SettlementsTotal   prometheus.Counter
	PairBoardFetches   prometheus.Counter
}

// New registers the gateway collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RateFetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "exchange_rate_fetch_total",
			Help: "Rate source fetch attempts by source and outcome",
		}, []string{"source", "outcome"}),

		RateFallbackTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_fallback_total",
			Help: "Times the chain fell through to the static table",
		}),

		RateFetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "exchange_rate_fetch_duration_seconds",
			Help:    "Duration of full source-chain runs",
			Buckets: prometheus.DefBuckets,
		}),

		CacheHitTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_rate_cache_hit_total",
			Help: "Rate requests served from the fresh cache",
		}),

		PurchasesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "currency_purchases_total",
			Help: "Purchase attempts by result",
		}, []string{"result"}),

		SettlementsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "currency_settlements_total",
			Help: "Settlements completed",
		}),

		PairBoardFetches: factory.NewCounter(prometheus.CounterOpts{
			Name: "exchange_pair_board_fetch_total",
			Help: "Pair board scrape runs",
		}),
	}
}

// NewNop returns collectors backed by a throwaway registry, for tests.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
