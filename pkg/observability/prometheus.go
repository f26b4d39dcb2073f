package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements SimulationHooks and CacheHooks with Prometheus
// collectors.
type PrometheusHooks struct {
	votes        *prometheus.CounterVec
	simulations  *prometheus.CounterVec
	simDuration  *prometheus.HistogramVec
	rankDuration *prometheus.HistogramVec
	rankErrors   *prometheus.CounterVec
	cacheOps     *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec
}

// NewPrometheusHooks registers the tourney collectors with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		votes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_votes_total",
			Help: "Votes recorded, by pairing strategy.",
		}, []string{"strategy"}),
		simulations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_simulations_total",
			Help: "Completed simulations, by pairing strategy and status.",
		}, []string{"strategy", "status"}),
		simDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tourney_simulation_duration_seconds",
			Help:    "Wall time of one vote loop.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"strategy"}),
		rankDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tourney_rank_duration_seconds",
			Help:    "Wall time of one aggregation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"aggregator"}),
		rankErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_rank_errors_total",
			Help: "Aggregations that failed a precondition.",
		}, []string{"aggregator"}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_cache_operations_total",
			Help: "Cache lookups and writes, by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}, []string{"key_type"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnSimulationStart(context.Context, string, int, int) {}

func (h *PrometheusHooks) OnVote(_ context.Context, strategy string) {
	h.votes.WithLabelValues(strategy).Inc()
}

func (h *PrometheusHooks) OnSimulationComplete(_ context.Context, strategy string, _ int, d time.Duration, err error) {
	h.simulations.WithLabelValues(strategy, status(err)).Inc()
	h.simDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnRankComplete(_ context.Context, aggregator string, _ int, d time.Duration, err error) {
	if err != nil {
		h.rankErrors.WithLabelValues(aggregator).Inc()
		return
	}
	h.rankDuration.WithLabelValues(aggregator).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}
