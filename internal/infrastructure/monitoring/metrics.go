package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	ItemsMintedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_items_minted_total",
			Help: "Total number of items minted",
		},
		[]string{"rarity"},
	)

	ItemsForSale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "market_items_for_sale",
			Help: "Number of items currently listed for sale",
		},
	)

	PurchaseAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_purchase_attempts_total",
			Help: "Total number of purchase attempts",
		},
	)

	PurchaseSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_purchase_success_total",
			Help: "Total number of settled purchases",
		},
	)

	PurchaseFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_purchase_failure_total",
			Help: "Total number of failed purchases",
		},
		[]string{"reason"},
	)

	OffersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_offers_placed_total",
			Help: "Total number of offers placed",
		},
	)

	OffersAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_offers_accepted_total",
			Help: "Total number of offers accepted",
		},
	)

	OffersDeclinedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_offers_declined_total",
			Help: "Total number of offers declined",
		},
	)

	LikesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_likes_total",
			Help: "Total number of item likes",
		},
	)

	TipsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_tips_total",
			Help: "Total number of tips sent to creators",
		},
	)

	TipVolumeTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_tip_volume_total",
			Help: "Cumulative tip volume in base currency units",
		},
	)

	MarketplaceFeesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_fees_collected_total",
			Help: "Cumulative marketplace fees in base currency units",
		},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	DBConnectionWaits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connection_waits",
			Help: "Cumulative number of times a connection had to be waited for",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	RedisLockAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_attempts_total",
			Help: "Total number of distributed lock attempts",
		},
		[]string{"lock_type"},
	)

	RedisLockSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_success_total",
			Help: "Total number of successful lock acquisitions",
		},
		[]string{"lock_type"},
	)

	RedisLockFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_failure_total",
			Help: "Total number of failed lock acquisitions",
		},
		[]string{"lock_type", "reason"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}
