package metrics

import (
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                    sync.Once
	metricsRouter           *chi.Mux
	ledgerOperationDuration *prometheus.HistogramVec
	httpRequestDuration     *prometheus.HistogramVec
	queueSendErrorCounter   prometheus.Counter
	queuePublishedCounter   *prometheus.CounterVec
	pollerDurationHistogram *prometheus.HistogramVec
	totalStakedGauge        prometheus.Gauge
	availableRewardsGauge   prometheus.Gauge
	currentBlockGauge       prometheus.Gauge
	outboxPendingGauge      prometheus.Gauge
	feesCollectedCounter    prometheus.Counter
	dbLatency               *prometheus.HistogramVec
)

func init() {
	newMetrics()
}

// Init registers the collectors and serves them on metricsPort. Values
// recorded before Init are kept and exported once registered.
func Init(metricsPort int) {
	once.Do(func() {
		registerMetrics()
		initMetricsRouter(metricsPort)
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// newMetrics creates the Prometheus collectors.
func newMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Histogram of ledger operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming API request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "route", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	queuePublishedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_published_events_total",
			Help: "The total number of ledger events confirmed by the queue",
		},
		[]string{"event_type"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	totalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_total_staked",
			Help: "Principal currently staked in the ledger",
		},
	)

	availableRewardsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_available_rewards",
			Help: "Tokens left in the reward pool",
		},
	)

	currentBlockGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_current_block",
			Help: "Last block height observed by the stats poller",
		},
	)

	outboxPendingGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_outbox_pending",
			Help: "Committed events not yet published to the queue",
		},
	)

	feesCollectedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_fees_collected_total",
			Help: "Total fees routed to the fee recipient",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
}

// registerMetrics registers the collectors with the default registry.
func registerMetrics() {
	prometheus.MustRegister(
		ledgerOperationDuration,
		httpRequestDuration,
		queueSendErrorCounter,
		queuePublishedCounter,
		pollerDurationHistogram,
		totalStakedGauge,
		availableRewardsGauge,
		currentBlockGauge,
		outboxPendingGauge,
		feesCollectedCounter,
		dbLatency,
	)
}

func RecordLedgerOperation(d time.Duration, operation string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	ledgerOperationDuration.WithLabelValues(operation, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

// StartHttpRequestDurationTimer starts a timer to measure an incoming API request.
// The route is only known once the router matched the request, so it is
// passed when the timer stops.
func StartHttpRequestDurationTimer(method string) func(route string, statusCode int) {
	startTime := time.Now()
	return func(route string, statusCode int) {
		httpRequestDuration.WithLabelValues(
			method,
			route,
			fmt.Sprintf("%d", statusCode),
		).Observe(time.Since(startTime).Seconds())
	}
}

// RecordLedgerTotals exports the pool and principal totals. Amounts beyond
// float64 precision are reported approximately.
func RecordLedgerTotals(totalStaked, availableRewards sdkmath.Uint, block uint64) {
	totalStakedGauge.Set(toFloat(totalStaked))
	availableRewardsGauge.Set(toFloat(availableRewards))
	currentBlockGauge.Set(float64(block))
}

func RecordOutboxPending(count int64) {
	outboxPendingGauge.Set(float64(count))
}

func AddFeesCollected(amount sdkmath.Uint) {
	feesCollectedCounter.Add(toFloat(amount))
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

func RecordQueuePublished(eventType string) {
	queuePublishedCounter.WithLabelValues(eventType).Inc()
}

func toFloat(amount sdkmath.Uint) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
