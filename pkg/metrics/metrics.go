// Package metrics provides Prometheus metrics for the rotation engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Reconstruction outcomes
	gamesReconstructed prometheus.Counter
	gamesFailed        prometheus.Counter
	gamesDuplicate     prometheus.Counter
	reconstructLatency prometheus.Histogram
	lineupRows         prometheus.Counter
	intervalsBuilt     prometheus.Counter

	// Job queue health
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueEnqueueErrs prometheus.Counter
	queueDequeues    prometheus.Counter

	// Workers and store
	workerCount prometheus.Gauge
	storedGames prometheus.Gauge

	// Error breakdown
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance backed by a custom registry so the default
// Go collectors stay out of the scrape.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rotation",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.gamesReconstructed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "games_reconstructed_total",
		Help: "Games whose lineup table was fully reconstructed.",
	})
	m.gamesFailed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "games_failed_total",
		Help: "Games that failed reconstruction with a fatal inconsistency.",
	})
	m.gamesDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "games_duplicate_total",
		Help: "Game submissions skipped by the idempotency cache.",
	})
	m.reconstructLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "reconstruct_duration_seconds",
		Help:    "Wall time of a single game reconstruction.",
		Buckets: m.histogramBuckets,
	})
	m.lineupRows = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "lineup_rows_total",
		Help: "Lineup rows emitted across all reconstructed games.",
	})
	m.intervalsBuilt = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "intervals_built_total",
		Help: "On-court intervals produced by the state machine.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Jobs currently waiting in the game queue.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured capacity of the game queue.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Queue fill ratio between 0 and 1.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Jobs accepted by the queue.",
	})
	m.queueEnqueueErrs = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Jobs rejected by the queue.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total",
		Help: "Jobs handed to workers.",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Workers in the reconstruction pool.",
	})
	m.storedGames = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "stored_games",
		Help: "Finished games held in the result store.",
	})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_total",
		Help: "Errors broken down by component and reason.",
	}, []string{"component", "reason"})
}

// Handler returns an http.Handler serving the metrics from this manager's
// registry, for callers that expose a scrape endpoint.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers recording on the global manager.

func RecordGameReconstructed()         { globalManager.gamesReconstructed.Inc() }
func RecordGameFailed()                { globalManager.gamesFailed.Inc() }
func RecordGameDuplicate()             { globalManager.gamesDuplicate.Inc() }
func RecordReconstructLatency(s float64) { globalManager.reconstructLatency.Observe(s) }

// RecordLineupRows adds the size of a finished lineup table.
func RecordLineupRows(n int) { globalManager.lineupRows.Add(float64(n)) }

// RecordIntervalsBuilt adds the size of a finished interval set.
func RecordIntervalsBuilt(n int) { globalManager.intervalsBuilt.Add(float64(n)) }

func UpdateQueueSize(n int)            { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)        { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrs.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }

func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }
func UpdateStoredGames(n int) { globalManager.storedGames.Set(float64(n)) }

// RecordErrorByComponent counts an error for a component with a reason tag.
func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}

// Handler exposes the global manager's scrape handler.
func Handler() http.Handler { return globalManager.Handler() }
