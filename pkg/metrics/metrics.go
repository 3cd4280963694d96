// Package metrics provides Prometheus metrics for the assessment engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds every Prometheus collector for the service.
type Manager struct {
	registry *prometheus.Registry

	// Adaptive testing
	assessmentsStarted   *prometheus.CounterVec
	assessmentsCompleted *prometheus.CounterVec
	itemsAdministered    *prometheus.CounterVec
	thetaUpdateLatency   prometheus.Histogram

	// Questionnaire
	questionnairesScored *prometheus.CounterVec

	// Behavioral
	sessionsAggregated prometheus.Counter
	sessionsDiscarded  prometheus.Counter

	// Mosaic
	mosaicsGenerated  prometheus.Counter
	mosaicLatency     prometheus.Histogram
	archetypeRankings prometheus.Counter

	// Profile store
	storeConflicts *prometheus.CounterVec
	storeLatency   prometheus.Histogram

	// Queue / workers
	queueCapacity     prometheus.Gauge
	queueSize         prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueues     prometheus.Counter
	queueDequeues     prometheus.Counter
	queueEnqueueFails prometheus.Counter
	workerLatency     prometheus.Histogram
	workerErrors      prometheus.Counter
	workerCount       prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors by component
	errorsByComponent *prometheus.CounterVec
}

// Global manager backed by a custom registry so that default Go metrics
// stay out of the scrape.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
var globalManager *Manager                    //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(customRegistry)
}

// NewManager creates a metrics manager registered against reg.
func NewManager(reg *prometheus.Registry) *Manager {
	factory := promauto.With(reg)
	const ns = "mosaic"

	latencyBuckets := []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

	return &Manager{
		registry: reg,

		assessmentsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "adaptive", Name: "assessments_started_total",
			Help: "Adaptive assessments started, by cognitive domain.",
		}, []string{"domain"}),
		assessmentsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "adaptive", Name: "assessments_completed_total",
			Help: "Adaptive assessments completed, by domain and stopping reason.",
		}, []string{"domain", "reason"}),
		itemsAdministered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "adaptive", Name: "items_administered_total",
			Help: "Items administered, by domain and correctness.",
		}, []string{"domain", "correct"}),
		thetaUpdateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "adaptive", Name: "theta_update_latency_ms",
			Help: "Ability re-estimation latency in milliseconds.", Buckets: latencyBuckets,
		}),

		questionnairesScored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "questionnaire", Name: "scored_total",
			Help: "Questionnaires scored, by overall risk level.",
		}, []string{"risk"}),

		sessionsAggregated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "behavioral", Name: "sessions_aggregated_total",
			Help: "Completed behavioral sessions folded into emotional profiles.",
		}),
		sessionsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "behavioral", Name: "sessions_discarded_total",
			Help: "Abandoned behavioral sessions that contributed nothing.",
		}),

		mosaicsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "mosaic", Name: "generated_total",
			Help: "Mosaic assessments generated.",
		}),
		mosaicLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "mosaic", Name: "generation_latency_ms",
			Help: "Mosaic generation latency in milliseconds.", Buckets: latencyBuckets,
		}),
		archetypeRankings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "mosaic", Name: "archetype_rankings_total",
			Help: "Archetype ranking passes performed.",
		}),

		storeConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "store", Name: "version_conflicts_total",
			Help: "Optimistic version conflicts on profile saves, by record kind.",
		}, []string{"kind"}),
		storeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "store", Name: "operation_latency_ms",
			Help: "Profile store operation latency in milliseconds.", Buckets: latencyBuckets,
		}),

		queueCapacity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: "queue", Name: "capacity",
			Help: "Configured recalculation queue capacity.",
		}),
		queueSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: "queue", Name: "size",
			Help: "Jobs currently queued.",
		}),
		queueUtilization: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: "queue", Name: "utilization",
			Help: "Queue fill ratio, 0-1.",
		}),
		queueEnqueues: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "queue", Name: "enqueues_total",
			Help: "Jobs accepted onto the queue.",
		}),
		queueDequeues: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "queue", Name: "dequeues_total",
			Help: "Jobs handed to workers.",
		}),
		queueEnqueueFails: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "queue", Name: "enqueue_failures_total",
			Help: "Enqueue attempts rejected (backpressure or closed).",
		}),
		workerLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "worker", Name: "job_latency_ms",
			Help: "Recalculation job processing latency in milliseconds.", Buckets: latencyBuckets,
		}),
		workerErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "worker", Name: "errors_total",
			Help: "Recalculation jobs that failed.",
		}),
		workerCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Subsystem: "worker", Name: "count",
			Help: "Running worker goroutines.",
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by endpoint, method, and status.",
		}, []string{"endpoint", "method", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "http", Name: "request_duration_ms",
			Help: "HTTP request duration in milliseconds.", Buckets: latencyBuckets,
		}, []string{"endpoint", "method"}),

		errorsByComponent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "errors_total",
			Help: "Errors by component and kind.",
		}, []string{"component", "kind"}),
	}
}

// Package-level helpers against the global manager.

func RecordAssessmentStarted(domain string) {
	globalManager.assessmentsStarted.WithLabelValues(domain).Inc()
}

func RecordAssessmentCompleted(domain, reason string) {
	globalManager.assessmentsCompleted.WithLabelValues(domain, reason).Inc()
}

func RecordItemAdministered(domain string, correct bool) {
	c := "false"
	if correct {
		c = "true"
	}
	globalManager.itemsAdministered.WithLabelValues(domain, c).Inc()
}

func RecordThetaUpdateLatency(ms float64) {
	globalManager.thetaUpdateLatency.Observe(ms)
}

func RecordQuestionnaireScored(risk string) {
	globalManager.questionnairesScored.WithLabelValues(risk).Inc()
}

func RecordSessionAggregated() { globalManager.sessionsAggregated.Inc() }
func RecordSessionDiscarded()  { globalManager.sessionsDiscarded.Inc() }

func RecordMosaicGenerated()         { globalManager.mosaicsGenerated.Inc() }
func RecordMosaicLatency(ms float64) { globalManager.mosaicLatency.Observe(ms) }
func RecordArchetypeRanking()        { globalManager.archetypeRankings.Inc() }

func RecordStoreConflict(kind string) {
	globalManager.storeConflicts.WithLabelValues(kind).Inc()
}

func RecordStoreLatency(ms float64) { globalManager.storeLatency.Observe(ms) }

func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }
func UpdateQueueSize(size int)         { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueUtilization(u float64) { globalManager.queueUtilization.Set(u) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueFails.Inc() }

func RecordWorkerLatency(ms float64) { globalManager.workerLatency.Observe(ms) }
func RecordWorkerError()             { globalManager.workerErrors.Inc() }
func UpdateWorkerCount(n int)        { globalManager.workerCount.Set(float64(n)) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// GetRegistry exposes the custom registry for the /healthz scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
