// Package telemetry provides OpenTelemetry instrumentation for the
// riskcore service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "riskcore"

// Histogram bucket bounds.
var (
	scoringBuckets = prometheus.ExponentialBuckets(0.0001, 4, 8) // 100µs .. ~1.6s
	backendBuckets = prometheus.ExponentialBuckets(0.01, 2, 10)  // 10ms .. ~5s
)

// Metrics holds all riskcore Prometheus metrics.
type Metrics struct {
	// Text path
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram

	// Structured path
	AssessmentsTotal       *prometheus.CounterVec
	InterventionsGenerated prometheus.Counter

	// Chat
	ChatMessagesTotal    *prometheus.CounterVec
	CounselorAlertsTotal prometheus.Counter
	SessionsActive       prometheus.Gauge

	// Generative backend
	BackendCallsTotal     *prometheus.CounterVec
	BackendCallDuration   prometheus.Histogram
	BackendFallbacksTotal *prometheus.CounterVec

	// Alert pipeline
	AlertsEmitted *prometheus.CounterVec
	AlertsFailed  prometheus.Counter

	// Roster poller
	StudentsProcessed prometheus.Counter
	StudentsFailed    prometheus.Counter
	BatchSize         prometheus.Histogram
	PollerLag         prometheus.Histogram
	ActiveWorkers     prometheus.Gauge
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAnalysis records one completed sentiment analysis.
func (p *Provider) RecordAnalysis(elapsed time.Duration, riskLevel string) {
	p.Metrics.AnalysesTotal.WithLabelValues(riskLevel).Inc()
	p.Metrics.AnalysisDuration.Observe(elapsed.Seconds())
}

// RecordAssessment records one structured student assessment.
func (p *Provider) RecordAssessment(riskTier string, interventions int) {
	p.Metrics.AssessmentsTotal.WithLabelValues(riskTier).Inc()
	p.Metrics.InterventionsGenerated.Add(float64(interventions))
}

// RecordChatMessage records one chat turn by response category.
func (p *Provider) RecordChatMessage(category string) {
	p.Metrics.ChatMessagesTotal.WithLabelValues(category).Inc()
}

// RecordCounselorAlert records one counselor alert being raised.
func (p *Provider) RecordCounselorAlert() {
	p.Metrics.CounselorAlertsTotal.Inc()
}

// RecordBackendCall records one generative-backend attempt.
func (p *Provider) RecordBackendCall(elapsed time.Duration, outcome string) {
	p.Metrics.BackendCallsTotal.WithLabelValues(outcome).Inc()
	p.Metrics.BackendCallDuration.Observe(elapsed.Seconds())
}

// RecordBackendFallback records a deterministic-template fallback by reason.
func (p *Provider) RecordBackendFallback(reason string) {
	p.Metrics.BackendFallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordAlert records one alert emitted through the notifier.
func (p *Provider) RecordAlert(alertType string, delivered bool) {
	p.Metrics.AlertsEmitted.WithLabelValues(alertType).Inc()
	if !delivered {
		p.Metrics.AlertsFailed.Inc()
	}
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initScoringMetrics(m)
	initChatMetrics(m)
	initBackendMetrics(m)
	initAlertMetrics(m)
	initPollerMetrics(m)
	return m
}

func initScoringMetrics(m *Metrics) {
	m.AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcore_sentiment_analyses_total",
		Help: "Total sentiment analyses by resulting risk level",
	}, []string{"risk_level"})

	m.AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskcore_sentiment_analysis_duration_seconds",
		Help:    "Duration of one sentiment analysis",
		Buckets: scoringBuckets,
	})

	m.AssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcore_student_assessments_total",
		Help: "Total structured student assessments by risk tier",
	}, []string{"risk_tier"})

	m.InterventionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskcore_interventions_generated_total",
		Help: "Total intervention items generated",
	})
}

func initChatMetrics(m *Metrics) {
	m.ChatMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcore_chat_messages_total",
		Help: "Total chat messages by response category",
	}, []string{"category"})

	m.CounselorAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskcore_counselor_alerts_total",
		Help: "Total counselor alerts raised by high-risk chat messages",
	})

	m.SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "riskcore_chat_sessions_active",
		Help: "Chat sessions currently held in memory",
	})
}

func initBackendMetrics(m *Metrics) {
	m.BackendCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcore_backend_calls_total",
		Help: "Generative backend calls by outcome (success, error, timeout)",
	}, []string{"outcome"})

	m.BackendCallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskcore_backend_call_duration_seconds",
		Help:    "Latency of generative backend calls",
		Buckets: backendBuckets,
	})

	m.BackendFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcore_backend_fallbacks_total",
		Help: "Deterministic template fallbacks by reason",
	}, []string{"reason"})
}

func initAlertMetrics(m *Metrics) {
	m.AlertsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcore_alerts_emitted_total",
		Help: "Alerts emitted through the notifier by alert type",
	}, []string{"alert_type"})

	m.AlertsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskcore_alerts_failed_total",
		Help: "Alerts whose sink delivery reported failure",
	})
}

func initPollerMetrics(m *Metrics) {
	m.StudentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskcore_students_processed_total",
		Help: "Students assessed by the roster poller",
	})

	m.StudentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskcore_students_failed_total",
		Help: "Student assessments that failed",
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskcore_poller_batch_size",
		Help:    "Number of students per poll sweep",
		Buckets: prometheus.LinearBuckets(0, 25, 9),
	})

	m.PollerLag = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskcore_poller_sweep_duration_seconds",
		Help:    "Duration of one full roster sweep",
		Buckets: backendBuckets,
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "riskcore_poller_active_workers",
		Help: "Worker goroutines currently assessing students",
	})
}
