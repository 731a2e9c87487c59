// Package metrics exposes Prometheus instrumentation for jobs, fetches and searches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace is the namespace for all prospector metrics.
const Namespace = "prospector"

// Fetch outcomes.
const (
	FetchOK         = "ok"
	FetchDisallowed = "disallowed"
	FetchPermanent  = "permanent"
	FetchExhausted  = "exhausted"
	FetchRetry      = "retry"
)

// Search outcomes.
const (
	SearchOK     = "ok"
	SearchCached = "cached"
	SearchNoKey  = "no_key"
	SearchQuota  = "quota"
	SearchError  = "error"
)

// Metrics holds all Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Job metrics
	JobsStartedTotal   prometheus.Counter
	JobsFinishedTotal  *prometheus.CounterVec
	JobDurationSeconds prometheus.Histogram
	JobsRunning        prometheus.Gauge

	// Fetch metrics
	FetchRequestsTotal   *prometheus.CounterVec
	FetchDurationSeconds prometheus.Histogram

	// Search metrics
	SearchRequestsTotal *prometheus.CounterVec
	SearchKeysExhausted prometheus.Counter

	// Result metrics
	CompaniesSavedTotal *prometheus.CounterVec
	ContactsSavedTotal  prometheus.Counter
}

// New creates and registers all metrics on reg, or the default registerer when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	m := &Metrics{}

	m.initJobMetrics(factory)
	m.initFetchMetrics(factory)
	m.initSearchMetrics(factory)
	m.initResultMetrics(factory)

	return m
}

func (m *Metrics) initJobMetrics(factory promauto.Factory) {
	m.JobsStartedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "engine",
		Name:      "jobs_started_total",
		Help:      "Total number of jobs started",
	})

	m.JobsFinishedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "engine",
		Name:      "jobs_finished_total",
		Help:      "Total number of jobs that reached a terminal status",
	}, []string{"status"})

	m.JobDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "engine",
		Name:      "job_duration_seconds",
		Help:      "Duration of job runs in seconds",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s to ~4.5h
	})

	m.JobsRunning = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "engine",
		Name:      "jobs_running",
		Help:      "Number of jobs currently running",
	})
}

func (m *Metrics) initFetchMetrics(factory promauto.Factory) {
	m.FetchRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "fetch_requests_total",
		Help:      "Total page fetch attempts by outcome",
	}, []string{"outcome"})

	m.FetchDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of single page fetch attempts in seconds",
		Buckets:   prometheus.DefBuckets,
	})
}

func (m *Metrics) initSearchMetrics(factory promauto.Factory) {
	m.SearchRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "search_requests_total",
		Help:      "Total search API calls by outcome",
	}, []string{"outcome"})

	m.SearchKeysExhausted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "search_keys_exhausted_total",
		Help:      "Number of times a search API key was marked exhausted",
	})
}

func (m *Metrics) initResultMetrics(factory promauto.Factory) {
	m.CompaniesSavedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "companies_saved_total",
		Help:      "Companies newly saved by source",
	}, []string{"source"})

	m.ContactsSavedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "contacts_saved_total",
		Help:      "Contacts newly saved",
	})
}

// ObserveFetch records one fetch attempt.
func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchRequestsTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.FetchDurationSeconds.Observe(elapsed.Seconds())
	}
}

// ObserveSearch records one search call.
func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.SearchRequestsTotal.WithLabelValues(outcome).Inc()
}

// KeyExhausted records a key rotation.
func (m *Metrics) KeyExhausted() {
	if m == nil {
		return
	}
	m.SearchKeysExhausted.Inc()
}

// JobStarted records a job entering the running set.
func (m *Metrics) JobStarted() {
	if m == nil {
		return
	}
	m.JobsStartedTotal.Inc()
	m.JobsRunning.Inc()
}

// JobFinished records a job leaving the running set with its final status.
func (m *Metrics) JobFinished(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.JobsRunning.Dec()
	m.JobsFinishedTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(elapsed.Seconds())
}

// CompanySaved records a newly stored company.
func (m *Metrics) CompanySaved(source string) {
	if m == nil {
		return
	}
	m.CompaniesSavedTotal.WithLabelValues(source).Inc()
}

// ContactSaved records a newly stored contact.
func (m *Metrics) ContactSaved() {
	if m == nil {
		return
	}
	m.ContactsSavedTotal.Inc()
}
