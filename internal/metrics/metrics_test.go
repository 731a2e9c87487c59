package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/north-cloud/prospector/internal/metrics"
)

func TestMetrics_RecordsOnRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveFetch(metrics.FetchOK, 20*time.Millisecond)
	m.ObserveFetch(metrics.FetchOK, 0)
	m.ObserveFetch(metrics.FetchPermanent, 0)
	m.ObserveSearch(metrics.SearchQuota)
	m.KeyExhausted()
	m.JobStarted()
	m.JobFinished("completed", time.Second)
	m.CompanySaved("google")

	assert.InDelta(t, 2, testutil.ToFloat64(m.FetchRequestsTotal.WithLabelValues(metrics.FetchOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchRequestsTotal.WithLabelValues(metrics.FetchPermanent)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SearchKeysExhausted), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.JobsRunning), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.JobsFinishedTotal.WithLabelValues("completed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CompaniesSavedTotal.WithLabelValues("google")), 0)
}

func TestMetrics_NilIsNoOp(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch(metrics.FetchOK, time.Second)
		m.ObserveSearch(metrics.SearchOK)
		m.KeyExhausted()
		m.JobStarted()
		m.JobFinished("failed", time.Second)
		m.CompanySaved("kompass")
		m.ContactSaved()
	})
}
