package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementOutcome(OutcomeAccepted)
	m.IncrementOutcome(OutcomeAccepted)
	m.AddRecords("Patient", 3)
	m.AddRecords("Condition", 0)
	m.IncrementSkipped("unknown_resource_kind")
	m.ObserveParseLatency(time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BundlesParsed.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsExtracted.WithLabelValues("Patient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntriesSkipped.WithLabelValues("unknown_resource_kind")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ParseLatency))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementOutcome(OutcomeInvalid)
		m.AddRecords("Patient", 1)
		m.IncrementSkipped("missing_resource")
		m.IncrementViolation("bundle-id-required")
		m.ObserveParseLatency(time.Second)
		m.IncrementSideEffectFailure("archive")
	})
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
