package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
	OutcomeDryRun    = "dry_run"
)

// Metrics provides observability for bundle ingestion.
type Metrics struct {
	// Parsed bundles by outcome
	BundlesParsed *prometheus.CounterVec

	// Typed records by resource kind
	RecordsExtracted *prometheus.CounterVec

	// Dropped entries by diagnostic code
	EntriesSkipped *prometheus.CounterVec

	// Violations by rule
	ValidationViolations *prometheus.CounterVec

	ParseLatency prometheus.Histogram

	// Archive and event side effects that failed after a bundle was stored
	SideEffectFailures *prometheus.CounterVec
}

// New registers every ingestion metric on registerer. Pass a fresh registry
// in tests so repeated construction does not collide.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		BundlesParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ehr_bundle_parsed_total",
			Help: "Total bundles parsed by outcome",
		}, []string{"outcome"}),

		RecordsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ehr_bundle_records_extracted_total",
			Help: "Total typed records extracted by resource kind",
		}, []string{"resource_type"}),

		EntriesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ehr_bundle_entries_skipped_total",
			Help: "Total bundle entries dropped during dispatch",
		}, []string{"reason"}),

		ValidationViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ehr_bundle_validation_violations_total",
			Help: "Total validation violations by rule",
		}, []string{"rule"}),

		ParseLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ehr_bundle_parse_duration_seconds",
			Help:    "Duration of parsing and validating one bundle",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ehr_bundle_side_effect_failures_total",
			Help: "Total failures of post-store side effects",
		}, []string{"side_effect"}),
	}
}

func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.BundlesParsed.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) AddRecords(resourceType string, count int) {
	if m != nil && count > 0 {
		m.RecordsExtracted.WithLabelValues(resourceType).Add(float64(count))
	}
}

func (m *Metrics) IncrementSkipped(reason string) {
	if m != nil {
		m.EntriesSkipped.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncrementViolation(rule string) {
	if m != nil {
		m.ValidationViolations.WithLabelValues(rule).Inc()
	}
}

func (m *Metrics) ObserveParseLatency(d time.Duration) {
	if m != nil {
		m.ParseLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementSideEffectFailure(sideEffect string) {
	if m != nil {
		m.SideEffectFailures.WithLabelValues(sideEffect).Inc()
	}
}
