package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	rowsExtractedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrapped_service",
		Subsystem: "parser",
		Name:      "rows_extracted_total",
		Help:      "Number of normalized rows extracted per export format.",
	}, []string{"format"})

	summariesComputedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wrapped_service",
		Subsystem: "pipeline",
		Name:      "summaries_computed_total",
		Help:      "Number of summary records computed per kind.",
	}, []string{"kind"})

	summaryPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wrapped_service",
		Subsystem: "persistence",
		Name:      "last_summary_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent summary persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(rowsExtractedCounter, summariesComputedCounter, summaryPersistGauge)
}

// RecordRowsExtracted counts rows produced by one extraction pass.
func RecordRowsExtracted(format string, count int) {
	rowsExtractedCounter.WithLabelValues(format).Add(float64(count))
}

// RecordSummaryComputed counts one computed summary of the given kind.
func RecordSummaryComputed(kind string) {
	summariesComputedCounter.WithLabelValues(kind).Inc()
}

// RecordSummaryPersisted updates the persistence watermark gauge.
func RecordSummaryPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	summaryPersistGauge.Set(float64(ts.Unix()))
}
