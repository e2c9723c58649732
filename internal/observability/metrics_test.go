package observability

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestRecordRowsExtractedAccumulates(t *testing.T) {
	RecordRowsExtracted("test_format", 3)
	RecordRowsExtracted("test_format", 2)

	metric := &dto.Metric{}
	require.NoError(t, rowsExtractedCounter.WithLabelValues("test_format").Write(metric))
	require.Equal(t, 5.0, metric.GetCounter().GetValue())
}

func TestRecordSummaryComputed(t *testing.T) {
	RecordSummaryComputed("test_kind")

	metric := &dto.Metric{}
	require.NoError(t, summariesComputedCounter.WithLabelValues("test_kind").Write(metric))
	require.Equal(t, 1.0, metric.GetCounter().GetValue())
}

func TestRecordSummaryPersisted(t *testing.T) {
	ts := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	RecordSummaryPersisted(ts)

	metric := &dto.Metric{}
	require.NoError(t, summaryPersistGauge.Write(metric))
	require.Equal(t, float64(ts.Unix()), metric.GetGauge().GetValue())

	// A zero timestamp leaves the watermark untouched.
	RecordSummaryPersisted(time.Time{})
	metric = &dto.Metric{}
	require.NoError(t, summaryPersistGauge.Write(metric))
	require.Equal(t, float64(ts.Unix()), metric.GetGauge().GetValue())
}
