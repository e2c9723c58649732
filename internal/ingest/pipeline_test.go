package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidefield/wrapped/internal/domain"
)

func TestPipelineDispatchesByFormat(t *testing.T) {
	p := NewPipeline(2025)

	monthly := "title\nheader\nJan 2025,Run,42.5\n"
	rows, err := p.ExtractActivities([]byte(monthly), domain.FormatMonthlyTotals, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 42.5, rows[0].Distance)

	detailed := "Activity ID,Date,Favorite,Activity Type,Distance\n1,2025-01-05,false,Run,10\n"
	rows, err = p.ExtractActivities([]byte(detailed), domain.FormatActivities, domain.UnitKilometers)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Jan 2025", rows[0].Month)
}

func TestPipelineRejectsUnknownFormat(t *testing.T) {
	p := NewPipeline(2025)

	_, err := p.ExtractActivities([]byte("x"), "bogus", "")
	require.True(t, errors.Is(err, domain.ErrUnsupportedFormat))

	_, err = p.ExtractActivities([]byte("x"), domain.FormatWeeklySteps, "")
	require.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestPipelineStepsRoundTrip(t *testing.T) {
	p := NewPipeline(2025)

	rows, err := p.ExtractSteps([]byte("Week,Steps\n2025-01-06,70000\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	stats := p.StepsStats(rows)
	require.Equal(t, 70000, stats.TotalSteps)
	require.Equal(t, 2025, stats.Year)
}

func TestPipelineActivityStats(t *testing.T) {
	p := NewPipeline(2025)

	stats := p.ActivityStats([]domain.MonthlyActivity{
		{Month: "Jan 2025", ActivityType: "Run", Distance: 10},
	})
	require.Equal(t, 10.0, stats.TotalDistance)
	require.Equal(t, "Run", stats.TopActivity)
}
