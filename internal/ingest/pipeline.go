// Package ingest adapts the parser and stats packages into the pipeline
// consumed by the domain service, recording extraction metrics along the
// way. The parser and stats packages themselves stay free of side effects.
package ingest

import (
	"fmt"

	"github.com/tidefield/wrapped/internal/domain"
	"github.com/tidefield/wrapped/internal/observability"
	"github.com/tidefield/wrapped/internal/parser"
	"github.com/tidefield/wrapped/internal/stats"
)

// Pipeline implements domain.Pipeline.
type Pipeline struct {
	targetYear int
}

// NewPipeline constructs a Pipeline restricted to the given target year.
// Zero selects the current calendar year.
func NewPipeline(targetYear int) *Pipeline {
	return &Pipeline{targetYear: targetYear}
}

// ExtractActivities dispatches one file to the extractor named by the
// format tag.
func (p *Pipeline) ExtractActivities(data []byte, format domain.Format, unit domain.Unit) ([]domain.MonthlyActivity, error) {
	opts := parser.ActivitiesOptions{Unit: unit, TargetYear: p.targetYear}

	var rows []domain.MonthlyActivity
	var err error
	switch format {
	case domain.FormatMonthlyTotals:
		rows, err = parser.ParseMonthlyTotalsCSV(data)
	case domain.FormatActivities:
		rows, err = parser.ParseActivitiesCSV(data, opts)
	case domain.FormatArchive:
		rows, err = parser.ParseActivityArchive(data, opts)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	observability.RecordRowsExtracted(string(format), len(rows))
	return rows, nil
}

// ExtractSteps parses one weekly-steps export.
func (p *Pipeline) ExtractSteps(data []byte) ([]domain.WeeklySteps, error) {
	rows, err := parser.ParseStepsCSV(data)
	if err != nil {
		return nil, err
	}
	observability.RecordRowsExtracted(string(domain.FormatWeeklySteps), len(rows))
	return rows, nil
}

// ActivityStats aggregates merged activity rows.
func (p *Pipeline) ActivityStats(rows []domain.MonthlyActivity) domain.AllActivitiesStats {
	observability.RecordSummaryComputed(string(domain.SummaryKindActivities))
	return stats.AllActivities(rows)
}

// StepsStats aggregates merged steps rows.
func (p *Pipeline) StepsStats(rows []domain.WeeklySteps) domain.StepsStats {
	observability.RecordSummaryComputed(string(domain.SummaryKindSteps))
	return stats.Steps(rows)
}
