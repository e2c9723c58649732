package parser

import (
	"strconv"

	"github.com/tidefield/wrapped/internal/domain"
)

// ParseStepsCSV extracts week-level rows from the steps export: a header
// line followed by (date, steps) rows. Rows with a missing date or a
// non-numeric step count are skipped.
func ParseStepsCSV(data []byte) ([]domain.WeeklySteps, error) {
	lines := splitLines(string(data))

	var rows []domain.WeeklySteps
	for i := 1; i < len(lines); i++ {
		fields := splitFields(lines[i])
		if len(fields) < 2 {
			continue
		}

		date := fields[0]
		steps, err := strconv.Atoi(fields[1])
		if date == "" || err != nil {
			continue
		}

		rows = append(rows, domain.WeeklySteps{Date: date, Steps: steps})
	}
	return rows, nil
}
