package parser

import "github.com/tidefield/wrapped/internal/domain"

// ParseMonthlyTotalsCSV extracts rows from the pre-aggregated "Total
// Distance" export: a title line, a header line, then one row per
// (month, activity type) with the distance already in kilometers.
func ParseMonthlyTotalsCSV(data []byte) ([]domain.MonthlyActivity, error) {
	lines := splitLines(string(data))

	var rows []domain.MonthlyActivity
	for i := 2; i < len(lines); i++ {
		fields := splitFields(lines[i])
		if len(fields) < 3 {
			continue
		}

		month, activityType := fields[0], fields[1]
		if month == "" || activityType == "" {
			continue
		}

		// Unlike the per-activity extractor, the monthly export only
		// requires the distance to be numeric; zero and negative values
		// pass through.
		distance, err := parseDistance(fields[2])
		if err != nil {
			continue
		}

		rows = append(rows, domain.MonthlyActivity{
			Month:        month,
			ActivityType: activityType,
			Distance:     distance,
		})
	}
	return rows, nil
}
