package parser

import (
	"strings"

	"github.com/tidefield/wrapped/internal/domain"
)

// DetectFormat guesses the export format from a filename. It is a
// convenience for callers that do not know the format up front; the
// extractors themselves take an explicit format tag. The zip check runs
// before the "activities" substring check so packaged exports named
// "summarizedActivities.zip" resolve to the archive extractor.
func DetectFormat(filename string) domain.Format {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "steps"):
		return domain.FormatWeeklySteps
	case strings.HasSuffix(name, ".zip"):
		return domain.FormatArchive
	case strings.Contains(name, "activities"):
		return domain.FormatActivities
	default:
		return domain.FormatMonthlyTotals
	}
}
