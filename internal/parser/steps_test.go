package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tidefield/wrapped/internal/domain"
)

func TestParseStepsCSV(t *testing.T) {
	input := `Week,Steps
2025-01-06,70000
2025-01-13,63000
`

	rows, err := ParseStepsCSV([]byte(input))
	require.NoError(t, err)
	require.Equal(t, []domain.WeeklySteps{
		{Date: "2025-01-06", Steps: 70000},
		{Date: "2025-01-13", Steps: 63000},
	}, rows)
}

func TestParseStepsCSVSkipsMalformedRows(t *testing.T) {
	input := `Week,Steps
2025-01-06,70000
,50000
2025-01-13,not-a-number
2025-01-20
2025-01-27,10000
`

	rows, err := ParseStepsCSV([]byte(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2025-01-06", rows[0].Date)
	require.Equal(t, "2025-01-27", rows[1].Date)
}

func TestParseStepsCSVEmptyInput(t *testing.T) {
	rows, err := ParseStepsCSV(nil)
	require.NoError(t, err)
	require.Empty(t, rows)
}
