package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidefield/wrapped/internal/domain"
)

// Fixed column positions of the detailed export. Only the distance column
// moves between export flavors; it is located by header name with
// distanceColumnFallback as the default.
const (
	activityDateColumn     = 1
	activityTypeColumn     = 3
	distanceColumnFallback = 4
)

// ActivitiesOptions configures the per-activity extractors.
type ActivitiesOptions struct {
	// Unit the source file's distances are expressed in. Defaults to
	// kilometers.
	Unit domain.Unit
	// TargetYear restricts extraction to activities of a single year.
	// Zero selects the current calendar year.
	TargetYear int
}

func (o ActivitiesOptions) targetYear() int {
	if o.TargetYear != 0 {
		return o.TargetYear
	}
	return time.Now().Year()
}

// activityKey groups extracted rows by month and activity type.
type activityKey struct {
	Month string
	Type  string
}

// activityAccumulator sums distances per (month, type) key while keeping
// first-seen key order, so extraction output is deterministic.
type activityAccumulator struct {
	totals map[activityKey]float64
	order  []activityKey
}

func newActivityAccumulator() *activityAccumulator {
	return &activityAccumulator{totals: make(map[activityKey]float64)}
}

func (a *activityAccumulator) add(key activityKey, distance float64) {
	if _, seen := a.totals[key]; !seen {
		a.order = append(a.order, key)
	}
	a.totals[key] += distance
}

func (a *activityAccumulator) rows() []domain.MonthlyActivity {
	rows := make([]domain.MonthlyActivity, 0, len(a.order))
	for _, key := range a.order {
		rows = append(rows, domain.MonthlyActivity{
			Month:        key.Month,
			ActivityType: key.Type,
			Distance:     a.totals[key],
		})
	}
	return rows
}

// ParseActivitiesCSV extracts rows from the detailed per-activity export.
// The distance column is located by case-insensitive header name so
// spreadsheet exports with reordered columns still parse. Rows outside the
// target year, with an unparseable date, or with a non-positive distance
// are skipped. Rows sharing a (month, activity type) pair are summed, so
// the output holds at most one row per pair.
func ParseActivitiesCSV(data []byte, opts ActivitiesOptions) ([]domain.MonthlyActivity, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, nil
	}

	distanceColumn := distanceColumnFallback
	for i, name := range splitFields(lines[0]) {
		if strings.EqualFold(name, "Distance") {
			distanceColumn = i
			break
		}
	}

	yearToken := strconv.Itoa(opts.targetYear())
	acc := newActivityAccumulator()

	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) <= activityTypeColumn || len(fields) <= distanceColumn {
			continue
		}

		date := fields[activityDateColumn]
		activityType := fields[activityTypeColumn]
		if date == "" || activityType == "" {
			continue
		}

		distance, err := parseDistance(fields[distanceColumn])
		if err != nil || distance <= 0 {
			continue
		}

		month, ok := monthYearToken(date)
		if !ok || !strings.HasSuffix(month, yearToken) {
			continue
		}

		acc.add(activityKey{Month: month, Type: activityType}, toKilometers(distance, opts.Unit, activityType))
	}

	return acc.rows(), nil
}
