package domain

// MonthlyActivity is one normalized unit of activity input: the distance
// recorded for a single activity type within a single month.
type MonthlyActivity struct {
	Month        string  // canonical "Mon YYYY" token, e.g. "Jun 2025"
	ActivityType string  // free-text label, e.g. "Running"
	Distance     float64 // kilometers
}

// WeeklySteps is one week-level row from a steps export.
type WeeklySteps struct {
	Date  string // date identifying the week, e.g. "2025-01-06"
	Steps int
}

// Format identifies the shape of an uploaded export file.
type Format string

const (
	// FormatMonthlyTotals is the pre-aggregated "Total Distance" export:
	// a title line, a header line, then (month, activity type, km) rows.
	FormatMonthlyTotals Format = "monthly_totals"
	// FormatActivities is the detailed per-activity export with one row
	// per recorded activity.
	FormatActivities Format = "activities"
	// FormatWeeklySteps is the steps export with one row per week.
	FormatWeeklySteps Format = "weekly_steps"
	// FormatArchive is the packaged account export: a zip containing a
	// summarized-activities JSON document.
	FormatArchive Format = "archive"
)

// Valid reports whether the format is one of the supported variants.
func (f Format) Valid() bool {
	switch f {
	case FormatMonthlyTotals, FormatActivities, FormatWeeklySteps, FormatArchive:
		return true
	}
	return false
}

// Unit declares the distance unit an uploaded file's numbers are expressed
// in. It describes the source file, not a desired display unit.
type Unit string

const (
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "mile"
)

// Valid reports whether the unit is supported. The empty string is valid
// and means kilometers.
func (u Unit) Valid() bool {
	return u == "" || u == UnitKilometers || u == UnitMiles
}
