package domain

// MonthDistance pairs a full month name with a distance in kilometers.
type MonthDistance struct {
	Month    string  `json:"month"`
	Distance float64 `json:"distance_km"`
}

// ActivityTypeStats summarises one activity type across the year.
type ActivityTypeStats struct {
	Type                string        `json:"type"`
	TotalDistance       float64       `json:"total_distance_km"`
	TotalMonths         int           `json:"total_months"`
	AvgDistancePerMonth float64       `json:"avg_distance_per_month_km"`
	BestMonth           MonthDistance `json:"best_month"`
	// Percentage is this type's share of the grand total distance, zero
	// when the grand total itself is zero.
	Percentage float64 `json:"percentage"`
}

// MonthActivity is one entry of the activity monthly breakdown.
type MonthActivity struct {
	Month      string   `json:"month"`
	Distance   float64  `json:"distance_km"`
	Activities []string `json:"activities"`
}

// Milestones collects the headline numbers of an activity year.
type Milestones struct {
	FirstActivity   string        `json:"first_activity"`
	BestMonth       MonthDistance `json:"best_month"`
	BestStreak      int           `json:"best_streak"`
	TotalKilometers int           `json:"total_kilometers"`
}

// AllActivitiesStats is the year-level summary of all activity rows.
type AllActivitiesStats struct {
	Year             int                 `json:"year"`
	TotalDistance    float64             `json:"total_distance_km"`
	TotalMonths      int                 `json:"total_months"`
	ActivitiesByType []ActivityTypeStats `json:"activities_by_type"`
	TopActivity      string              `json:"top_activity"`
	MonthlyBreakdown []MonthActivity     `json:"monthly_breakdown"`
	Milestones       Milestones          `json:"milestones"`
}

// WeekSteps pairs a week date with its step count.
type WeekSteps struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// MonthSteps pairs a full month name with its step total.
type MonthSteps struct {
	Month string `json:"month"`
	Steps int    `json:"steps"`
}

// MonthStepsBreakdown is one entry of the steps monthly breakdown.
type MonthStepsBreakdown struct {
	Month string `json:"month"`
	Steps int    `json:"steps"`
	Weeks int    `json:"weeks"`
}

// StepsStats is the year-level summary of weekly step rows.
type StepsStats struct {
	Year                int                   `json:"year"`
	TotalSteps          int                   `json:"total_steps"`
	AverageStepsPerDay  int                   `json:"average_steps_per_day"`
	AverageStepsPerWeek int                   `json:"average_steps_per_week"`
	BestWeek            WeekSteps             `json:"best_week"`
	BestMonth           MonthSteps            `json:"best_month"`
	MonthlyBreakdown    []MonthStepsBreakdown `json:"monthly_breakdown"`
	TotalWeeks          int                   `json:"total_weeks"`
}
