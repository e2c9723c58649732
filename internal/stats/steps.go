package stats

import (
	"math"
	"strings"
	"time"

	"github.com/tidefield/wrapped/internal/domain"
)

// stepsDateLayouts are the week-date shapes tolerated by the aggregator.
var stepsDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
}

func parseWeekDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range stepsDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Steps aggregates weekly step rows into the year summary. The daily
// average assumes every row covers exactly seven days; it is an
// approximation, not an exact daily rate. The best week is the
// first-encountered row with the maximum count (strict greater-than over
// input order); the best month is the earliest calendar month with the
// maximum total.
func Steps(rows []domain.WeeklySteps) domain.StepsStats {
	if len(rows) == 0 {
		return emptyStepsStats()
	}

	year := time.Now().Year()
	if t, ok := parseWeekDate(rows[0].Date); ok {
		year = t.Year()
	}

	totalSteps := 0
	for _, row := range rows {
		totalSteps += row.Steps
	}
	totalWeeks := len(rows)
	averageStepsPerWeek := float64(totalSteps) / float64(totalWeeks)

	bestWeek := domain.WeekSteps{Date: rows[0].Date, Steps: rows[0].Steps}
	for _, row := range rows {
		if row.Steps > bestWeek.Steps {
			bestWeek = domain.WeekSteps{Date: row.Date, Steps: row.Steps}
		}
	}

	// Group weeks into calendar months. Rows with unparsable dates still
	// count toward the totals above; they only drop out of the grouping.
	type monthAccum struct {
		steps int
		weeks int
	}
	months := make(map[string]*monthAccum)
	for _, row := range rows {
		t, ok := parseWeekDate(row.Date)
		if !ok {
			continue
		}
		name := domain.MonthNames[int(t.Month())-1]
		acc := months[name]
		if acc == nil {
			acc = &monthAccum{}
			months[name] = acc
		}
		acc.steps += row.Steps
		acc.weeks++
	}

	breakdown := make([]domain.MonthStepsBreakdown, 0, len(months))
	for _, name := range domain.MonthNames {
		acc := months[name]
		if acc == nil || acc.steps <= 0 {
			continue
		}
		breakdown = append(breakdown, domain.MonthStepsBreakdown{
			Month: name,
			Steps: acc.steps,
			Weeks: acc.weeks,
		})
	}

	bestMonth := domain.MonthSteps{Month: "Unknown"}
	if len(breakdown) > 0 {
		bestMonth.Month = breakdown[0].Month
	}
	for _, m := range breakdown {
		if m.Steps > bestMonth.Steps {
			bestMonth = domain.MonthSteps{Month: m.Month, Steps: m.Steps}
		}
	}

	return domain.StepsStats{
		Year:                year,
		TotalSteps:          totalSteps,
		AverageStepsPerDay:  int(math.Round(averageStepsPerWeek / 7)),
		AverageStepsPerWeek: int(math.Round(averageStepsPerWeek)),
		BestWeek:            bestWeek,
		BestMonth:           bestMonth,
		MonthlyBreakdown:    breakdown,
		TotalWeeks:          totalWeeks,
	}
}

func emptyStepsStats() domain.StepsStats {
	return domain.StepsStats{
		Year:             time.Now().Year(),
		BestWeek:         domain.WeekSteps{Date: "Unknown"},
		BestMonth:        domain.MonthSteps{Month: "Unknown"},
		MonthlyBreakdown: []domain.MonthStepsBreakdown{},
	}
}
