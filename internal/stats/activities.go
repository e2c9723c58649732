// Package stats aggregates normalized export rows into year-level summary
// records. Aggregation never fails: empty input yields a well-defined
// zero-value record and degenerate fields use "Unknown" sentinels.
package stats

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidefield/wrapped/internal/domain"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// AllActivities aggregates monthly activity rows into the year summary.
// Duplicate (month, activity type) rows are tolerated and summed, so rows
// merged from multiple files need no prior deduplication. All "best X"
// selections use strict greater-than comparisons over calendar-ordered
// months, making ties deterministic: the earliest calendar month wins.
func AllActivities(rows []domain.MonthlyActivity) domain.AllActivitiesStats {
	if len(rows) == 0 {
		return emptyActivitiesStats()
	}

	year := time.Now().Year()
	if m := yearPattern.FindString(rows[0].Month); m != "" {
		year, _ = strconv.Atoi(m)
	}

	var totalDistance float64
	for _, row := range rows {
		totalDistance += row.Distance
	}

	// Group rows by activity type, preserving first-encounter order so the
	// later stable sort breaks equal distances by input order.
	grouped := make(map[string][]domain.MonthlyActivity)
	var typeOrder []string
	for _, row := range rows {
		if _, ok := grouped[row.ActivityType]; !ok {
			typeOrder = append(typeOrder, row.ActivityType)
		}
		grouped[row.ActivityType] = append(grouped[row.ActivityType], row)
	}

	activitiesByType := make([]domain.ActivityTypeStats, 0, len(typeOrder))
	for _, activityType := range typeOrder {
		activitiesByType = append(activitiesByType, activityTypeStats(activityType, grouped[activityType], totalDistance))
	}
	sort.SliceStable(activitiesByType, func(i, j int) bool {
		return activitiesByType[i].TotalDistance > activitiesByType[j].TotalDistance
	})

	topActivity := "Unknown"
	if len(activitiesByType) > 0 {
		topActivity = activitiesByType[0].Type
	}

	// Global per-month accumulation keyed by full month name. The map also
	// drives the streak computation, so months whose rows sum to zero still
	// count as "has data" even though the breakdown filters them out.
	type monthAccum struct {
		distance   float64
		activities []string
		seen       map[string]struct{}
	}
	months := make(map[string]*monthAccum)
	for _, row := range rows {
		name := domain.ExpandMonth(monthToken(row.Month))
		if name == "" {
			continue
		}
		acc := months[name]
		if acc == nil {
			acc = &monthAccum{seen: make(map[string]struct{})}
			months[name] = acc
		}
		acc.distance += row.Distance
		if _, ok := acc.seen[row.ActivityType]; !ok {
			acc.seen[row.ActivityType] = struct{}{}
			acc.activities = append(acc.activities, row.ActivityType)
		}
	}

	breakdown := make([]domain.MonthActivity, 0, len(months))
	for _, name := range domain.MonthNames {
		acc := months[name]
		if acc == nil || acc.distance <= 0 {
			continue
		}
		breakdown = append(breakdown, domain.MonthActivity{
			Month:      name,
			Distance:   acc.distance,
			Activities: acc.activities,
		})
	}

	bestMonth := domain.MonthDistance{Month: "Unknown"}
	if len(breakdown) > 0 {
		bestMonth.Month = breakdown[0].Month
	}
	for _, m := range breakdown {
		if m.Distance > bestMonth.Distance {
			bestMonth = domain.MonthDistance{Month: m.Month, Distance: m.Distance}
		}
	}

	// Longest run of calendar-consecutive months with any recorded data.
	bestStreak, current := 0, 0
	for _, name := range domain.MonthNames {
		if _, ok := months[name]; ok {
			current++
			if current > bestStreak {
				bestStreak = current
			}
		} else {
			current = 0
		}
	}

	firstActivity := "Unknown"
	if len(breakdown) > 0 {
		firstActivity = breakdown[0].Month
	}

	return domain.AllActivitiesStats{
		Year:             year,
		TotalDistance:    totalDistance,
		TotalMonths:      len(breakdown),
		ActivitiesByType: activitiesByType,
		TopActivity:      topActivity,
		MonthlyBreakdown: breakdown,
		Milestones: domain.Milestones{
			FirstActivity:   firstActivity,
			BestMonth:       bestMonth,
			BestStreak:      bestStreak,
			TotalKilometers: int(math.Round(totalDistance)),
		},
	}
}

func activityTypeStats(activityType string, group []domain.MonthlyActivity, totalDistance float64) domain.ActivityTypeStats {
	var typeDistance float64
	uniqueMonths := make(map[string]struct{})
	monthTotals := make(map[string]float64)
	for _, row := range group {
		typeDistance += row.Distance
		uniqueMonths[row.Month] = struct{}{}
		monthTotals[domain.ExpandMonth(monthToken(row.Month))] += row.Distance
	}

	best := domain.MonthDistance{Month: domain.ExpandMonth(monthToken(group[0].Month))}
	for _, name := range domain.MonthNames {
		if dist, ok := monthTotals[name]; ok && dist > best.Distance {
			best = domain.MonthDistance{Month: name, Distance: dist}
		}
	}

	// A zero grand total would make the share NaN, which encoding/json
	// cannot marshal; report zero instead.
	percentage := 0.0
	if totalDistance != 0 {
		percentage = typeDistance / totalDistance * 100
	}

	return domain.ActivityTypeStats{
		Type:                activityType,
		TotalDistance:       typeDistance,
		TotalMonths:         len(uniqueMonths),
		AvgDistancePerMonth: typeDistance / float64(len(uniqueMonths)),
		BestMonth:           best,
		Percentage:          percentage,
	}
}

// monthToken returns the leading month token of a "Mon YYYY" string. Full
// month names (from re-aggregated breakdown entries) pass through whole.
func monthToken(month string) string {
	if i := strings.IndexByte(month, ' '); i > 0 {
		return month[:i]
	}
	return month
}

func emptyActivitiesStats() domain.AllActivitiesStats {
	return domain.AllActivitiesStats{
		Year:             time.Now().Year(),
		ActivitiesByType: []domain.ActivityTypeStats{},
		TopActivity:      "Unknown",
		MonthlyBreakdown: []domain.MonthActivity{},
		Milestones: domain.Milestones{
			FirstActivity: "Unknown",
			BestMonth:     domain.MonthDistance{Month: "Unknown"},
		},
	}
}
