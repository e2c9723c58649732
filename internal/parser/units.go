package parser

import (
	"strconv"
	"strings"

	"github.com/tidefield/wrapped/internal/domain"
)

// Conversion factors between the canonical internal kilometers and miles.
// The two constants are inverses of each other.
const (
	kmPerMile  = 1.60934
	milesPerKm = 0.621371
)

// KilometersToMiles converts a canonical kilometer value for mile display.
func KilometersToMiles(km float64) float64 { return km * milesPerKm }

// MilesToKilometers converts a mile value into canonical kilometers.
func MilesToKilometers(miles float64) float64 { return miles / milesPerKm }

// parseDistance parses a numeric field, tolerating a comma used as the
// decimal separator (European exports).
func parseDistance(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return strconv.ParseFloat(raw, 64)
}

// toKilometers converts an extracted distance into kilometers. Swim
// distances are recorded in meters by the trackers regardless of the
// declared unit, so they are scaled down before the unit conversion.
func toKilometers(value float64, unit domain.Unit, activityType string) float64 {
	if isSwim(activityType) {
		value /= 1000
	}
	if unit == domain.UnitMiles {
		value *= kmPerMile
	}
	return value
}

func isSwim(activityType string) bool {
	t := strings.ToLower(activityType)
	return t == "swim" || t == "swimming"
}
