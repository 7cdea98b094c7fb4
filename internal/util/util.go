package util

import (
	"fmt"
	"math"
)

// FormatTravelTime renders minutes as "H hr M min", or "M min" under an hour.
// Minutes are rounded first so 119.6 becomes "2 hr 0 min" rather than "1 hr 60 min".
func FormatTravelTime(minutes float64) string {
	if math.IsNaN(minutes) || minutes < 0 {
		minutes = 0
	}

	total := int64(math.Round(minutes))
	hours, rest := total/60, total%60

	if hours > 0 {
		return fmt.Sprintf("%d hr %d min", hours, rest)
	}

	return fmt.Sprintf("%d min", rest)
}

// FormatDistance renders kilometres with two decimals, e.g. "12.35 km".
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f km", km)
}

// FormatEmissions renders kilograms of CO2 with two decimals. Negative values
// are kept so a route that emits more than the original stays visible.
func FormatEmissions(kg float64) string {
	return fmt.Sprintf("%.2f kg", kg)
}
