package entity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// RouteMetrics are the headline numbers of one route variant. All values are non-negative.
type RouteMetrics struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	EmissionsKg     float64 `json:"emissions_kg"`
}

// RouteComparison holds the baseline route next to the eco-optimized one
type RouteComparison struct {
	Original  RouteMetrics `json:"original"`
	Optimized RouteMetrics `json:"optimized"`
}

// RouteResult is the canonical route model handed to the UI.
type RouteResult struct {
	Polyline        []Coordinate `json:"polyline"`
	DistanceKm      float64      `json:"distance_km"`
	DurationMinutes float64      `json:"duration_minutes"`

	// EmissionsKg is the emissions figure reported for the route. With a
	// comparison it is the saving (original - optimized) and may be negative.
	EmissionsKg float64 `json:"emissions_kg"`

	Comparison         *RouteComparison `json:"comparison,omitempty"`
	RecommendationText *string          `json:"recommendation,omitempty"`
	Directions         []string         `json:"directions"`
}

// Path returns the polyline as an orb line string
func (r *RouteResult) Path() orb.LineString {
	path := make(orb.LineString, 0, len(r.Polyline))
	for _, c := range r.Polyline {
		path = append(path, c.Point())
	}

	return path
}

// Bounds returns the bounding box the map should fit to show the whole route
func (r *RouteResult) Bounds() orb.Bound {
	return r.Path().Bound()
}

// PathLengthKm is the great-circle length of the polyline
func (r *RouteResult) PathLengthKm() float64 {
	return geo.Length(r.Path()) / 1000
}

// IsRegression reports whether the "optimized" route emits more than the original
func (r *RouteResult) IsRegression() bool {
	return r.Comparison != nil && r.EmissionsKg < 0
}
