// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"math"

	"greenroute/internal/errors"

	"github.com/paulmach/orb"
)

// ErrCoordinateOutOfRange is returned when a latitude/longitude pair is not on Earth
var ErrCoordinateOutOfRange = errors.New("coordinate out of range")

// DefaultMapCenter is shown when the device location is unknown (Washington, DC).
var DefaultMapCenter = Coordinate{Lat: 38.8977, Lng: -77.0365}

// Coordinate is a WGS84 latitude/longitude pair.
// Values are only produced through NewCoordinate, so a Coordinate is always in range.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewCoordinate validates the bounds and returns an immutable coordinate
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return Coordinate{}, errors.Wrapf(ErrCoordinateOutOfRange, "lat=%v lng=%v", lat, lng)
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinate{}, errors.Wrapf(ErrCoordinateOutOfRange, "lat=%v lng=%v", lat, lng)
	}

	return Coordinate{Lat: lat, Lng: lng}, nil
}

// Point converts to an orb point; orb stores longitude first.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// String formats the coordinate with six decimals, e.g. "38.897700, -77.036500"
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}
