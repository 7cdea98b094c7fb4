package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteResult_BoundsAndLength(t *testing.T) {
	result := &RouteResult{
		Polyline: []Coordinate{
			{Lat: 38.8977, Lng: -77.0365},
			{Lat: 38.9072, Lng: -77.0369},
			{Lat: 38.9101, Lng: -77.0147},
		},
	}

	bound := result.Bounds()
	assert.Equal(t, -77.0369, bound.Min.Lon())
	assert.Equal(t, 38.8977, bound.Min.Lat())
	assert.Equal(t, -77.0147, bound.Max.Lon())
	assert.Equal(t, 38.9101, bound.Max.Lat())

	length := result.PathLengthKm()
	assert.True(t, length > 2.5 && length < 3.5, "length %f", length)
}

func TestRouteResult_IsRegression(t *testing.T) {
	flat := &RouteResult{EmissionsKg: -1}
	assert.False(t, flat.IsRegression())

	worse := &RouteResult{EmissionsKg: -2, Comparison: &RouteComparison{}}
	assert.True(t, worse.IsRegression())

	better := &RouteResult{EmissionsKg: 4, Comparison: &RouteComparison{}}
	assert.False(t, better.IsRegression())
}
