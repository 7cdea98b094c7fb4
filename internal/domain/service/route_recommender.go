package service

import (
	"context"

	"greenroute/internal/domain/entity"
)

// RouteRequest is the payload sent to the route-recommendation backend.
// It is built fresh for every resolve call and never reused.
type RouteRequest struct {
	Origin      entity.Coordinate
	Destination entity.Coordinate
	Vehicle     entity.VehicleProfile
	Credentials entity.Credentials // nil when the caller supplied none
}

// RawMetrics is one side of the nested comparison object
type RawMetrics struct {
	DistanceKm        *float64 `json:"distance_km"`
	DurationMinutes   *float64 `json:"duration_minutes"`
	CarbonEmissionsKg *float64 `json:"carbon_emissions_kg"`
}

// RawComparison is the nested comparison object of the newer backend shape
type RawComparison struct {
	Original  *RawMetrics `json:"original"`
	Optimized *RawMetrics `json:"optimized"`
}

// RawRouteResponse is the backend body as received. Both known shapes decode
// into it; absent fields stay nil so the normalizer can tell them apart.
type RawRouteResponse struct {
	Route           [][]float64    `json:"route"`
	Emissions       *float64       `json:"emissions"`
	DistanceKm      *float64       `json:"distance_km"`
	DurationMinutes *float64       `json:"duration_minutes"`
	Recommendation  *string        `json:"recommendation"`
	Directions      []string       `json:"directions"`
	Comparison      *RawComparison `json:"comparison"`
	Error           string         `json:"error,omitempty"`
}

// RouteClient talks to the route-recommendation backend
type RouteClient interface {
	// Submit sends the request once. Fails with a BackendError when the
	// backend answers non-2xx and with ErrProviderUnavailable on transport
	// failures or a non-JSON body. No retries are performed.
	Submit(ctx context.Context, req *RouteRequest) (*RawRouteResponse, error)
}
