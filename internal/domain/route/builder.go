// Package route assembles backend requests and reconciles the backend's
// response shapes into entity.RouteResult.
package route

import (
	"greenroute/internal/domain/entity"
	"greenroute/internal/domain/service"
)

// BuildRequest assembles the outbound request. Inputs are already validated.
// Credentials with no usable secret are dropped entirely so the backend never
// mistakes a blank value for a configured-but-invalid key.
func BuildRequest(
	origin, destination entity.Coordinate,
	vehicle entity.VehicleProfile,
	credentials entity.Credentials,
) *service.RouteRequest {
	return &service.RouteRequest{
		Origin:      origin,
		Destination: destination,
		Vehicle:     vehicle,
		Credentials: credentials.Compact(),
	}
}
