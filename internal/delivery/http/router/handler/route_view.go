package handler

import (
	"greenroute/internal/domain/entity"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/usecase"
	"greenroute/internal/util"
)

// ResolveRouteRequest is the body of POST /api/v1/routes.
// Address completeness is judged by the pipeline so that each endpoint gets its own message.
type ResolveRouteRequest struct {
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Vehicle     *VehicleRequest   `json:"vehicle,omitempty"`
	APIKeys     map[string]string `json:"api_keys,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
}

// VehicleRequest overrides the default vehicle profile
type VehicleRequest struct {
	Type       string  `json:"type" validate:"required"`
	Model      string  `json:"model" validate:"required"`
	FuelType   string  `json:"fuel_type" validate:"required"`
	Efficiency float64 `json:"efficiency" validate:"gt=0"`
}

func (r *ResolveRouteRequest) toInput() *usecase.ResolveInput {
	input := &usecase.ResolveInput{
		Origin:      r.Origin,
		Destination: r.Destination,
		Credentials: entity.Credentials(r.APIKeys),
	}

	if r.Vehicle != nil {
		input.Vehicle = &entity.VehicleProfile{
			Type:       r.Vehicle.Type,
			Model:      r.Vehicle.Model,
			FuelType:   r.Vehicle.FuelType,
			Efficiency: r.Vehicle.Efficiency,
		}
	}

	return input
}

// FormattedMetrics are the display strings of the stats panel
type FormattedMetrics struct {
	Distance   string `json:"distance"`
	TravelTime string `json:"travel_time"`
	Emissions  string `json:"emissions"`
}

// BoundsView is the viewport that fits the whole polyline
type BoundsView struct {
	SouthWest entity.Coordinate `json:"south_west"`
	NorthEast entity.Coordinate `json:"north_east"`
}

// RouteView is a RouteResult plus everything the map and stats panel derive from it
type RouteView struct {
	*entity.RouteResult

	Formatted           FormattedMetrics `json:"formatted"`
	Bounds              BoundsView       `json:"bounds"`
	PathLengthKm        float64          `json:"path_length_km"`
	EmissionsRegression bool             `json:"emissions_regression"`
}

// NewRouteView builds the view; nil in, nil out
func NewRouteView(result *entity.RouteResult) *RouteView {
	if result == nil {
		return nil
	}

	bound := result.Bounds()

	return &RouteView{
		RouteResult: result,
		Formatted: FormattedMetrics{
			Distance:   util.FormatDistance(result.DistanceKm),
			TravelTime: util.FormatTravelTime(result.DurationMinutes),
			Emissions:  util.FormatEmissions(result.EmissionsKg),
		},
		Bounds: BoundsView{
			SouthWest: entity.Coordinate{Lat: bound.Min.Lat(), Lng: bound.Min.Lon()},
			NorthEast: entity.Coordinate{Lat: bound.Max.Lat(), Lng: bound.Max.Lon()},
		},
		PathLengthKm:        result.PathLengthKm(),
		EmissionsRegression: result.IsRegression(),
	}
}

// ErrorView is the failure the UI keeps showing until the next attempt
type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SessionView is the state a session retains between requests
type SessionView struct {
	State     string     `json:"state"`
	Route     *RouteView `json:"route,omitempty"`
	LastError *ErrorView `json:"last_error,omitempty"`
}

// NewSessionView snapshots a session; no session reads as idle
func NewSessionView(session usecase.RouteUsecase) *SessionView {
	if session == nil {
		return &SessionView{State: usecase.StateIdle.String()}
	}

	view := &SessionView{
		State: session.State().String(),
		Route: NewRouteView(session.LastResult()),
	}

	if err := session.LastError(); err != nil {
		appErr := domainerrors.AsAppError(err)
		view.LastError = &ErrorView{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
			Details: appErr.Details(),
		}
	}

	return view
}

// ReverseGeocodeView describes a coordinate for pre-filling the origin field
type ReverseGeocodeView struct {
	Coordinate entity.Coordinate `json:"coordinate"`
	Address    string            `json:"address"`

	// DefaultLocation is set when no coordinate was supplied and the default map centre was used
	DefaultLocation bool `json:"default_location"`
}

// AddressValidationView reports whether an address is complete enough to geocode
type AddressValidationView struct {
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
}

// HealthView reports liveness and how many route sessions are held in memory
type HealthView struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
