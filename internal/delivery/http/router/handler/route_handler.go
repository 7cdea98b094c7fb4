// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"greenroute/internal/delivery/http/response"
	"greenroute/internal/delivery/http/validator"
	"greenroute/internal/delivery/middleware"
	"greenroute/internal/domain/entity"
	"greenroute/internal/errors"
	"greenroute/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	Validator *validator.Validator
	Sessions  usecase.RouteSessionUsecase
	Logger    *slog.Logger
}

// RouteHandler serves the address-to-route pipeline of the caller's session
type RouteHandler struct {
	validator *validator.Validator
	sessions  usecase.RouteSessionUsecase
	logger    *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		validator: params.Validator,
		sessions:  params.Sessions,
		logger:    params.Logger,
	}
}

// ResolveRoute validates, geocodes and optimizes a route between two addresses
func (h *RouteHandler) ResolveRoute(c echo.Context) error {
	var req ResolveRouteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid route request body")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	result, err := middleware.RouteSession(c).Resolve(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, NewRouteView(result), "Route optimized successfully")
}

// LastRoute returns the session's state, last route and last error; an unknown session is idle
func (h *RouteHandler) LastRoute(c echo.Context) error {
	return response.Success(c, http.StatusOK, NewSessionView(middleware.RouteSession(c)), "")
}

// ReverseGeocode describes the device location, or the default map centre when none is given
func (h *RouteHandler) ReverseGeocode(c echo.Context) error {
	coord := entity.DefaultMapCenter
	usedDefault := true

	if c.QueryParam("lat") != "" || c.QueryParam("lng") != "" {
		var lat, lng float64
		if err := echo.QueryParamsBinder(c).
			MustFloat64("lat", &lat).
			MustFloat64("lng", &lng).
			BindError(); err != nil {
			return response.BindingError(c, "lat and lng must both be decimal degrees")
		}

		parsed, err := entity.NewCoordinate(lat, lng)
		if err != nil {
			return response.BindingError(c, "lat must be within [-90, 90] and lng within [-180, 180]")
		}
		coord, usedDefault = parsed, false
	}

	addr := middleware.RouteSession(c).ReverseGeocode(c.Request().Context(), coord)

	return response.Success(c, http.StatusOK, ReverseGeocodeView{
		Coordinate:      coord,
		Address:         addr,
		DefaultLocation: usedDefault,
	}, "")
}

// ValidateAddress runs the completeness check without touching the network
func (h *RouteHandler) ValidateAddress(c echo.Context) error {
	addr := c.QueryParam("address")

	return response.Success(c, http.StatusOK, AddressValidationView{
		Address: addr,
		Valid:   h.validator.Var(addr, validator.TagPostalAddress) == nil,
	}, "")
}

// HealthCheck is a simple handler to check if the service is up.
func (h *RouteHandler) HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, HealthView{
		Status:   "ok",
		Sessions: h.sessions.Len(),
	}, "Service is healthy")
}
