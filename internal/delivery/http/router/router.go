// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"greenroute/internal/delivery/http/router/handler"
	"greenroute/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RouteHandler      *handler.RouteHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	routeHandler      *handler.RouteHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		routeHandler:      params.RouteHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.routeHandler.HealthCheck)

	v1 := e.Group("/api/v1")

	// Stateless
	v1.GET("/addresses/validate", r.routeHandler.ValidateAddress)

	// Bound to the caller's X-Session-Id, opening a session when needed
	withSession := r.sessionMiddleware.Process
	v1.POST("/routes", r.routeHandler.ResolveRoute, withSession)
	v1.GET("/geocode/reverse", r.routeHandler.ReverseGeocode, withSession)

	// Read only; never opens a session
	v1.GET("/routes/last", r.routeHandler.LastRoute, r.sessionMiddleware.Attach)
}
