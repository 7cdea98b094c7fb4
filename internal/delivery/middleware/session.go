package middleware

import (
	"log/slog"

	deliverycontext "greenroute/internal/delivery/context"
	"greenroute/internal/usecase"

	"github.com/labstack/echo/v4"
)

const keyRouteSession = "route_session"

// SessionMiddleware binds each request to the caller's route session
type SessionMiddleware struct {
	sessions usecase.RouteSessionUsecase
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions usecase.RouteSessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
	}
}

// Process resolves X-Session-Id to a session, opening one when needed, and echoes the id back
func (m *SessionMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requested := c.Request().Header.Get(deliverycontext.HeaderXSessionID)

		sessionID, session, err := m.sessions.Acquire(requested)
		if err != nil {
			return err
		}
		m.bind(c, sessionID, session)

		return next(c)
	}
}

// Attach binds X-Session-Id only when it names an open session; it never opens one
func (m *SessionMiddleware) Attach(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requested := c.Request().Header.Get(deliverycontext.HeaderXSessionID)

		if session, ok := m.sessions.Lookup(requested); ok {
			m.bind(c, requested, session)
		}

		return next(c)
	}
}

func (m *SessionMiddleware) bind(c echo.Context, sessionID string, session usecase.RouteUsecase) {
	deliverycontext.SetSessionID(c, sessionID)
	c.Set(keyRouteSession, session)
	c.Response().Header().Set(deliverycontext.HeaderXSessionID, sessionID)

	ctx := c.Request().Context()
	if logger := deliverycontext.GetLogger(ctx); logger != nil {
		ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("session_id", sessionID)))
		c.SetRequest(c.Request().WithContext(ctx))
	}
}

// RouteSession returns the session bound by SessionMiddleware, nil outside of it
func RouteSession(c echo.Context) usecase.RouteUsecase {
	session, _ := c.Get(keyRouteSession).(usecase.RouteUsecase)

	return session
}
