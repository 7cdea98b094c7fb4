package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenroute/config"
	deliverycontext "greenroute/internal/delivery/context"
	"greenroute/internal/delivery/http/router"
	"greenroute/internal/delivery/http/router/handler"
	"greenroute/internal/delivery/http/validator"
	"greenroute/internal/delivery/middleware"
	"greenroute/internal/domain/entity"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/domain/service"
	"greenroute/internal/errors"
	mockService "greenroute/internal/mocks/service"
	"greenroute/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

const (
	origin      = "1600 Pennsylvania Ave, Washington, DC 20500"
	destination = "415 Mission St, San Francisco, CA 94105"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	echo        *echo.Echo
	geocoder    *mockService.MockGeocoder
	routeClient *mockService.MockRouteClient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	return newTestServerWith(t, func(*config.Config) {})
}

func newTestServerWith(t *testing.T, configure func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	configure(cfg)

	logger := slog.New(slog.DiscardHandler)
	geocoder := mockService.NewMockGeocoder(t)
	routeClient := mockService.NewMockRouteClient(t)

	sessions := impl.NewRouteSessionService(impl.RouteSessionParams{
		Lc:          fxtest.NewLifecycle(t),
		Config:      cfg,
		Geocoder:    geocoder,
		RouteClient: routeClient,
		Logger:      logger,
	})

	v := validator.New()
	e := NewEcho(cfg, logger, v, router.RouterParams{
		RouteHandler: handler.NewRouteHandler(handler.RouteHandlerParams{
			Validator: v,
			Sessions:  sessions,
			Logger:    logger,
		}),
		SessionMiddleware: middleware.NewSessionMiddleware(sessions),
	})

	return &testServer{echo: e, geocoder: geocoder, routeClient: routeClient}
}

func (s *testServer) do(t *testing.T, method, target, body, sessionID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if sessionID != "" {
		req.Header.Set(deliverycontext.HeaderXSessionID, sessionID)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

func (s *testServer) health(t *testing.T) handler.HealthView {
	t.Helper()

	rec, env := s.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view handler.HealthView
	require.NoError(t, json.Unmarshal(env.Data, &view))

	return view
}

func (s *testServer) expectGeocodes() {
	s.geocoder.EXPECT().Forward(mock.Anything, origin).Return(entity.Coordinate{Lat: 38.8977, Lng: -77.0365}, nil)
	s.geocoder.EXPECT().Forward(mock.Anything, destination).Return(entity.Coordinate{Lat: 37.7897, Lng: -122.3972}, nil)
}

func resolveBody(o, d string) string {
	body, _ := json.Marshal(map[string]string{"origin": o, "destination": d})

	return string(body)
}

func flatResponse() *service.RawRouteResponse {
	emissions, distance, duration := 4.0, 12.5, 135.0

	return &service.RawRouteResponse{
		Route:           [][]float64{{38.8977, -77.0365}, {38.5, -90.2}, {37.7897, -122.3972}},
		Emissions:       &emissions,
		DistanceKm:      &distance,
		DurationMinutes: &duration,
	}
}

func TestServer_ResolveRoute_Success(t *testing.T) {
	s := newTestServer(t)
	s.expectGeocodes()
	s.routeClient.EXPECT().Submit(mock.Anything, mock.Anything).Return(flatResponse(), nil).Once()

	rec, env := s.do(t, http.MethodPost, "/api/v1/routes", resolveBody(origin, destination), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	sessionID := rec.Header().Get(deliverycontext.HeaderXSessionID)
	_, err := uuid.Parse(sessionID)
	assert.NoError(t, err)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))

	var view struct {
		Polyline   []entity.Coordinate `json:"polyline"`
		Emissions  float64             `json:"emissions_kg"`
		Regression bool                `json:"emissions_regression"`
		Formatted  handler.FormattedMetrics
		Bounds     handler.BoundsView `json:"bounds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))

	assert.Len(t, view.Polyline, 3)
	assert.InDelta(t, 4.0, view.Emissions, 1e-9)
	assert.False(t, view.Regression)
	assert.Equal(t, "12.50 km", view.Formatted.Distance)
	assert.Equal(t, "2 hr 15 min", view.Formatted.TravelTime)
	assert.Equal(t, "4.00 kg", view.Formatted.Emissions)
	assert.InDelta(t, 37.7897, view.Bounds.SouthWest.Lat, 1e-9)
	assert.InDelta(t, -122.3972, view.Bounds.SouthWest.Lng, 1e-9)
	assert.InDelta(t, 38.8977, view.Bounds.NorthEast.Lat, 1e-9)
	assert.InDelta(t, -77.0365, view.Bounds.NorthEast.Lng, 1e-9)

	// The session keeps the result
	rec, env = s.do(t, http.MethodGet, "/api/v1/routes/last", "", sessionID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionID, rec.Header().Get(deliverycontext.HeaderXSessionID))

	var last handler.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &last))
	assert.Equal(t, "ready", last.State)
	require.NotNil(t, last.Route)
	assert.Nil(t, last.LastError)
}

func TestServer_ResolveRoute_Failures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(s *testServer)
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "invalid origin",
			body:        resolveBody("abc", destination),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    domainerrors.CodeInvalidOrigin,
			wantMessage: `Please enter a complete origin address (e.g., "1600 Pennsylvania Ave, Washington, DC 20500").`,
		},
		{
			name:        "invalid destination",
			body:        resolveBody(origin, "   "),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    domainerrors.CodeInvalidDestination,
			wantMessage: `Please enter a complete destination address (e.g., "123 Main St, San Francisco, CA 94105").`,
		},
		{
			name: "destination not found",
			body: resolveBody(origin, destination),
			setup: func(s *testServer) {
				s.geocoder.EXPECT().Forward(mock.Anything, origin).Return(entity.Coordinate{Lat: 38.8977, Lng: -77.0365}, nil)
				s.geocoder.EXPECT().Forward(mock.Anything, destination).Return(entity.Coordinate{}, domainerrors.ErrAddressNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantCode:    domainerrors.CodeAddressNotFound,
			wantMessage: "Unable to find the destination address. Please check the spelling and try again.",
		},
		{
			name: "backend error",
			body: resolveBody(origin, destination),
			setup: func(s *testServer) {
				s.expectGeocodes()
				s.routeClient.EXPECT().Submit(mock.Anything, mock.Anything).
					Return(nil, domainerrors.NewBackendError(http.StatusInternalServerError, "Route service overloaded"))
			},
			wantStatus:  http.StatusBadGateway,
			wantCode:    domainerrors.CodeBackendError,
			wantMessage: "Route service overloaded",
		},
		{
			name: "backend unreachable",
			body: resolveBody(origin, destination),
			setup: func(s *testServer) {
				s.expectGeocodes()
				s.routeClient.EXPECT().Submit(mock.Anything, mock.Anything).
					Return(nil, errors.Wrap(domainerrors.ErrProviderUnavailable, "connection refused"))
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    domainerrors.CodeProviderUnavailable,
			wantMessage: "A mapping service is temporarily unavailable. Please try again later.",
		},
		{
			name:       "invalid vehicle",
			body:       `{"origin": "` + origin + `", "destination": "` + destination + `", "vehicle": {"type": "ev", "model": "m3", "fuel_type": "electric", "efficiency": 0}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   domainerrors.CodeValidationFailed,
		},
		{
			name:       "malformed body",
			body:       `{"origin": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   domainerrors.CodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.setup != nil {
				tt.setup(s)
			}

			rec, env := s.do(t, http.MethodPost, "/api/v1/routes", tt.body, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, env.Message)
			}
		})
	}
}

func TestServer_LastRoute_FailureReplacesRoute(t *testing.T) {
	s := newTestServer(t)
	s.expectGeocodes()
	s.routeClient.EXPECT().Submit(mock.Anything, mock.Anything).Return(flatResponse(), nil).Once()

	rec, _ := s.do(t, http.MethodPost, "/api/v1/routes", resolveBody(origin, destination), "")
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(deliverycontext.HeaderXSessionID)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/routes", resolveBody("", destination), sessionID)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, sessionID, rec.Header().Get(deliverycontext.HeaderXSessionID))

	rec, env := s.do(t, http.MethodGet, "/api/v1/routes/last", "", sessionID)
	require.Equal(t, http.StatusOK, rec.Code)

	var last handler.SessionView
	require.NoError(t, json.Unmarshal(env.Data, &last))
	assert.Equal(t, "failed", last.State)
	assert.Nil(t, last.Route)
	require.NotNil(t, last.LastError)
	assert.Equal(t, domainerrors.CodeInvalidOrigin, last.LastError.Code)
}

func TestServer_LastRoute_UnknownSessionIsIdle(t *testing.T) {
	s := newTestServer(t)

	for _, sessionID := range []string{"", uuid.NewString()} {
		rec, env := s.do(t, http.MethodGet, "/api/v1/routes/last", "", sessionID)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(deliverycontext.HeaderXSessionID))

		var last handler.SessionView
		require.NoError(t, json.Unmarshal(env.Data, &last))
		assert.Equal(t, "idle", last.State)
		assert.Nil(t, last.Route)
		assert.Nil(t, last.LastError)
	}

	assert.Equal(t, 0, s.health(t).Sessions)
}

func TestServer_SessionLimit(t *testing.T) {
	s := newTestServerWith(t, func(cfg *config.Config) { cfg.Session.MaxSessions = 1 })
	s.geocoder.EXPECT().Reverse(mock.Anything, entity.DefaultMapCenter).Return("Washington, DC")

	for range 20 {
		rec, _ := s.do(t, http.MethodGet, "/api/v1/geocode/reverse", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, s.health(t).Sessions)
}

func TestServer_ReverseGeocode(t *testing.T) {
	s := newTestServer(t)

	s.geocoder.EXPECT().
		Reverse(mock.Anything, entity.Coordinate{Lat: 40.7128, Lng: -74.006}).
		Return("New York, NY, United States").
		Once()

	rec, env := s.do(t, http.MethodGet, "/api/v1/geocode/reverse?lat=40.7128&lng=-74.006", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view handler.ReverseGeocodeView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "New York, NY, United States", view.Address)
	assert.False(t, view.DefaultLocation)
}

func TestServer_ReverseGeocode_DefaultCentre(t *testing.T) {
	s := newTestServer(t)

	s.geocoder.EXPECT().
		Reverse(mock.Anything, entity.DefaultMapCenter).
		Return(entity.DefaultMapCenter.String()).
		Once()

	rec, env := s.do(t, http.MethodGet, "/api/v1/geocode/reverse", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view handler.ReverseGeocodeView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.DefaultLocation)
	assert.Equal(t, entity.DefaultMapCenter, view.Coordinate)
	assert.Equal(t, "38.897700, -77.036500", view.Address)
}

func TestServer_ReverseGeocode_BadCoordinates(t *testing.T) {
	for _, query := range []string{"lat=north&lng=-74", "lat=40.7", "lat=91&lng=0"} {
		t.Run(query, func(t *testing.T) {
			s := newTestServer(t)

			rec, env := s.do(t, http.MethodGet, "/api/v1/geocode/reverse?"+query, "", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, domainerrors.CodeValidationFailed, env.Error.Code)
		})
	}
}

func TestServer_ValidateAddress(t *testing.T) {
	s := newTestServer(t)

	tests := map[string]bool{
		origin:      true,
		"Main St":   false,
		"Paris, FR": true,
		"":          false,
	}

	for addr, want := range tests {
		rec, env := s.do(t, http.MethodGet, "/api/v1/addresses/validate?address="+strings.ReplaceAll(addr, " ", "+"), "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var view handler.AddressValidationView
		require.NoError(t, json.Unmarshal(env.Data, &view))
		assert.Equal(t, want, view.Valid, addr)
		assert.Empty(t, rec.Header().Get(deliverycontext.HeaderXSessionID))
	}
}

func TestServer_HealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "ok", s.health(t).Status)

	rec, env = s.do(t, http.MethodGet, "/api/v1/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}
