// Package recommendation submits resolved coordinates to the route
// recommendation backend.
package recommendation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"greenroute/config"
	deliverycontext "greenroute/internal/delivery/context"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/domain/service"
	"greenroute/internal/errors"

	"go.uber.org/fx"
)

// maxResponseSize bounds how much of a backend body is read
const maxResponseSize = 4 << 20

// Params holds dependencies for the RouteClient, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRouteClient creates the backend client from application config
func NewRouteClient(params Params) service.RouteClient {
	return New(params.Config.Recommendation, &http.Client{}, params.Logger)
}

// New creates a RouteClient posting to cfg.URL
func New(cfg *config.RecommendationConfig, httpClient *http.Client, logger *slog.Logger) service.RouteClient {
	return &client{
		endpoint:   cfg.URL,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Submit posts the request once and decodes the body without interpreting it
func (c *client) Submit(ctx context.Context, req *service.RouteRequest) (*service.RawRouteResponse, error) {
	if req == nil {
		return nil, errors.New("nil route request")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(toWire(req))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		httpReq.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	logger.Info("Requesting route recommendation",
		slog.String("endpoint", c.endpoint),
		slog.String("vehicle_model", req.Vehicle.Model),
		slog.Any("credentials", req.Credentials),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Route backend request failed",
			slog.Bool("timeout", errors.IsTimeout(err)),
			slog.Any("error", err),
		)

		return nil, errors.Wrapf(domainerrors.ErrProviderUnavailable, "route backend request: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrProviderUnavailable, "read route backend body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure errorBody
		_ = json.Unmarshal(payload, &failure)

		logger.Warn("Route backend returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("backend_error", failure.Error),
		)

		return nil, domainerrors.NewBackendError(resp.StatusCode, failure.Error)
	}

	if !json.Valid(payload) {
		logger.Error("Route backend answered with a non-JSON body", slog.Int("bytes", len(payload)))

		return nil, errors.Wrap(domainerrors.ErrProviderUnavailable, "route backend body is not JSON")
	}

	// Valid JSON that does not fit the response shape is a contract breach, not an outage
	var raw service.RawRouteResponse
	if err := json.Unmarshal(payload, &raw); err != nil {
		logger.Warn("Route backend body does not match the route response shape", slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrMalformedResponse, "decode route backend body: %v", err)
	}

	logger.Info("Route recommendation received", slog.Int("route_points", len(raw.Route)))

	return &raw, nil
}

// Module provides the route backend FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRouteClient),
)
