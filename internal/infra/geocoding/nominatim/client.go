// Package nominatim implements service.Geocoder against an OpenStreetMap
// Nominatim compatible endpoint.
package nominatim

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"greenroute/config"
	deliverycontext "greenroute/internal/delivery/context"
	"greenroute/internal/domain/entity"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/domain/service"
	"greenroute/internal/errors"

	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	searchPath  = "/search"
	reversePath = "/reverse"
)

// Params holds dependencies for the geocoder, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type client struct {
	baseURL        string
	userAgent      string
	acceptLanguage string
	timeout        time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewGeocoder creates the Nominatim geocoder from application config
func NewGeocoder(params Params) service.Geocoder {
	return New(params.Config.Geocoding, &http.Client{}, params.Logger)
}

// New creates a geocoder with an explicit HTTP client.
// The per-call timeout is applied through the request context.
func New(cfg *config.GeocodingConfig, httpClient *http.Client, logger *slog.Logger) service.Geocoder {
	return &client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		timeout:        cfg.Timeout,
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:         logger,
	}
}

func (c *client) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

// Forward resolves address to the coordinate of the first candidate
func (c *client) Forward(ctx context.Context, address string) (entity.Coordinate, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	resp, err := c.get(ctx, searchPath, params)
	if err != nil {
		return entity.Coordinate{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log(ctx).Warn("Nominatim search returned non-success status", slog.Int("status", resp.StatusCode))

		return entity.Coordinate{}, errors.Wrapf(domainerrors.ErrAddressNotFound, "nominatim search status %d", resp.StatusCode)
	}

	var candidates []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		c.log(ctx).Error("Failed to decode nominatim search payload", slog.Any("error", err))

		return entity.Coordinate{}, errors.Wrapf(domainerrors.ErrProviderUnavailable, "decode nominatim search: %v", err)
	}

	if len(candidates) == 0 {
		c.log(ctx).Debug("Nominatim found no candidates", slog.String("address", address))

		return entity.Coordinate{}, errors.Wrap(domainerrors.ErrAddressNotFound, "nominatim search returned no candidates")
	}

	coord, err := parseCoordinate(candidates[0].Lat, candidates[0].Lon)
	if err != nil {
		return entity.Coordinate{}, errors.Wrapf(domainerrors.ErrProviderUnavailable, "nominatim candidate: %v", err)
	}

	c.log(ctx).Debug("Geocoded address",
		slog.String("address", address),
		slog.Float64("lat", coord.Lat),
		slog.Float64("lng", coord.Lng),
	)

	return coord, nil
}

// Reverse returns the provider's display name, or the formatted coordinate on any failure
func (c *client) Reverse(ctx context.Context, coord entity.Coordinate) string {
	displayName, err := c.reverse(ctx, coord)
	if err != nil {
		c.log(ctx).Warn("Reverse geocoding failed, using coordinate fallback",
			slog.String("coordinate", coord.String()),
			slog.Any("error", err),
		)

		return coord.String()
	}

	return displayName
}

func (c *client) reverse(ctx context.Context, coord entity.Coordinate) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))
	params.Set("addressdetails", "1")

	resp, err := c.get(ctx, reversePath, params)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.Errorf("nominatim reverse status %d", resp.StatusCode)
	}

	var result reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "decode nominatim reverse")
	}

	if result.Error != "" {
		return "", errors.Errorf("nominatim reverse: %s", result.Error)
	}

	if strings.TrimSpace(result.DisplayName) == "" {
		return "", errors.New("nominatim reverse: empty display name")
	}

	return result.DisplayName, nil
}

// get waits for the rate limiter and issues an identified GET request
func (c *client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrapf(domainerrors.ErrProviderUnavailable, "nominatim rate limiter: %v", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrProviderUnavailable, "build nominatim request: %v", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", c.acceptLanguage)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx).Error("Nominatim request failed",
			slog.String("path", path),
			slog.Bool("timeout", errors.IsTimeout(err)),
			slog.Any("error", err),
		)

		return nil, errors.Wrapf(domainerrors.ErrProviderUnavailable, "nominatim request: %v", err)
	}

	return resp, nil
}

func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.timeout)
}

func parseCoordinate(rawLat, rawLon string) (entity.Coordinate, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil {
		return entity.Coordinate{}, errors.Wrapf(err, "invalid latitude %q", rawLat)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if err != nil {
		return entity.Coordinate{}, errors.Wrapf(err, "invalid longitude %q", rawLon)
	}

	return entity.NewCoordinate(lat, lon)
}

// Module provides the geocoder FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewGeocoder),
)
