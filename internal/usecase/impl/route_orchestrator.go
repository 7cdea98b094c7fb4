package impl

import (
	"context"
	"log/slog"
	"sync"

	"greenroute/config"
	deliverycontext "greenroute/internal/delivery/context"
	"greenroute/internal/domain/address"
	"greenroute/internal/domain/entity"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/domain/route"
	"greenroute/internal/domain/service"
	"greenroute/internal/errors"
	"greenroute/internal/usecase"

	"golang.org/x/sync/errgroup"
)

// routeOrchestrator drives one resolve call at a time through the pipeline
type routeOrchestrator struct {
	geocoder       service.Geocoder
	routeClient    service.RouteClient
	defaultVehicle entity.VehicleProfile
	logger         *slog.Logger

	mu         sync.Mutex
	state      usecase.State
	lastResult *entity.RouteResult
	lastErr    error
}

// NewRouteOrchestrator creates an idle orchestrator
func NewRouteOrchestrator(
	geocoder service.Geocoder,
	routeClient service.RouteClient,
	vehicle *config.VehicleConfig,
	logger *slog.Logger,
) usecase.RouteUsecase {
	return newRouteOrchestrator(geocoder, routeClient, vehicle, logger)
}

func newRouteOrchestrator(
	geocoder service.Geocoder,
	routeClient service.RouteClient,
	vehicle *config.VehicleConfig,
	logger *slog.Logger,
) *routeOrchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	var profile entity.VehicleProfile
	if vehicle != nil {
		profile = entity.VehicleProfile{
			Type:       vehicle.Type,
			Model:      vehicle.Model,
			FuelType:   vehicle.FuelType,
			Efficiency: vehicle.Efficiency,
		}
	}

	return &routeOrchestrator{
		geocoder:       geocoder,
		routeClient:    routeClient,
		defaultVehicle: profile,
		logger:         logger,
		state:          usecase.StateIdle,
	}
}

// Resolve runs the whole pipeline for one pair of addresses
func (o *routeOrchestrator) Resolve(ctx context.Context, input *usecase.ResolveInput) (*entity.RouteResult, error) {
	if !o.begin() {
		return nil, errors.WithStack(domainerrors.ErrResolveInProgress)
	}

	result, err := o.run(ctx, input)
	o.finish(result, err)

	return result, err
}

func (o *routeOrchestrator) run(ctx context.Context, input *usecase.ResolveInput) (*entity.RouteResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, o.logger)

	if input == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "nil resolve input")
	}

	// Validating
	if !address.IsValid(input.Origin) {
		return nil, errors.WithStack(domainerrors.ErrInvalidOrigin)
	}
	if !address.IsValid(input.Destination) {
		return nil, errors.WithStack(domainerrors.ErrInvalidDestination)
	}

	vehicle := o.defaultVehicle
	if input.Vehicle != nil {
		vehicle = *input.Vehicle
	}
	if !vehicle.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "incomplete vehicle profile")
	}

	// Geocoding
	o.transition(usecase.StateGeocoding)

	origin, destination, err := o.geocodeBoth(ctx, input.Origin, input.Destination)
	if err != nil {
		return nil, err
	}

	// Requesting
	o.transition(usecase.StateRequesting)

	req := route.BuildRequest(origin, destination, vehicle, input.Credentials)

	raw, err := o.routeClient.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	// Normalizing
	o.transition(usecase.StateNormalizing)

	result, err := route.Normalize(raw)
	if err != nil {
		logger.Warn("Route backend response could not be normalized", slog.Any("error", err))

		return nil, err
	}

	logger.Info("Route resolved",
		slog.Int("points", len(result.Polyline)),
		slog.Float64("distance_km", result.DistanceKm),
		slog.Float64("emissions_kg", result.EmissionsKg),
		slog.Bool("comparison", result.Comparison != nil),
	)

	return result, nil
}

// geocodeBoth resolves both endpoints concurrently. Each lookup reports its
// own failure; neither cancels the other.
func (o *routeOrchestrator) geocodeBoth(ctx context.Context, originAddr, destinationAddr string) (entity.Coordinate, entity.Coordinate, error) {
	var (
		origin, destination       entity.Coordinate
		originErr, destinationErr error
		g                         errgroup.Group
	)

	g.Go(func() error {
		origin, originErr = o.geocoder.Forward(ctx, originAddr)

		return nil
	})
	g.Go(func() error {
		destination, destinationErr = o.geocoder.Forward(ctx, destinationAddr)

		return nil
	})
	_ = g.Wait()

	logger := deliverycontext.GetLoggerOrDefault(ctx, o.logger)
	if originErr != nil {
		logger.Warn("Origin geocoding failed", slog.String("endpoint", entity.EndpointOrigin.String()), slog.Any("error", originErr))
	}
	if destinationErr != nil {
		logger.Warn("Destination geocoding failed", slog.String("endpoint", entity.EndpointDestination.String()), slog.Any("error", destinationErr))
	}

	if err := geocodeFailure(originErr, destinationErr); err != nil {
		return entity.Coordinate{}, entity.Coordinate{}, err
	}

	return origin, destination, nil
}

// geocodeFailure picks the error to report. A missing address outranks an
// unavailable provider, and the origin is reported before the destination.
func geocodeFailure(originErr, destinationErr error) error {
	switch {
	case errors.Is(originErr, domainerrors.ErrAddressNotFound):
		return errors.Wrap(domainerrors.ErrOriginNotFound, originErr.Error())
	case errors.Is(destinationErr, domainerrors.ErrAddressNotFound):
		return errors.Wrap(domainerrors.ErrDestinationNotFound, destinationErr.Error())
	case originErr != nil:
		return originErr
	default:
		return destinationErr
	}
}

// begin claims the orchestrator for a new call and clears the previous outcome
func (o *routeOrchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.InFlight() {
		return false
	}
	o.state = usecase.StateValidating
	o.lastResult = nil
	o.lastErr = nil

	return true
}

func (o *routeOrchestrator) transition(state usecase.State) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

// finish records the outcome; a failed call leaves no result behind
func (o *routeOrchestrator) finish(result *entity.RouteResult, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.state = usecase.StateFailed
		o.lastResult = nil
		o.lastErr = err

		return
	}

	o.state = usecase.StateReady
	o.lastResult = result
	o.lastErr = nil
}

// State returns the current pipeline state
func (o *routeOrchestrator) State() usecase.State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// LastResult returns the result of the latest call, nil unless it succeeded
func (o *routeOrchestrator) LastResult() *entity.RouteResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastResult
}

// LastError returns the error of the latest finished call
func (o *routeOrchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastErr
}

// ReverseGeocode delegates to the geocoder, which never fails
func (o *routeOrchestrator) ReverseGeocode(ctx context.Context, coord entity.Coordinate) string {
	return o.geocoder.Reverse(ctx, coord)
}
