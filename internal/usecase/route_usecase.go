package usecase

import (
	"context"

	"greenroute/internal/domain/entity"
)

// State is the position of a resolve call in the pipeline
type State int

const (
	StateIdle State = iota
	StateValidating
	StateGeocoding
	StateRequesting
	StateNormalizing
	StateReady
	StateFailed
)

// String returns the lower-case state name used in API payloads and logs
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateGeocoding:
		return "geocoding"
	case StateRequesting:
		return "requesting"
	case StateNormalizing:
		return "normalizing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether a resolve call currently owns the orchestrator
func (s State) InFlight() bool {
	switch s {
	case StateValidating, StateGeocoding, StateRequesting, StateNormalizing:
		return true
	default:
		return false
	}
}

// ResolveInput is everything the user submits for one route
type ResolveInput struct {
	Origin      string
	Destination string

	// Vehicle falls back to the configured default profile when nil
	Vehicle *entity.VehicleProfile

	// Credentials are forwarded to the backend for this call only
	Credentials entity.Credentials
}

// RouteUsecase resolves two free-text addresses into an optimized route
type RouteUsecase interface {
	// Resolve runs validate, geocode, request and normalize. A call made while
	// another is in flight fails with ErrResolveInProgress.
	Resolve(ctx context.Context, input *ResolveInput) (*entity.RouteResult, error)

	// State returns the current pipeline state
	State() State

	// LastResult returns the result of the latest call, nil unless it succeeded
	LastResult() *entity.RouteResult

	// LastError returns the error of the latest finished call, nil after a success
	LastError() error

	// ReverseGeocode describes a coordinate as an address, falling back to the
	// formatted coordinate. It never fails.
	ReverseGeocode(ctx context.Context, coord entity.Coordinate) string
}

// RouteSessionUsecase hands out one RouteUsecase per UI session
type RouteSessionUsecase interface {
	// Acquire returns the session for sessionID, opening a new one when the id
	// is empty, malformed or expired. The returned id is the one to echo back.
	// At capacity the least recently used idle session is evicted; when every
	// session is busy it fails with ErrSessionLimit.
	Acquire(sessionID string) (string, RouteUsecase, error)

	// Lookup returns an existing session without creating one
	Lookup(sessionID string) (RouteUsecase, bool)

	// Sweep closes sessions idle longer than the configured TTL and returns how many were closed
	Sweep() int

	// Len returns the number of open sessions
	Len() int
}
