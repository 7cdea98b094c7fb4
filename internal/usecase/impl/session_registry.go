package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"greenroute/config"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/domain/service"
	"greenroute/internal/errors"
	"greenroute/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// RouteSessionParams holds dependencies for the session registry, injected by Fx
type RouteSessionParams struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	Geocoder    service.Geocoder
	RouteClient service.RouteClient
	Logger      *slog.Logger
}

type sessionEntry struct {
	orchestrator *routeOrchestrator
	lastSeen     time.Time
}

// sessionRegistry keeps one orchestrator per UI session in memory
type sessionRegistry struct {
	geocoder    service.Geocoder
	routeClient service.RouteClient
	vehicle     *config.VehicleConfig
	idleTTL     time.Duration
	maxSessions int
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewRouteSessionService creates the registry and runs its idle sweeper for the app lifetime
func NewRouteSessionService(params RouteSessionParams) usecase.RouteSessionUsecase {
	registry := newSessionRegistry(
		params.Geocoder,
		params.RouteClient,
		params.Config.Vehicle,
		params.Config.Session,
		params.Logger,
	)

	sweepCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				registry.runSweeper(sweepCtx)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}

			return nil
		},
	})

	return registry
}

func newSessionRegistry(
	geocoder service.Geocoder,
	routeClient service.RouteClient,
	vehicle *config.VehicleConfig,
	session *config.SessionConfig,
	logger *slog.Logger,
) *sessionRegistry {
	if logger == nil {
		logger = slog.Default()
	}

	return &sessionRegistry{
		geocoder:    geocoder,
		routeClient: routeClient,
		vehicle:     vehicle,
		idleTTL:     session.IdleTTL,
		maxSessions: session.MaxSessions,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
}

// Acquire returns the orchestrator bound to sessionID, opening a session if needed
func (r *sessionRegistry) Acquire(sessionID string) (string, usecase.RouteUsecase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[sessionID]; ok {
		entry.lastSeen = r.now()

		return sessionID, entry.orchestrator, nil
	}

	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions && !r.evictLeastRecentLocked() {
		r.logger.Warn("Route session limit reached", slog.Int("open", len(r.sessions)))

		return "", nil, errors.WithStack(domainerrors.ErrSessionLimit)
	}

	// Only well-formed ids are honoured so clients cannot pick arbitrary keys
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.NewString()
	}

	entry := &sessionEntry{
		orchestrator: newRouteOrchestrator(r.geocoder, r.routeClient, r.vehicle, r.logger),
		lastSeen:     r.now(),
	}
	r.sessions[sessionID] = entry

	r.logger.Debug("Route session opened", slog.String("session_id", sessionID))

	return sessionID, entry.orchestrator, nil
}

// evictLeastRecentLocked drops the least recently seen session with no call in flight.
// r.mu must be held.
func (r *sessionRegistry) evictLeastRecentLocked() bool {
	var (
		victim   string
		oldest   time.Time
		selected bool
	)
	for id, entry := range r.sessions {
		if entry.orchestrator.State().InFlight() {
			continue
		}
		if !selected || entry.lastSeen.Before(oldest) {
			victim, oldest, selected = id, entry.lastSeen, true
		}
	}

	if !selected {
		return false
	}
	delete(r.sessions, victim)
	r.logger.Debug("Route session evicted", slog.String("session_id", victim))

	return true
}

// Lookup returns an open session without creating one
func (r *sessionRegistry) Lookup(sessionID string) (usecase.RouteUsecase, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = r.now()

	return entry.orchestrator, true
}

// Sweep closes idle sessions. A session with a call in flight is never closed.
func (r *sessionRegistry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	closed := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.After(cutoff) || entry.orchestrator.State().InFlight() {
			continue
		}
		delete(r.sessions, id)
		closed++
	}

	if closed > 0 {
		r.logger.Debug("Idle route sessions closed", slog.Int("closed", closed), slog.Int("open", len(r.sessions)))
	}

	return closed
}

// Len returns the number of open sessions
func (r *sessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *sessionRegistry) runSweeper(ctx context.Context) {
	if r.idleTTL <= 0 {
		return
	}

	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
