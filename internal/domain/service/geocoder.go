package service

import (
	"context"

	"greenroute/internal/domain/entity"
)

// Geocoder converts between free-text addresses and coordinates
type Geocoder interface {
	// Forward resolves an address to the coordinate of its first candidate.
	// Fails with ErrAddressNotFound when the provider has no candidate and
	// with ErrProviderUnavailable on transport or decoding failures.
	Forward(ctx context.Context, address string) (entity.Coordinate, error)

	// Reverse is best-effort: on any failure it returns the coordinate
	// formatted as "<lat>, <lng>" with six decimals.
	Reverse(ctx context.Context, coord entity.Coordinate) string
}
