package route

import (
	"greenroute/internal/domain/entity"
	domainerrors "greenroute/internal/domain/errors"
	"greenroute/internal/domain/service"
	"greenroute/internal/errors"
)

// minPolylinePoints is the fewest points a drawable route can have
const minPolylinePoints = 2

// Normalize accepts both backend shapes:
//
//	flat:       route, emissions, distance_km, duration_minutes, recommendation
//	comparison: route, recommendation, directions, comparison.{original,optimized}
//
// With a comparison, EmissionsKg is original minus optimized and is not
// clamped, so a worse "optimized" route shows up as a negative saving.
func Normalize(raw *service.RawRouteResponse) (*entity.RouteResult, error) {
	if raw == nil {
		return nil, errors.Wrap(domainerrors.ErrMalformedResponse, "empty response")
	}

	polyline, err := decodePolyline(raw.Route)
	if err != nil {
		return nil, err
	}

	if raw.Comparison != nil {
		return normalizeComparison(raw, polyline)
	}

	return normalizeFlat(raw, polyline)
}

func normalizeFlat(raw *service.RawRouteResponse, polyline []entity.Coordinate) (*entity.RouteResult, error) {
	if raw.Emissions == nil {
		return nil, errors.Wrap(domainerrors.ErrMalformedResponse, "flat response without emissions")
	}

	return &entity.RouteResult{
		Polyline:           polyline,
		DistanceKm:         valueOrZero(raw.DistanceKm),
		DurationMinutes:    valueOrZero(raw.DurationMinutes),
		EmissionsKg:        *raw.Emissions,
		RecommendationText: nonEmpty(raw.Recommendation),
		Directions:         []string{},
	}, nil
}

func normalizeComparison(raw *service.RawRouteResponse, polyline []entity.Coordinate) (*entity.RouteResult, error) {
	original, err := decodeMetrics("original", raw.Comparison.Original)
	if err != nil {
		return nil, err
	}

	optimized, err := decodeMetrics("optimized", raw.Comparison.Optimized)
	if err != nil {
		return nil, err
	}

	directions := append(make([]string, 0, len(raw.Directions)), raw.Directions...)

	return &entity.RouteResult{
		Polyline:        polyline,
		DistanceKm:      optimized.DistanceKm,
		DurationMinutes: optimized.DurationMinutes,
		EmissionsKg:     original.EmissionsKg - optimized.EmissionsKg,
		Comparison: &entity.RouteComparison{
			Original:  original,
			Optimized: optimized,
		},
		RecommendationText: nonEmpty(raw.Recommendation),
		Directions:         directions,
	}, nil
}

func decodePolyline(route [][]float64) ([]entity.Coordinate, error) {
	if len(route) < minPolylinePoints {
		return nil, errors.Wrapf(domainerrors.ErrMalformedResponse, "route has %d points, need at least %d", len(route), minPolylinePoints)
	}

	polyline := make([]entity.Coordinate, 0, len(route))
	for i, pair := range route {
		if len(pair) != 2 {
			return nil, errors.Wrapf(domainerrors.ErrMalformedResponse, "route point %d has %d values", i, len(pair))
		}

		coord, err := entity.NewCoordinate(pair[0], pair[1])
		if err != nil {
			return nil, errors.Wrapf(domainerrors.ErrMalformedResponse, "route point %d: %v", i, err)
		}
		polyline = append(polyline, coord)
	}

	return polyline, nil
}

func decodeMetrics(side string, raw *service.RawMetrics) (entity.RouteMetrics, error) {
	if raw == nil {
		return entity.RouteMetrics{}, errors.Wrapf(domainerrors.ErrMalformedResponse, "comparison.%s missing", side)
	}
	if raw.CarbonEmissionsKg == nil {
		return entity.RouteMetrics{}, errors.Wrapf(domainerrors.ErrMalformedResponse, "comparison.%s.carbon_emissions_kg missing", side)
	}

	metrics := entity.RouteMetrics{
		DistanceKm:      valueOrZero(raw.DistanceKm),
		DurationMinutes: valueOrZero(raw.DurationMinutes),
		EmissionsKg:     *raw.CarbonEmissionsKg,
	}

	if metrics.DistanceKm < 0 || metrics.DurationMinutes < 0 || metrics.EmissionsKg < 0 {
		return entity.RouteMetrics{}, errors.Wrapf(domainerrors.ErrMalformedResponse, "comparison.%s has negative metrics", side)
	}

	return metrics, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	out := *s

	return &out
}
