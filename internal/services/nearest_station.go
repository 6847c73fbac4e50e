package services

import (
	"context"
	"fmt"
	"math"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/geo"
	"rapidaid-dashboard-service/internal/ports"
)

// NearestStation picks the station closest to loc by great-circle distance.
//
// Ties go to the lexicographically smaller id so the choice is
// deterministic whatever order the repository returns.
func NearestStation(loc domain.Coordinates, stations []*domain.Station) (*domain.Station, float64, error) {
	if !loc.Valid() {
		return nil, 0, fmt.Errorf("nearest station: %w: %v", domain.ErrInvalidLocation, loc)
	}

	var best *domain.Station
	minKm := math.Inf(1)

	for _, s := range stations {
		if s == nil {
			continue
		}
		km := geo.DistanceKm(loc, s.Location)
		if km < minKm || (km == minKm && best != nil && s.ID < best.ID) {
			minKm = km
			best = s
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf("nearest station: no stations registered: %w", domain.ErrStationNotFound)
	}
	return best, minKm, nil
}

// FindNearestStation loads every station and returns the one closest to loc.
func FindNearestStation(
	ctx context.Context,
	loc domain.Coordinates,
	repo ports.StationRepository,
) (*domain.Station, float64, error) {
	list, err := repo.ListStations(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("nearest station: %w", err)
	}
	return NearestStation(loc, list)
}
