package ports

import (
	"context"
	"rapidaid-dashboard-service/internal/domain"
)

// Port: a boundary for storing and retrieving registered stations.
type StationRepository interface {
	// Persist a new station. Returns domain.ErrDuplicatePhone when the phone is taken.
	CreateStation(ctx context.Context, s *domain.Station) error
	// Return domain.ErrStationNotFound when no station has the id.
	GetStation(ctx context.Context, id string) (*domain.Station, error)
	// Return domain.ErrStationNotFound when no station has the phone.
	FindStationByPhone(ctx context.Context, phone string) (*domain.Station, error)
	ListStations(ctx context.Context) ([]*domain.Station, error)
}
