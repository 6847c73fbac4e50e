package ports

import (
	"context"
	"rapidaid-dashboard-service/internal/domain"
)

// Port: a boundary for alerts routed to stations.
type AlertRepository interface {
	CreateAlert(ctx context.Context, a *domain.Alert) error
	// Return domain.ErrAlertNotFound when no alert has the id.
	GetAlert(ctx context.Context, id string) (*domain.Alert, error)
	// Return the station's alerts, newest first.
	ListStationAlerts(ctx context.Context, stationID string) ([]*domain.Alert, error)
	// Set the status and return the updated alert.
	UpdateAlertStatus(ctx context.Context, id string, status domain.AlertStatus) (*domain.Alert, error)
}
