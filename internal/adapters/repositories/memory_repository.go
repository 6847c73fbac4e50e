package repositories

import (
	"context"
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"sort"
	"sync"
)

// MemoryRepository implements both the station and alert ports in process
// memory. It backs STORE=memory runs and handler tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	stations map[string]domain.Station
	alerts   map[string]domain.Alert
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		stations: make(map[string]domain.Station),
		alerts:   make(map[string]domain.Alert),
	}
}

func (m *MemoryRepository) CreateStation(ctx context.Context, s *domain.Station) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stations[s.ID]; ok {
		return fmt.Errorf("create station: id %q already exists", s.ID)
	}
	for _, existing := range m.stations {
		if existing.Phone == s.Phone {
			return fmt.Errorf("create station phone=%q: %w", s.Phone, domain.ErrDuplicatePhone)
		}
	}

	m.stations[s.ID] = *s
	return nil
}

func (m *MemoryRepository) GetStation(ctx context.Context, id string) (*domain.Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.stations[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	return &s, nil
}

func (m *MemoryRepository) FindStationByPhone(ctx context.Context, phone string) (*domain.Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.stations {
		if s.Phone == phone {
			return &s, nil
		}
	}
	return nil, domain.ErrStationNotFound
}

func (m *MemoryRepository) ListStations(ctx context.Context) ([]*domain.Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Station, 0, len(m.stations))
	for _, s := range m.stations {
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) CreateAlert(ctx context.Context, a *domain.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stations[a.StationID]; !ok {
		return fmt.Errorf("create alert: station %q: %w", a.StationID, domain.ErrStationNotFound)
	}
	if _, ok := m.alerts[a.ID]; ok {
		return fmt.Errorf("create alert id=%q: %w", a.ID, domain.ErrDuplicateAlert)
	}

	m.alerts[a.ID] = *a
	return nil
}

func (m *MemoryRepository) GetAlert(ctx context.Context, id string) (*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.alerts[id]
	if !ok {
		return nil, domain.ErrAlertNotFound
	}
	return &a, nil
}

func (m *MemoryRepository) ListStationAlerts(ctx context.Context, stationID string) ([]*domain.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Alert, 0)
	for _, a := range m.alerts {
		if a.StationID == stationID {
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) UpdateAlertStatus(ctx context.Context, id string, status domain.AlertStatus) (*domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.alerts[id]
	if !ok {
		return nil, domain.ErrAlertNotFound
	}
	a.Status = status
	m.alerts[id] = a
	return &a, nil
}
