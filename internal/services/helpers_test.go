package services

import (
	"context"
	"errors"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/geolink"
	"sync"
)

// fakeResolver expands links from a fixed table and counts calls.
type fakeResolver struct {
	mu    sync.Mutex
	table map[string]string
	calls int
}

func (f *fakeResolver) Resolve(ctx context.Context, link string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if v, ok := f.table[link]; ok {
		return v, nil
	}
	return "", errors.New("unresolvable")
}

func newTestValidator() *geolink.Validator {
	return geolink.NewValidator(domain.DefaultBoundingBox, nil)
}
