package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/ports"
	"strings"
)

type stationSeed struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	MapsLink string `json:"maps_link"`
}

// LoadStationSeeds reads station seed entries from a JSON file. Links are
// not evaluated here; SeedStations registers each entry through the normal
// registration path.
func LoadStationSeeds(jsonPath string) ([]RegisterStationRequest, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load station seeds: read %q: %w", jsonPath, err)
	}

	var data []stationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load station seeds: parse json: %w", err)
	}

	out := make([]RegisterStationRequest, 0, len(data))
	for i, item := range data {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("load station seeds: item at index %d: name cannot be empty", i+1)
		}
		if strings.TrimSpace(item.MapsLink) == "" {
			return nil, fmt.Errorf("load station seeds: item at index %d: maps_link cannot be empty", i+1)
		}
		out = append(out, RegisterStationRequest{
			Name:     item.Name,
			Phone:    item.Phone,
			MapsLink: item.MapsLink,
		})
	}

	return out, nil
}

// SeedStations registers each seed through the normal registration path.
// Seeds whose phone is already registered are skipped, so seeding twice is
// harmless. It returns how many stations were created.
func SeedStations(
	ctx context.Context,
	seeds []RegisterStationRequest,
	repo ports.StationRepository,
	links *LinkService,
) (int, error) {
	created := 0
	for i, seed := range seeds {
		_, err := RegisterStation(ctx, seed, repo, links)

		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicatePhone):
			log.Printf("seed station skipped: name=%q phone=%q already registered", seed.Name, seed.Phone)
		default:
			return created, fmt.Errorf("seed stations: item %d (%s): %w", i+1, seed.Name, err)
		}
	}

	return created, nil
}
