package services

import (
	"context"
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/ports"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterStationRequest struct {
	Name     string
	Phone    string
	MapsLink string
}

// RegistrationError carries one message per rejected form field.
type RegistrationError struct {
	Fields map[string]string
}

func (e *RegistrationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "register station: " + strings.Join(parts, "; ")
}

// RegisterStation validates the registration form and stores the station
// with the coordinates taken from its maps link. Form problems are reported
// together as a *RegistrationError.
func RegisterStation(
	ctx context.Context,
	req RegisterStationRequest,
	repo ports.StationRepository,
	links *LinkService,
) (*domain.Station, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		fields["station_name"] = "Station name is required"
	}

	phone := NormalizePhone(req.Phone)
	if !ValidatePhone(phone) {
		fields["phone"] = "Please enter a valid phone number"
	}

	fb := links.Evaluate(ctx, req.MapsLink)
	if !fb.Valid {
		fields["google_maps_link"] = fb.Message
	}

	if len(fields) > 0 {
		return nil, &RegistrationError{Fields: fields}
	}

	station := &domain.Station{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		MapsLink:  strings.TrimSpace(req.MapsLink),
		Location:  *fb.Coordinates,
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.CreateStation(ctx, station); err != nil {
		return nil, fmt.Errorf("register station: %w", err)
	}

	return station, nil
}

// LookupStationByPhone finds the station registered under phone, however
// the number is formatted.
func LookupStationByPhone(ctx context.Context, phone string, repo ports.StationRepository) (*domain.Station, error) {
	normalized := NormalizePhone(phone)
	if !ValidatePhone(normalized) {
		return nil, &RegistrationError{Fields: map[string]string{"phone": "Please enter a valid phone number"}}
	}

	st, err := repo.FindStationByPhone(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("lookup station: %w", err)
	}
	return st, nil
}
