package dto

import (
	"errors"
	"rapidaid-dashboard-service/internal/domain"
	"time"
)

var ErrMissingLocation = errors.New("location is required: send location{lat,lng} or lat and lng")

// IngestAlertRequest accepts both wire shapes that relays send: a nested
// location object or flat lat/lng fields. The nested form wins when both
// are present.
type IngestAlertRequest struct {
	ID        string       `json:"id"`
	StationID string       `json:"station_id"`
	Type      string       `json:"type"`
	Location  *LocationDTO `json:"location"`
	Lat       *FlexFloat   `json:"lat"`
	Lng       *FlexFloat   `json:"lng"`
	UserID    string       `json:"user_id"`
	UserPhone string       `json:"user_phone"`
	CreatedAt *time.Time   `json:"created_at"`
}

// Coordinates returns the canonical location of the alert.
func (r IngestAlertRequest) Coordinates() (domain.Coordinates, error) {
	if r.Location != nil {
		return r.Location.Coordinates(), nil
	}
	if r.Lat == nil || r.Lng == nil {
		return domain.Coordinates{}, ErrMissingLocation
	}
	return domain.Coordinates{Lat: float64(*r.Lat), Lng: float64(*r.Lng)}, nil
}

type UpdateAlertStatusRequest struct {
	Status string `json:"status"`
}

type AlertResponse struct {
	ID            string      `json:"id"`
	StationID     string      `json:"station_id"`
	Type          string      `json:"type"`
	Location      LocationDTO `json:"location"`
	Status        string      `json:"status"`
	UserID        string      `json:"user_id,omitempty"`
	UserPhone     string      `json:"user_phone,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	Age           string      `json:"age"`
	DistanceKm    string      `json:"distance_km,omitempty"`
	DirectionsURL string      `json:"directions_url,omitempty"`
}

type StationFeedResponse struct {
	Station     StationResponse `json:"station"`
	Alerts      []AlertResponse `json:"alerts"`
	UnreadCount int             `json:"unread_count"`
}
