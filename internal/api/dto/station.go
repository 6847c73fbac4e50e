package dto

import "time"

type RegisterStationRequest struct {
	StationName    string `json:"station_name"`
	Phone          string `json:"phone"`
	GoogleMapsLink string `json:"google_maps_link"`
}

type StationResponse struct {
	ID             string      `json:"id"`
	StationName    string      `json:"station_name"`
	Phone          string      `json:"phone"`
	PhoneDisplay   string      `json:"phone_display"`
	GoogleMapsLink string      `json:"google_maps_link"`
	Location       LocationDTO `json:"location"`
	CreatedAt      time.Time   `json:"created_at"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type NearestStationResponse struct {
	Station    StationResponse `json:"station"`
	DistanceKm string          `json:"distance_km"`
}
