package handlers

import (
	"rapidaid-dashboard-service/internal/api/dto"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/services"
	"time"
)

func stationResponse(s *domain.Station) dto.StationResponse {
	return dto.StationResponse{
		ID:             s.ID,
		StationName:    s.Name,
		Phone:          s.Phone,
		PhoneDisplay:   services.FormatPhone(s.Phone),
		GoogleMapsLink: s.MapsLink,
		Location:       dto.NewLocationDTO(s.Location),
		CreatedAt:      s.CreatedAt,
	}
}

func alertResponse(a *domain.Alert, now time.Time) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        a.ID,
		StationID: a.StationID,
		Type:      a.Type,
		Location:  dto.NewLocationDTO(a.Location),
		Status:    string(a.Status),
		UserID:    a.UserID,
		UserPhone: a.UserPhone,
		CreatedAt: a.CreatedAt,
		Age:       services.FormatAge(a.CreatedAt, now),
	}
}

func feedItemResponse(item services.FeedItem, now time.Time) dto.AlertResponse {
	res := alertResponse(item.Alert, now)
	res.DistanceKm = item.Distance
	res.DirectionsURL = item.DirectionsURL
	return res
}
