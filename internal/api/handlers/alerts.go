package handlers

import (
	"net/http"
	"rapidaid-dashboard-service/internal/api/dto"
	"rapidaid-dashboard-service/internal/platform/obs"
	"rapidaid-dashboard-service/internal/ports"
	"rapidaid-dashboard-service/internal/services"
	"time"

	"github.com/gorilla/mux"
)

type AlertHandler struct {
	Stations ports.StationRepository
	Alerts   ports.AlertRepository
	Metrics  *obs.Metrics

	// Now is used for relative ages; nil means time.Now.
	Now func() time.Time
}

func (h *AlertHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Ingest stores an alert relayed from the notification channel.
func (h *AlertHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestAlertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loc, err := req.Coordinates()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.IngestAlertRequest{
		ID:        req.ID,
		StationID: req.StationID,
		Type:      req.Type,
		Location:  loc,
		UserID:    req.UserID,
		UserPhone: req.UserPhone,
	}
	if req.CreatedAt != nil {
		svcReq.CreatedAt = *req.CreatedAt
	}

	a, err := services.IngestAlert(r.Context(), svcReq, h.Stations, h.Alerts)
	if err != nil {
		writeServiceError(w, r, "ingest alert", err)
		return
	}
	h.Metrics.ObserveIngest()

	writeJSON(w, r, http.StatusCreated, alertResponse(a, h.now()))
}

// Feed lists a station's alerts, newest first, with distances and the
// pending count.
func (h *AlertHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := services.LoadStationFeed(r.Context(), mux.Vars(r)["id"], h.Stations, h.Alerts)
	if err != nil {
		writeServiceError(w, r, "load station feed", err)
		return
	}

	now := h.now()
	res := dto.StationFeedResponse{
		Station:     stationResponse(feed.Station),
		Alerts:      make([]dto.AlertResponse, 0, len(feed.Items)),
		UnreadCount: feed.UnreadCount,
	}
	for _, item := range feed.Items {
		res.Alerts = append(res.Alerts, feedItemResponse(item, now))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := services.LoadAlertDetail(r.Context(), mux.Vars(r)["id"], h.Stations, h.Alerts)
	if err != nil {
		writeServiceError(w, r, "get alert", err)
		return
	}

	writeJSON(w, r, http.StatusOK, feedItemResponse(*item, h.now()))
}

func (h *AlertHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAlertStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := services.UpdateAlertStatus(r.Context(), mux.Vars(r)["id"], req.Status, h.Alerts)
	if err != nil {
		writeServiceError(w, r, "update alert status", err)
		return
	}

	writeJSON(w, r, http.StatusOK, alertResponse(a, h.now()))
}
