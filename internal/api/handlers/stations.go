package handlers

import (
	"net/http"
	"rapidaid-dashboard-service/internal/api/dto"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/geo"
	"rapidaid-dashboard-service/internal/ports"
	"rapidaid-dashboard-service/internal/services"
	"strings"

	"github.com/gorilla/mux"
)

type StationHandler struct {
	Repo  ports.StationRepository
	Links *services.LinkService
}

func (h *StationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterStationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	st, err := services.RegisterStation(r.Context(), services.RegisterStationRequest{
		Name:     req.StationName,
		Phone:    req.Phone,
		MapsLink: req.GoogleMapsLink,
	}, h.Repo, h.Links)
	if err != nil {
		writeServiceError(w, r, "register station", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, stationResponse(st))
}

func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListStations(r.Context())
	if err != nil {
		writeServiceError(w, r, "list stations", err)
		return
	}

	res := dto.ListStationsResponse{Stations: make([]dto.StationResponse, 0, len(list))}
	for _, s := range list {
		res.Stations = append(res.Stations, stationResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.Repo.GetStation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, "get station", err)
		return
	}

	writeJSON(w, r, http.StatusOK, stationResponse(st))
}

// Lookup finds a station by its registered phone number, the dashboard's
// sign-in step.
func (h *StationHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if phone == "" {
		writeError(w, r, http.StatusBadRequest, "phone is required")
		return
	}

	st, err := services.LookupStationByPhone(r.Context(), phone, h.Repo)
	if err != nil {
		writeServiceError(w, r, "lookup station", err)
		return
	}

	writeJSON(w, r, http.StatusOK, stationResponse(st))
}

// Nearest returns the registered station closest to ?at=lat,lng.
func (h *StationHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	at, err := domain.ParseCoordinates(r.URL.Query().Get("at"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "at must be lat,lng")
		return
	}

	st, km, err := services.FindNearestStation(r.Context(), at, h.Repo)
	if err != nil {
		writeServiceError(w, r, "nearest station", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NearestStationResponse{
		Station:    stationResponse(st),
		DistanceKm: geo.FormatKm(km),
	})
}
