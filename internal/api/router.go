package api

import (
	"net/http"
	"rapidaid-dashboard-service/internal/api/handlers"
	"rapidaid-dashboard-service/internal/platform/obs"
	"rapidaid-dashboard-service/internal/ports"
	"rapidaid-dashboard-service/internal/services"

	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// metrics may be nil, in which case /metrics is not served.
func NewRouter(
	stations ports.StationRepository,
	alerts ports.AlertRepository,
	links *services.LinkService,
	metrics *obs.Metrics,
) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	router.Use(metricsMiddleware(metrics))

	linkHandler := &handlers.LinkHandler{Links: links}
	stationHandler := &handlers.StationHandler{Repo: stations, Links: links}
	alertHandler := &handlers.AlertHandler{
		Stations: stations,
		Alerts:   alerts,
		Metrics:  metrics,
	}

	router.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	router.HandleFunc("/distance", handlers.Distance).Methods(http.MethodGet)
	router.HandleFunc("/links/evaluate", linkHandler.Evaluate).Methods(http.MethodPost)

	// lookup and nearest are registered before {id} so they are not captured as ids.
	router.HandleFunc("/stations/lookup", stationHandler.Lookup).Methods(http.MethodGet)
	router.HandleFunc("/stations/nearest", stationHandler.Nearest).Methods(http.MethodGet)
	router.HandleFunc("/stations", stationHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/stations", stationHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/stations/{id}", stationHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/stations/{id}/alerts", alertHandler.Feed).Methods(http.MethodGet)

	router.HandleFunc("/alerts", alertHandler.Ingest).Methods(http.MethodPost)
	router.HandleFunc("/alerts/{id}", alertHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/alerts/{id}", alertHandler.UpdateStatus).Methods(http.MethodPut)

	if metrics != nil {
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	return loggingMiddleware(router)
}
