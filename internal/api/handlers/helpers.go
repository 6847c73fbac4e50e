package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"rapidaid-dashboard-service/internal/api/dto"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/platform/obs"
	"rapidaid-dashboard-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps service and domain errors onto HTTP statuses.
// Anything unrecognized is logged and returned as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var regErr *services.RegistrationError
	switch {
	case errors.As(err, &regErr):
		writeJSON(w, r, http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: regErr.Fields,
		})
	case errors.Is(err, domain.ErrStationNotFound):
		writeError(w, r, http.StatusNotFound, "station not found")
	case errors.Is(err, domain.ErrAlertNotFound):
		writeError(w, r, http.StatusNotFound, "alert not found")
	case errors.Is(err, domain.ErrDuplicatePhone):
		writeError(w, r, http.StatusConflict, "a station is already registered with this phone number")
	case errors.Is(err, domain.ErrDuplicateAlert):
		writeError(w, r, http.StatusConflict, "an alert with this id already exists")
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, r, http.StatusBadRequest, "status must be one of pending, acknowledged, resolved")
	case errors.Is(err, domain.ErrInvalidLocation):
		writeError(w, r, http.StatusBadRequest, "location must be a valid latitude and longitude")
	default:
		log.Printf("%s failed: req_id=%s err=%v", op, obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}
