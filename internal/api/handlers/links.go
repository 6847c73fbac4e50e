package handlers

import (
	"net/http"
	"rapidaid-dashboard-service/internal/api/dto"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/geo"
	"rapidaid-dashboard-service/internal/services"
)

// LinkHandler serves live validation of location links as the user types.
type LinkHandler struct {
	Links *services.LinkService
}

func (h *LinkHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fb := h.Links.Evaluate(r.Context(), req.Link)

	res := dto.LinkFeedbackResponse{
		Valid:    fb.Valid,
		Category: string(fb.Category),
		Message:  fb.Message,
	}
	if fb.Coordinates != nil {
		loc := dto.NewLocationDTO(*fb.Coordinates)
		res.Coordinates = &loc
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Distance computes the great-circle distance between two "lat,lng" points.
func Distance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := domain.ParseCoordinates(q.Get("from"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "from must be lat,lng")
		return
	}
	to, err := domain.ParseCoordinates(q.Get("to"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "to must be lat,lng")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:       dto.NewLocationDTO(from),
		To:         dto.NewLocationDTO(to),
		DistanceKm: geo.DistanceKmString(from, to),
	})
}
