package dto

type EvaluateLinkRequest struct {
	Link string `json:"link"`
}

type LinkFeedbackResponse struct {
	Valid       bool         `json:"valid"`
	Category    string       `json:"category"`
	Message     string       `json:"message"`
	Coordinates *LocationDTO `json:"coordinates,omitempty"`
}

type DistanceResponse struct {
	From       LocationDTO `json:"from"`
	To         LocationDTO `json:"to"`
	DistanceKm string      `json:"distance_km"`
}
