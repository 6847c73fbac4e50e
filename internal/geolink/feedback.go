package geolink

import "rapidaid-dashboard-service/internal/domain"

// Category is the severity of a Feedback, mapped by the dashboard onto
// the colour of the hint under the input field.
type Category string

const (
	CategoryInfo    Category = "info"
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryError   Category = "error"
)

// Feedback is the verdict for one link. Coordinates is set whenever the
// extraction succeeded, including the out-of-region warning.
type Feedback struct {
	Valid       bool
	Category    Category
	Message     string
	Coordinates *domain.Coordinates
}
