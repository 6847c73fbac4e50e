package geo

import (
	"net/url"
	"rapidaid-dashboard-service/internal/domain"
)

const directionsBaseURL = "https://www.google.com/maps/dir/"

// DirectionsURL builds a driving-directions link from a station to an alert.
func DirectionsURL(from, to domain.Coordinates) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", from.String())
	q.Set("destination", to.String())
	q.Set("travelmode", "driving")
	return directionsBaseURL + "?" + q.Encode()
}
