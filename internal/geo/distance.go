package geo

import (
	"math"
	"rapidaid-dashboard-service/internal/domain"
	"strconv"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between a and b using the
// haversine formula. The result keeps full float64 precision; use FormatKm
// for display.
func DistanceKm(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	// Rounding can push h a hair past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatKm renders a distance with two fractional digits, e.g. "12.34".
func FormatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 2, 64)
}

// DistanceKmString is the display form of DistanceKm.
func DistanceKmString(a, b domain.Coordinates) string {
	return FormatKm(DistanceKm(a, b))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
