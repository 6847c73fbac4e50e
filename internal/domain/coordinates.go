package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Valid reports whether both values are finite and within the WGS84 range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// String renders the pair as "lat,lng" with six fractional digits,
// the precision the dashboard displays.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// ParseCoordinates parses a plain "lat,lng" pair such as a query value.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("parse coordinates: want \"lat,lng\", got %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse coordinates: longitude %q: %w", parts[1], err)
	}

	c := Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("parse coordinates: %q out of range", s)
	}
	return c, nil
}

// BoundingBox is the rectangular latitude/longitude range of a deployment's
// operating region. Bounds are inclusive.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Approximate extent of Sri Lanka, the region the dashboard was first deployed for.
var DefaultBoundingBox = BoundingBox{MinLat: 5.8, MaxLat: 10.0, MinLng: 79.4, MaxLng: 82.0}

// Contains reports whether c lies inside the box.
func (b BoundingBox) Contains(c Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.MinLat, b.MaxLat, b.MinLng, b.MaxLng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bounding box: non-finite bound in %+v", b)
		}
	}
	if b.MinLat > b.MaxLat {
		return fmt.Errorf("bounding box: min latitude %v exceeds max %v", b.MinLat, b.MaxLat)
	}
	if b.MinLng > b.MaxLng {
		return fmt.Errorf("bounding box: min longitude %v exceeds max %v", b.MinLng, b.MaxLng)
	}
	if b.MinLat < -90 || b.MaxLat > 90 || b.MinLng < -180 || b.MaxLng > 180 {
		return fmt.Errorf("bounding box: %+v exceeds the valid coordinate range", b)
	}
	return nil
}

// ParseBoundingBox reads "minLat,maxLat,minLng,maxLng".
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("parse bounding box: want 4 comma-separated values, got %d", len(parts))
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("parse bounding box: value #%d %q: %w", i+1, p, err)
		}
		vals[i] = v
	}

	b := BoundingBox{MinLat: vals[0], MaxLat: vals[1], MinLng: vals[2], MaxLng: vals[3]}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, fmt.Errorf("parse bounding box: %w", err)
	}
	return b, nil
}
