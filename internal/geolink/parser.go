package geolink

import (
	"rapidaid-dashboard-service/internal/domain"
	"strconv"
)

// Match is a successful extraction together with the extractor that produced it.
type Match struct {
	Extractor   string
	Coordinates domain.Coordinates
}

// Parse extracts a coordinate pair from a location-sharing link.
//
// The first extractor in precedence order that matches decides the result.
// A match whose numbers cannot be converted, or that lies outside the
// WGS84 range, is a miss. Misses are expected input and never errors.
func Parse(link string) (Match, bool) {
	if link == "" {
		return Match{}, false
	}

	for _, e := range extractors {
		latStr, lngStr, ok := e.match(link)
		if !ok {
			continue
		}

		c, ok := convert(latStr, lngStr)
		if !ok {
			return Match{}, false
		}
		return Match{Extractor: e.Name, Coordinates: c}, true
	}

	return Match{}, false
}

// ParseCoordinates is Parse without the extractor name.
func ParseCoordinates(link string) (domain.Coordinates, bool) {
	m, ok := Parse(link)
	if !ok {
		return domain.Coordinates{}, false
	}
	return m.Coordinates, true
}

func convert(latStr, lngStr string) (domain.Coordinates, bool) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return domain.Coordinates{}, false
	}

	c := domain.Coordinates{Lat: lat, Lng: lng}
	if !c.Valid() {
		return domain.Coordinates{}, false
	}
	return c, true
}
