package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"strconv"
	"strings"
)

type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewLocationDTO(c domain.Coordinates) LocationDTO {
	return LocationDTO{Lat: c.Lat, Lng: c.Lng}
}

func (l LocationDTO) Coordinates() domain.Coordinates {
	return domain.Coordinates{Lat: l.Lat, Lng: l.Lng}
}

// FlexFloat accepts a JSON number or a numeric string. Push payloads carry
// every data field as a string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}
