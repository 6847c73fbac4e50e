package geolink

import (
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"strings"
)

// Host substrings that mark a link as coming from the map-sharing service.
var DefaultHosts = []string{
	"google.com/maps",
	"maps.google.com",
	"maps.app.goo.gl",
	"goo.gl/maps",
}

const (
	msgEmpty       = "Paste the Google Maps share link of your station's location."
	msgNotMapLink  = "This is not a Google Maps link."
	msgNoCoords    = "The link has no coordinates. Open the location in Google Maps and copy the full link from the address bar."
	msgOutOfRegion = "Coordinates %.6f, %.6f are outside the service region. Check that the pin is on your station."
	msgFound       = "Location found: %.6f, %.6f"
)

// Validator judges whether a link is an acceptable station location.
// It holds only immutable configuration and is safe for concurrent use.
type Validator struct {
	region domain.BoundingBox
	hosts  []string
}

// NewValidator builds a validator for the given operating region. A hosts
// list with no usable entries falls back to DefaultHosts.
func NewValidator(region domain.BoundingBox, hosts []string) *Validator {
	hs := normalizeHosts(hosts)
	if len(hs) == 0 {
		hs = normalizeHosts(DefaultHosts)
	}

	return &Validator{region: region, hosts: hs}
}

func (v *Validator) Region() domain.BoundingBox { return v.region }

// Evaluate maps every input to exactly one Feedback. Stages run in order and
// the first that applies wins: blank, unknown host, no coordinates,
// out of region, success.
func (v *Validator) Evaluate(link string) Feedback {
	link = strings.TrimSpace(link)
	if link == "" {
		return Feedback{Category: CategoryInfo, Message: msgEmpty}
	}

	if !v.isMapLink(link) {
		return Feedback{Category: CategoryError, Message: msgNotMapLink}
	}

	c, ok := ParseCoordinates(link)
	if !ok {
		return Feedback{Category: CategoryWarning, Message: msgNoCoords}
	}

	if !v.region.Contains(c) {
		return Feedback{
			Category:    CategoryWarning,
			Message:     fmt.Sprintf(msgOutOfRegion, c.Lat, c.Lng),
			Coordinates: &c,
		}
	}

	return Feedback{
		Valid:       true,
		Category:    CategorySuccess,
		Message:     fmt.Sprintf(msgFound, c.Lat, c.Lng),
		Coordinates: &c,
	}
}

// IsAcceptable is Evaluate(link).Valid, for form-level gating.
func (v *Validator) IsAcceptable(link string) bool {
	return v.Evaluate(link).Valid
}

func (v *Validator) isMapLink(link string) bool {
	lower := strings.ToLower(link)
	for _, h := range v.hosts {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func normalizeHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
