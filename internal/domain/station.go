package domain

import "time"

// Represents a registered police station.
// Location is the coordinate pair parsed from MapsLink at registration time;
// the link itself is kept so the dashboard can show what was submitted.
type Station struct {
	ID        string
	Name      string
	Phone     string
	MapsLink  string
	Location  Coordinates
	CreatedAt time.Time
}
