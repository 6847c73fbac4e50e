package domain

import (
	"fmt"
	"strings"
	"time"
)

type AlertStatus string

const (
	AlertPending      AlertStatus = "pending"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// Parse a status string received over the wire.
func ParseAlertStatus(s string) (AlertStatus, error) {
	switch st := AlertStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case AlertPending, AlertAcknowledged, AlertResolved:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Represents an emergency alert routed to a single station.
// The location is always the canonical Coordinates; wire shapes are
// normalized before an Alert is constructed.
type Alert struct {
	ID        string
	StationID string
	Type      string
	Location  Coordinates
	Status    AlertStatus
	UserID    string
	UserPhone string
	CreatedAt time.Time
}

// Unread reports whether the alert still awaits acknowledgement.
func (a *Alert) Unread() bool { return a.Status == AlertPending }
