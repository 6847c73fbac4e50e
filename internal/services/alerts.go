package services

import (
	"context"
	"fmt"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/geo"
	"rapidaid-dashboard-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultAlertType = "police"

// IngestAlertRequest is an alert relayed from the notification channel,
// already normalized to canonical coordinates by the API layer.
type IngestAlertRequest struct {
	ID        string
	StationID string
	Type      string
	Location  domain.Coordinates
	UserID    string
	UserPhone string
	CreatedAt time.Time
}

// IngestAlert stores a new pending alert for a registered station. An alert
// without a station id is routed to the nearest registered station.
// Missing ids, types and timestamps are filled in.
func IngestAlert(
	ctx context.Context,
	req IngestAlertRequest,
	stations ports.StationRepository,
	alerts ports.AlertRepository,
) (*domain.Alert, error) {
	if !req.Location.Valid() {
		return nil, fmt.Errorf("ingest alert: %w: %v", domain.ErrInvalidLocation, req.Location)
	}

	stationID := strings.TrimSpace(req.StationID)
	if stationID == "" {
		nearest, _, err := FindNearestStation(ctx, req.Location, stations)
		if err != nil {
			return nil, fmt.Errorf("ingest alert: route to nearest station: %w", err)
		}
		stationID = nearest.ID
	} else if _, err := stations.GetStation(ctx, stationID); err != nil {
		return nil, fmt.Errorf("ingest alert: station %q: %w", stationID, err)
	}

	a := &domain.Alert{
		ID:        strings.TrimSpace(req.ID),
		StationID: stationID,
		Type:      strings.TrimSpace(req.Type),
		Location:  req.Location,
		Status:    domain.AlertPending,
		UserID:    strings.TrimSpace(req.UserID),
		UserPhone: NormalizePhone(req.UserPhone),
		CreatedAt: req.CreatedAt.UTC(),
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Type == "" {
		a.Type = defaultAlertType
	}
	if req.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	if err := alerts.CreateAlert(ctx, a); err != nil {
		return nil, fmt.Errorf("ingest alert: %w", err)
	}

	return a, nil
}

// FeedItem is an alert as the dashboard lists it: with distance from the
// station and a driving-directions link.
type FeedItem struct {
	Alert         *domain.Alert
	DistanceKm    float64
	Distance      string
	DirectionsURL string
}

type StationFeed struct {
	Station     *domain.Station
	Items       []FeedItem
	UnreadCount int
}

func newFeedItem(station *domain.Station, a *domain.Alert) FeedItem {
	km := geo.DistanceKm(station.Location, a.Location)
	return FeedItem{
		Alert:         a,
		DistanceKm:    km,
		Distance:      geo.FormatKm(km),
		DirectionsURL: geo.DirectionsURL(station.Location, a.Location),
	}
}

// LoadStationFeed returns the station's alerts, newest first, with the
// number still pending.
func LoadStationFeed(
	ctx context.Context,
	stationID string,
	stations ports.StationRepository,
	alerts ports.AlertRepository,
) (*StationFeed, error) {
	var (
		station *domain.Station
		list    []*domain.Alert
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		station, err = stations.GetStation(gctx, stationID)
		return err
	})
	g.Go(func() error {
		var err error
		list, err = alerts.ListStationAlerts(gctx, stationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load station feed %q: %w", stationID, err)
	}

	feed := &StationFeed{
		Station: station,
		Items:   make([]FeedItem, 0, len(list)),
	}
	for _, a := range list {
		if a.Unread() {
			feed.UnreadCount++
		}
		feed.Items = append(feed.Items, newFeedItem(station, a))
	}

	return feed, nil
}

// LoadAlertDetail returns one alert with distance from the station it was routed to.
func LoadAlertDetail(
	ctx context.Context,
	alertID string,
	stations ports.StationRepository,
	alerts ports.AlertRepository,
) (*FeedItem, error) {
	a, err := alerts.GetAlert(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("load alert %q: %w", alertID, err)
	}

	station, err := stations.GetStation(ctx, a.StationID)
	if err != nil {
		return nil, fmt.Errorf("load alert %q: station %q: %w", alertID, a.StationID, err)
	}

	item := newFeedItem(station, a)
	return &item, nil
}

func UpdateAlertStatus(
	ctx context.Context,
	alertID string,
	status string,
	alerts ports.AlertRepository,
) (*domain.Alert, error) {
	st, err := domain.ParseAlertStatus(status)
	if err != nil {
		return nil, fmt.Errorf("update alert status: %w", err)
	}

	a, err := alerts.UpdateAlertStatus(ctx, alertID, st)
	if err != nil {
		return nil, fmt.Errorf("update alert status %q: %w", alertID, err)
	}
	return a, nil
}
