package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"rapidaid-dashboard-service/internal/adapters/repositories"
	"rapidaid-dashboard-service/internal/api/dto"
	"rapidaid-dashboard-service/internal/domain"
	"rapidaid-dashboard-service/internal/geolink"
	"rapidaid-dashboard-service/internal/platform/obs"
	"rapidaid-dashboard-service/internal/services"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fortLink = "https://www.google.com/maps/place/Fort+Police/@6.9271,79.8612,17z"

type testServer struct {
	handler http.Handler
	repo    *repositories.MemoryRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	metrics, err := obs.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	repo := repositories.NewMemoryRepository()
	links := services.NewLinkService(geolink.NewValidator(domain.DefaultBoundingBox, nil), nil, nil, metrics)

	return &testServer{
		handler: NewRouter(repo, repo, links, metrics),
		repo:    repo,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) registerFort(t *testing.T) dto.StationResponse {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/stations", dto.RegisterStationRequest{
		StationName:    "Fort Police",
		Phone:          "011 242 1111",
		GoogleMapsLink: fortLink,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.StationResponse](t, rec)
}

func TestHealthSetsRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/nope", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodDelete, "/health", nil).Code)
}

func TestEvaluateLink(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/links/evaluate", dto.EvaluateLinkRequest{Link: fortLink})
	require.Equal(t, http.StatusOK, rec.Code)
	fb := decode[dto.LinkFeedbackResponse](t, rec)
	assert.True(t, fb.Valid)
	assert.Equal(t, "success", fb.Category)
	require.NotNil(t, fb.Coordinates)
	assert.InDelta(t, 6.9271, fb.Coordinates.Lat, 1e-9)

	rec = s.do(t, http.MethodPost, "/links/evaluate", dto.EvaluateLinkRequest{Link: "https://example.com"})
	fb = decode[dto.LinkFeedbackResponse](t, rec)
	assert.Equal(t, "error", fb.Category)
	assert.Nil(t, fb.Coordinates)

	rec = s.do(t, http.MethodPost, "/links/evaluate", `{"link":"x","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDistance(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/distance?from=6.9271,79.8612&to=7.2906,80.6337", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "94.34", decode[dto.DistanceResponse](t, rec).DistanceKm)

	rec = s.do(t, http.MethodGet, "/distance?from=6.9271,79.8612", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStationRegistrationAndLookup(t *testing.T) {
	s := newTestServer(t)
	st := s.registerFort(t)

	assert.Equal(t, "0112421111", st.Phone)
	assert.Equal(t, "011 242 1111", st.PhoneDisplay)
	assert.InDelta(t, 79.8612, st.Location.Lng, 1e-9)

	rec := s.do(t, http.MethodGet, "/stations/"+st.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, st.ID, decode[dto.StationResponse](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/stations/lookup?phone=011-242-1111", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, st.ID, decode[dto.StationResponse](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/stations/lookup?phone=0777777777", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/stations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.ListStationsResponse](t, rec).Stations, 1)

	rec = s.do(t, http.MethodPost, "/stations", dto.RegisterStationRequest{
		StationName:    "Another",
		Phone:          "0112421111",
		GoogleMapsLink: fortLink,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/stations/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/stations/nearest?at=7.2906,80.6337", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nearest := decode[dto.NearestStationResponse](t, rec)
	assert.Equal(t, st.ID, nearest.Station.ID)
	assert.Equal(t, "94.34", nearest.DistanceKm)

	rec = s.do(t, http.MethodGet, "/stations/nearest?at=north", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStationRegistrationValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/stations", dto.RegisterStationRequest{
		Phone:          "12",
		GoogleMapsLink: "https://www.google.com/maps/place/Fort",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	res := decode[dto.ValidationErrorResponse](t, rec)
	assert.Equal(t, "validation failed", res.Error)
	assert.Contains(t, res.Fields, "station_name")
	assert.Contains(t, res.Fields, "phone")
	assert.Contains(t, res.Fields, "google_maps_link")
}

func TestAlertLifecycle(t *testing.T) {
	s := newTestServer(t)
	st := s.registerFort(t)

	// Flat push-payload shape with string coordinates.
	rec := s.do(t, http.MethodPost, "/alerts", map[string]any{
		"id":         "alert-kandy",
		"station_id": st.ID,
		"lat":        "7.2906",
		"lng":        "80.6337",
		"user_phone": "0771234567",
		"created_at": "2026-01-01T08:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.AlertResponse](t, rec)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "police", created.Type)

	// Nested location shape.
	rec = s.do(t, http.MethodPost, "/alerts", map[string]any{
		"id":         "alert-near",
		"station_id": st.ID,
		"location":   map[string]float64{"lat": 6.9271, "lng": 79.8612},
		"created_at": "2026-01-01T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/stations/"+st.ID+"/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[dto.StationFeedResponse](t, rec)
	assert.Equal(t, 2, feed.UnreadCount)
	require.Len(t, feed.Alerts, 2)
	assert.Equal(t, "alert-near", feed.Alerts[0].ID)
	assert.Equal(t, "0.00", feed.Alerts[0].DistanceKm)
	assert.Equal(t, "94.34", feed.Alerts[1].DistanceKm)
	assert.Contains(t, feed.Alerts[1].DirectionsURL, "travelmode=driving")

	rec = s.do(t, http.MethodPut, "/alerts/alert-kandy", dto.UpdateAlertStatusRequest{Status: "acknowledged"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acknowledged", decode[dto.AlertResponse](t, rec).Status)

	rec = s.do(t, http.MethodGet, "/alerts/alert-kandy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[dto.AlertResponse](t, rec)
	assert.Equal(t, "acknowledged", detail.Status)
	assert.Equal(t, "94.34", detail.DistanceKm)

	rec = s.do(t, http.MethodGet, "/stations/"+st.ID+"/alerts", nil)
	assert.Equal(t, 1, decode[dto.StationFeedResponse](t, rec).UnreadCount)
}

func TestIngestDuplicateAlertIDConflicts(t *testing.T) {
	s := newTestServer(t)
	st := s.registerFort(t)

	body := map[string]any{"id": "push-1", "station_id": st.ID, "lat": "7.2906", "lng": "80.6337"}

	rec := s.do(t, http.MethodPost, "/alerts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/alerts", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"an alert with this id already exists"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/stations/"+st.ID+"/alerts", nil)
	assert.Len(t, decode[dto.StationFeedResponse](t, rec).Alerts, 1)
}

func TestAlertErrors(t *testing.T) {
	s := newTestServer(t)
	st := s.registerFort(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing location", http.MethodPost, "/alerts", map[string]any{"station_id": st.ID}, http.StatusBadRequest},
		{"bad latitude", http.MethodPost, "/alerts", map[string]any{"station_id": st.ID, "lat": 123, "lng": 80}, http.StatusBadRequest},
		{"unparsable lat", http.MethodPost, "/alerts", `{"station_id":"x","lat":"north","lng":"80"}`, http.StatusBadRequest},
		{"unknown station", http.MethodPost, "/alerts", map[string]any{"station_id": "nope", "lat": 7, "lng": 80}, http.StatusNotFound},
		{"unknown alert", http.MethodGet, "/alerts/nope", nil, http.StatusNotFound},
		{"bad status", http.MethodPut, "/alerts/nope", dto.UpdateAlertStatusRequest{Status: "closed"}, http.StatusBadRequest},
		{"update unknown alert", http.MethodPut, "/alerts/nope", dto.UpdateAlertStatusRequest{Status: "resolved"}, http.StatusNotFound},
		{"feed unknown station", http.MethodGet, "/stations/nope/alerts", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestMetricsUseRouteTemplates(t *testing.T) {
	s := newTestServer(t)

	s.do(t, http.MethodGet, "/stations/abc", nil)
	s.do(t, http.MethodPost, "/links/evaluate", dto.EvaluateLinkRequest{Link: ""})

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `route="/stations/{id}"`)
	assert.NotContains(t, body, `route="/stations/abc"`)
	assert.Contains(t, body, `location_link_verdicts_total{category="info"} 1`)
}

func TestIngestWithoutStationRoutesToNearest(t *testing.T) {
	s := newTestServer(t)
	st := s.registerFort(t)

	rec := s.do(t, http.MethodPost, "/alerts", map[string]any{"lat": 6.93, "lng": 79.86})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, st.ID, decode[dto.AlertResponse](t, rec).StationID)
}
