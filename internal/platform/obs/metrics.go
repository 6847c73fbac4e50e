package obs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	HTTPRequests   *prometheus.CounterVec
	HTTPDurations  *prometheus.HistogramVec
	LinkVerdicts   *prometheus.CounterVec
	LinkCache      *prometheus.CounterVec
	AlertsIngested prometheus.Counter
}

// NewMetrics registers the collectors against reg, defaulting to the global
// registry when nil. Registering twice against the same registry reuses the
// existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"}))
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"route", "method"}))
	if err != nil {
		return nil, err
	}

	verdicts, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "location_link_verdicts_total",
		Help: "Location link evaluations by feedback category.",
	}, []string{"category"}))
	if err != nil {
		return nil, err
	}

	cache, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "location_link_cache_lookups_total",
		Help: "Link cache lookups by result (hit, miss, error).",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	ingested, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alerts_ingested_total",
		Help: "Alerts accepted for delivery to a station.",
	}))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:       gatherer,
		HTTPRequests:   requests,
		HTTPDurations:  durations,
		LinkVerdicts:   verdicts,
		LinkCache:      cache,
		AlertsIngested: ingested,
	}, nil
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request. Nil-safe.
func (m *Metrics) ObserveRequest(route, method string, code int, dur time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPDurations.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveVerdict counts one link evaluation. Nil-safe.
func (m *Metrics) ObserveVerdict(category string) {
	if m == nil {
		return
	}
	m.LinkVerdicts.WithLabelValues(category).Inc()
}

// ObserveCache counts one link cache lookup. Nil-safe.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.LinkCache.WithLabelValues(result).Inc()
}

// ObserveIngest counts one accepted alert. Nil-safe.
func (m *Metrics) ObserveIngest() {
	if m == nil {
		return
	}
	m.AlertsIngested.Inc()
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register metrics: %w", err)
	}
	return c, nil
}
