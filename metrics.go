package nexusweb

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "nexusweb"

// Metrics holds the site's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	contentFailures *prometheus.CounterVec
	inquiriesTotal  prometheus.Counter
}

// NewMetrics registers the site collectors plus the Go and process
// collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by method, route, and status code",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		contentFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "content",
				Name:      "load_failures_total",
				Help:      "Content directory or file reads that degraded to an empty result",
			},
			[]string{"kind"},
		),
		inquiriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "inquiries_total",
				Help:      "Contact inquiries stored",
			},
		),
	}
	m.Registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.contentFailures,
		m.inquiriesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request counts and latency labelled by route pattern.
// The /metrics endpoint itself is not recorded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" || (status == http.StatusNotFound && route == c.Request().URL.Path) {
				route = "unmatched"
			}
			method := c.Request().Method
			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ContentFailure counts a degraded content read of the given kind.
func (m *Metrics) ContentFailure(kind string) {
	m.contentFailures.WithLabelValues(kind).Inc()
}

// InquiryStored counts a stored contact inquiry.
func (m *Metrics) InquiryStored() {
	m.inquiriesTotal.Inc()
}
