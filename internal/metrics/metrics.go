// Package metrics exposes the service's Prometheus collectors and the HTTP
// instrumentation middleware.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedloop_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedloop_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ReportsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedloop_reports_created_total",
		Help: "Reports created, by submission source (dashboard or widget).",
	}, []string{"source"})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedloop_exports_total",
		Help: "CSV exports generated, by template.",
	}, []string{"template"})

	ExportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feedloop_export_duration_seconds",
		Help:    "Time spent fetching and transforming an export.",
		Buckets: prometheus.DefBuckets,
	})

	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedloop_upload_bytes_total",
		Help: "Total bytes accepted through file uploads.",
	})
)

// HTTPMiddleware records request counts and latency. Route templates (not
// raw URLs) keep the label cardinality bounded.
func HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			}
		}
		HTTPRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}
