package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	pricingCascadeRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_cascade_records_total",
			Help: "Artwork pricing records rewritten by global adjustments",
		},
	)

	pricingCascadeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricing_cascade_duration_seconds",
			Help:    "Duration of global adjustment cascades",
			Buckets: prometheus.DefBuckets,
		},
	)

	pricingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_operations_total",
			Help: "Pricing operations by kind and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// Middleware records request metrics labelled by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func ObserveCascade(records int, took time.Duration) {
	pricingCascadeRecords.Add(float64(records))
	pricingCascadeDuration.Observe(took.Seconds())
}

func CountPricingOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	pricingOperations.WithLabelValues(operation, outcome).Inc()
}
