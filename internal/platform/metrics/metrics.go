// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequestsTotal counts requests by route template, method and status.
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentiq_http_requests_total",
		Help: "Total HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// httpRequestDuration tracks handler latency.
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mentiq_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	}, []string{"route", "method"})

	// AssessmentsTotal counts scored questionnaires by risk level.
	AssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentiq_assessments_total",
		Help: "Total risk assessments by risk level",
	}, []string{"level"})

	// AssessmentScore is the distribution of clamped scores.
	AssessmentScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mentiq_assessment_score",
		Help:    "Distribution of risk assessment scores",
		Buckets: []float64{10, 20, 30, 40, 50, 65, 80, 100},
	})

	// ChatbotRepliesTotal counts chatbot replies by rule kind.
	ChatbotRepliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentiq_chatbot_replies_total",
		Help: "Total chatbot replies by kind",
	}, []string{"kind"})

	// CacheLookupsTotal counts directory cache lookups by result.
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentiq_cache_lookups_total",
		Help: "Directory cache lookups by result",
	}, []string{"result"})

	// PersistFailuresTotal counts best-effort writes that failed.
	PersistFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentiq_persist_failures_total",
		Help: "Best-effort persistence failures by entity",
	}, []string{"entity"})
)

// Middleware records request count and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
