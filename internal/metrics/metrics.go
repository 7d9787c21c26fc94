// Package metrics exposes Prometheus counters for requests and for the
// external services the actions depend on. A nil *Metrics is valid and
// records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	uploads  *prometheus.CounterVec
	emails   *prometheus.CounterVec
	retries  *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "limitless",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "limitless",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "limitless",
			Name:      "media_uploads_total",
			Help:      "Media uploads by provider and result.",
		}, []string{"provider", "result"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "limitless",
			Name:      "emails_sent_total",
			Help:      "Outgoing emails by kind and result.",
		}, []string{"kind", "result"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "limitless",
			Name:      "record_store_retries_total",
			Help:      "Read API retries after a record store timeout.",
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.requests, m.latency, m.uploads, m.emails, m.retries)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveUpload counts one upload attempt against provider.
func (m *Metrics) ObserveUpload(provider string, err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(provider, result(err)).Inc()
}

// ObserveEmail counts one send of kind (confirmation, receipt).
func (m *Metrics) ObserveEmail(kind string, err error) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(kind, result(err)).Inc()
}

// ObserveRetry counts one retry of endpoint.
func (m *Metrics) ObserveRetry(endpoint string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(endpoint).Inc()
}

// Middleware records request count and latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
