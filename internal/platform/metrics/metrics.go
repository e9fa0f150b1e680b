// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts finished requests by route, method and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	// HTTPLatency observes request latency by route and method.
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_attempts_total", Help: "Count of authentication attempts by flow and result"},
		[]string{"flow", "result"},
	)
)

// Authentication flows.
const (
	FlowSignUp      = "signup"
	FlowSignIn      = "signin"
	FlowAdminSignIn = "admin_signin"
)

func init() { prometheus.MustRegister(HTTPRequests, HTTPLatency, authAttempts) }

// AuthAttempt records one authentication attempt. result is "success" or an error kind.
func AuthAttempt(flow, result string) {
	authAttempts.WithLabelValues(flow, result).Inc()
}
