// Package metrics exposes prometheus collectors for the HTTP surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tiendita_http_requests_total",
			Help: "Total HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tiendita_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SalesCompletedTotal counts sales recorded successfully.
	SalesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tiendita_sales_completed_total",
			Help: "Total sales registered successfully.",
		},
	)

	// AuthLoginFailuresTotal counts rejected login attempts.
	AuthLoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tiendita_auth_login_failures_total",
			Help: "Total login attempts rejected with invalid credentials.",
		},
	)
)
