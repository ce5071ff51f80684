package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ExchangesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warranty_exchanges_recorded_total",
			Help: "Audit trail entries appended, by action",
		},
		[]string{"action"},
	)

	OTPSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warranty_otp_sent_total",
			Help: "OTP challenges issued at the counter",
		},
	)

	OTPVerifyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warranty_otp_verify_failures_total",
			Help: "OTP verification attempts that did not match",
		},
	)
)
