// Package metrics holds the prometheus collectors exported on /metrics.
// Every recorder is nil-safe so packages can run without a registry in tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Commerce records Magento GraphQL calls.
type Commerce struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	breaker  prometheus.Gauge
}

// NewCommerce registers the commerce client metrics on reg.
func NewCommerce(reg prometheus.Registerer) *Commerce {
	if reg == nil {
		return &Commerce{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commerce_request_duration_seconds",
		Help:    "Duration of Magento GraphQL operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commerce_request_failures_total",
		Help: "Failed Magento GraphQL operations.",
	}, []string{"operation"})
	breaker := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "commerce_breaker_state",
		Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
	})
	reg.MustRegister(duration, failures, breaker)
	return &Commerce{duration: duration, failures: failures, breaker: breaker}
}

// ObserveRequest records one operation and counts it as failed when err is non-nil.
func (c *Commerce) ObserveRequest(operation string, d time.Duration, err error) {
	if c == nil || c.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	c.duration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		c.failures.WithLabelValues(op).Inc()
	}
}

// SetBreakerState publishes the breaker state as 0 closed, 1 half-open, 2 open.
func (c *Commerce) SetBreakerState(state int) {
	if c == nil || c.breaker == nil {
		return
	}
	c.breaker.Set(float64(state))
}

// Checkout counts order placement outcomes.
type Checkout struct {
	outcomes *prometheus.CounterVec
}

// NewCheckout registers the checkout outcome counter on reg.
func NewCheckout(reg prometheus.Registerer) *Checkout {
	if reg == nil {
		return &Checkout{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Order placement attempts by outcome; reason codes for failures, placed for success.",
	}, []string{"outcome"})
	reg.MustRegister(outcomes)
	return &Checkout{outcomes: outcomes}
}

// RecordOutcome increments the counter for outcome ("placed" or a reason code).
func (c *Checkout) RecordOutcome(outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
