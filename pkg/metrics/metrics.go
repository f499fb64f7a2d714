// Package metrics exposes Prometheus collectors for attribute dispatch.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Subscription operation label values.
const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
)

// Metrics contains the dispatch collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	ValidationFailures *prometheus.CounterVec
	Subscriptions      *prometheus.CounterVec
	UnsupportedCalls   *prometheus.CounterVec
}

// New creates the collectors under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attribute",
				Name:      "requests_total",
				Help:      "Total number of attribute get/set requests by outcome",
			},
			[]string{"method", "outcome"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "attribute",
				Name:      "request_duration_seconds",
				Help:      "Round-trip duration of attribute requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		ValidationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attribute",
				Name:      "validation_failures_total",
				Help:      "Total number of set calls rejected before sending",
			},
			[]string{"attribute"},
		),

		Subscriptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attribute",
				Name:      "subscription_operations_total",
				Help:      "Total number of subscribe/unsubscribe calls by outcome",
			},
			[]string{"attribute", "operation", "outcome"},
		),

		UnsupportedCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attribute",
				Name:      "unsupported_calls_total",
				Help:      "Total number of calls to operations the attribute does not expose",
			},
			[]string{"attribute", "operation"},
		),
	}
}

// Register registers all collectors. Collectors that are already registered
// are not an error.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.Requests, m.RequestDuration, m.ValidationFailures, m.Subscriptions, m.UnsupportedCalls,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRequest records the outcome and duration of a request.
func (m *Metrics) ObserveRequest(method string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, outcome(err)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(seconds)
}

// ObserveValidationFailure records a rejected set call.
func (m *Metrics) ObserveValidationFailure(attribute string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(attribute).Inc()
}

// ObserveSubscription records a subscribe or unsubscribe outcome.
func (m *Metrics) ObserveSubscription(attribute, op string, err error) {
	if m == nil {
		return
	}
	m.Subscriptions.WithLabelValues(attribute, op, outcome(err)).Inc()
}

// ObserveUnsupported records a call to an operation the attribute lacks.
func (m *Metrics) ObserveUnsupported(attribute, op string) {
	if m == nil {
		return
	}
	m.UnsupportedCalls.WithLabelValues(attribute, op).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
