package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "leadintake"

// LeadMetrics tracks intake outcomes and HTTP traffic.
type LeadMetrics struct {
	saved           *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewLeadMetrics registers the intake metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	if reg == nil {
		return &LeadMetrics{}
	}
	saved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_saved_total",
		Help:      "Leads persisted, by source.",
	}, []string{"source"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_rejected_total",
		Help:      "Submissions rejected before persistence, by reason.",
	}, []string{"reason"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	reg.MustRegister(saved, rejected, requests, duration)
	return &LeadMetrics{
		saved:           saved,
		rejected:        rejected,
		requests:        requests,
		requestDuration: duration,
	}
}

// IncSaved counts a persisted lead.
func (m *LeadMetrics) IncSaved(source string) {
	if m == nil || m.saved == nil {
		return
	}
	m.saved.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncRejected counts a rejected submission.
func (m *LeadMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *LeadMetrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
