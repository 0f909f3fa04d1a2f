// Package metrics holds the Prometheus collectors shared by the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	Requests          *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	WhitelistAttempts *prometheus.CounterVec
	AuditFailures     prometheus.Counter

	ipExtractions  *prometheus.CounterVec
	securityEvents *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartdns_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smartdns_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		WhitelistAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartdns_whitelist_attempts_total",
			Help: "Outbound whitelist gateway calls by result.",
		}, []string{"result"}),
		AuditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartdns_audit_write_failures_total",
			Help: "Audit log writes that failed and were dropped.",
		}),
		ipExtractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartdns_client_ip_extractions_total",
			Help: "Caller address extractions by source and result.",
		}, []string{"source", "result"}),
		securityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartdns_client_ip_security_events_total",
			Help: "Security events seen while extracting caller addresses.",
		}, []string{"event"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.RequestDuration,
		m.WhitelistAttempts,
		m.AuditFailures,
		m.ipExtractions,
		m.securityEvents,
	)
	return m
}

// The following satisfy clientip.Metrics.

func (m *Metrics) RecordExtractionSuccess(source string) {
	m.ipExtractions.WithLabelValues(source, "success").Inc()
}

func (m *Metrics) RecordExtractionFailure(source string) {
	m.ipExtractions.WithLabelValues(source, "invalid").Inc()
}

func (m *Metrics) RecordSecurityEvent(event string) {
	m.securityEvents.WithLabelValues(event).Inc()
}
