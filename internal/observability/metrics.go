package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate by method and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// Cache lookups by result: hit, miss, error. Hit rate = hit/(hit+miss).
	CacheLookupsTotal *prometheus.CounterVec

	// Upstream API fetches by result: success, error.
	UpstreamFetchesTotal *prometheus.CounterVec

	// Cache write-backs by result: success, error.
	CacheWritesTotal *prometheus.CounterVec

	// Audit events by result: success, error, skipped.
	AuditWritesTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method and status code.",
	}, []string{"method", "status"})

	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_cache_lookups_total",
		Help: "Cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	UpstreamFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_upstream_fetches_total",
		Help: "Upstream weather API fetches by result (success, error).",
	}, []string{"result"})

	CacheWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_cache_writes_total",
		Help: "Cache write-backs by result (success, error).",
	}, []string{"result"})

	AuditWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_audit_writes_total",
		Help: "Audit log writes by result (success, error, skipped).",
	}, []string{"result"})

	registry.MustRegister(
		HTTPRequestsTotal,
		CacheLookupsTotal,
		UpstreamFetchesTotal,
		CacheWritesTotal,
		AuditWritesTotal,
	)
}

// Handler exposes the metrics registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
