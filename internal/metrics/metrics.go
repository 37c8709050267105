// Package metrics — Prometheus-коллекторы сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	cacheInvals  *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Cache hits by entity.",
		}, []string{"entity"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Cache misses by entity.",
		}, []string{"entity"}),
		cacheInvals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_invalidations_total",
			Help: "Cache invalidation sweeps by entity.",
		}, []string{"entity"}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "catalog_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}
}

// Handler отдаёт /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// Реализация cacheops.Stats.
func (m *Metrics) CacheHit(entity string)          { m.cacheHits.WithLabelValues(entity).Inc() }
func (m *Metrics) CacheMiss(entity string)         { m.cacheMisses.WithLabelValues(entity).Inc() }
func (m *Metrics) CacheInvalidation(entity string) { m.cacheInvals.WithLabelValues(entity).Inc() }

func (m *Metrics) RateLimited() { m.rateLimited.Inc() }
