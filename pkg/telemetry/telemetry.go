// Package telemetry exposes prometheus metrics for the HTTP surface, the
// cache and the store.
package telemetry

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fandash/pkg/store"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fandash_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fandash_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fandash_cache_hits_total",
		Help: "Cache hits by key namespace.",
	}, []string{"namespace"})

	cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fandash_cache_misses_total",
		Help: "Cache misses by key namespace.",
	}, []string{"namespace"})

	storeConversations = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fandash_store_conversations",
		Help: "Raw conversation records currently in the store.",
	}, func() float64 { return float64(store.GetStats().Conversations) })

	storeBytes = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fandash_store_approx_bytes",
		Help: "Approximate bytes held by the store keyspace.",
	}, func() float64 { return float64(store.GetStats().ApproxBytes) })
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, cacheHits, cacheMisses, storeConversations, storeBytes)
}

// ObserveCacheHit records a hit for a key namespace ("list" or "detail").
func ObserveCacheHit(namespace string) { cacheHits.WithLabelValues(namespace).Inc() }

// ObserveCacheMiss records a miss for a key namespace.
func ObserveCacheMiss(namespace string) { cacheMisses.WithLabelValues(namespace).Inc() }

// Middleware records request counts and latency. Routes are bucketed to
// their first two path segments to keep label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(srw, r)
		route := routeLabel(r.URL.Path)
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(srw.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) > 2 {
		segs = segs[:2]
	}
	return "/" + strings.Join(segs, "/")
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
