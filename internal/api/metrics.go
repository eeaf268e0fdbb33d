package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/nishad/drugrake/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the collectors of one server. Each server registers into
// its own registry so several can coexist in one process.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	lookups  *prometheus.CounterVec
}

func newMetrics(pathways *service.PathwayService) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugrake_http_requests_total",
				Help: "HTTP requests by route, method and status code.",
			},
			[]string{"route", "method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drugrake_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugrake_pathway_lookups_total",
				Help: "Pathway lookups by outcome.",
			},
			[]string{"result"},
		),
	}

	snapshotDrugs := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "drugrake_snapshot_drugs",
			Help: "Number of drugs in the served snapshot.",
		},
		func() float64 {
			if snap := pathways.Snapshot(); snap != nil {
				return float64(snap.Len())
			}
			return 0
		},
	)

	m.registry.MustRegister(m.requests, m.duration, m.lookups, snapshotDrugs)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeLookup(result service.LookupResult) {
	if result.Found {
		m.lookups.WithLabelValues("found").Inc()
	} else {
		m.lookups.WithLabelValues("not_found").Inc()
	}
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
