package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preview_requests_total",
			Help: "Total preview API requests",
		}, []string{"code"},
	)
	Latency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "preview_request_duration_seconds",
		Help:    "Request latency seconds",
		Buckets: prometheus.DefBuckets,
	})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "preview_in_flight",
		Help: "In-flight HTTP requests",
	})
	GeneratedAdSets = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matrix_generated_ad_sets_total",
		Help: "Ad sets produced by the matrix engine",
	})
	GeneratedAds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matrix_generated_ads_total",
		Help: "Ads produced by the matrix engine",
	})
	OverLimitPreviews = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matrix_over_limit_previews_total",
		Help: "Stat previews exceeding the soft launch limit",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, Latency, InFlight, GeneratedAdSets, GeneratedAds, OverLimitPreviews)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }

type rec struct {
	http.ResponseWriter
	code int
}

func (r *rec) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func Measure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		InFlight.Inc()
		defer InFlight.Dec()

		rr := &rec{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rr, r)

		Latency.Observe(time.Since(start).Seconds())
		RequestsTotal.WithLabelValues(strconv.Itoa(rr.code)).Inc()
	})
}
