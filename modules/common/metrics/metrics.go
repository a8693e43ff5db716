package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Studio photo server metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_photo",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studio_photo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Downstream generation calls
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_photo",
			Name:      "generations_total",
			Help:      "Total downstream generation calls by outcome",
		},
		[]string{"operation", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studio_photo",
			Name:      "generation_duration_seconds",
			Help:      "Downstream generation call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 90},
		},
		[]string{"operation"},
	)
)

// Generation outcome labels
const (
	StatusSuccess     = "success"
	StatusNoImage     = "no_image"
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordGeneration records the outcome of one downstream call
func RecordGeneration(operation, status string) {
	GenerationsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveGeneration records downstream call latency
func ObserveGeneration(operation string, durationSec float64) {
	GenerationDuration.WithLabelValues(operation).Observe(durationSec)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware labels requests by their mux route template so ids in paths
// do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}
		RecordRequest(r.Method, endpoint, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}
