package obs

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	sensitiveReveals = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kadrio_sensitive_reveals_total",
		Help: "Protected fields returned as plaintext to an authorized caller.",
	})

	sensitiveMasked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kadrio_sensitive_masked_total",
		Help: "Protected fields returned in masked form.",
	})

	decryptFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kadrio_decrypt_failures_total",
		Help: "Field decryption failures (malformed or tampered ciphertext).",
	})

	accessDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kadrio_access_denials_total",
			Help: "Requests rejected by permission or scope checks.",
		},
		[]string{"reason"},
	)
)

// Init registers all metrics in the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight,
		httpRequestsTotal,
		httpRequestDuration,
		sensitiveReveals,
		sensitiveMasked,
		decryptFailures,
		accessDenials,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncSensitiveReveal counts a field revealed in plaintext.
func IncSensitiveReveal() { sensitiveReveals.Inc() }

// IncSensitiveMasked counts a field returned masked.
func IncSensitiveMasked() { sensitiveMasked.Inc() }

// IncDecryptFailure counts a failed field decryption.
func IncDecryptFailure() { decryptFailures.Inc() }

// IncAccessDenial counts a denied request, labeled by the check that
// rejected it ("permission", "scope", "interceptor").
func IncAccessDenial(reason string) { accessDenials.WithLabelValues(reason).Inc() }

// Instrument wraps a handler with RPS/latency/in-flight measurements.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := CanonicalPath(r.URL.Path)
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// CanonicalPath collapses identifier segments so metric label cardinality
// stays bounded.
func CanonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	parts := strings.Split(p, "/")
	if len(parts) == 4 && parts[1] == "v1" && parts[2] == "employees" && parts[3] != "" && parts[3] != "search" {
		return "/v1/employees/:id"
	}
	return p
}

// statusWriter captures the response code for metric labels.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
