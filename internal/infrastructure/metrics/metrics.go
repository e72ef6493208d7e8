package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SOP generation
	SOPsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "financeflow_sops_generated_total",
			Help: "Total number of SOPs generated successfully",
		},
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "financeflow_sop_generation_duration_seconds",
			Help:    "Duration of SOP generation calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 0.25s..64s
		},
		[]string{"result"}, // result: success|<error kind>
	)

	// LLM
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_llm_requests_total",
			Help: "Number of LLM requests by model",
		},
		[]string{"model"},
	)

	// HTTP
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)
	HTTPErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		// SOP
		SOPsGenerated,
		GenerationDurationSeconds,
		// LLM
		LLMRequests,
		// HTTP
		HTTPRequestDuration,
		HTTPRequests,
		HTTPErrors,
		// Errors
		Errors,
	)
}

// NewMetricsServer returns a server exposing the default registry on addr.
func NewMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// StartMetricsServer blocks serving metrics until srv is shut down.
func StartMetricsServer(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// SOP
func IncSOPsGenerated() {
	SOPsGenerated.Inc()
}

func ObserveGenerationDuration(result string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(result).Observe(d.Seconds())
}

// LLM
func IncLLMRequest(model string) {
	LLMRequests.WithLabelValues(model).Inc()
}

// HTTP
func ObserveHTTPRequest(method, path, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, path).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func IncHTTPError(method, path, status string) {
	HTTPErrors.WithLabelValues(method, path, status).Inc()
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
