package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"financeflow/app/usecase"
	"financeflow/internal/domain/entity"
	"financeflow/internal/infrastructure/metrics"
)

const RequestIDHeader = "X-Request-ID"

type SOPHandler struct {
	sopService usecase.SOPUsecase
	logger     *slog.Logger
}

func NewSOPHandler(sopService usecase.SOPUsecase, logger *slog.Logger) *SOPHandler {
	return &SOPHandler{
		sopService: sopService,
		logger:     logger,
	}
}

// NewRouter wires routes with recovery and allow-all CORS.
func NewRouter(h *SOPHandler) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	recovered := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{h.logger}),
	)(r)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)(recovered)
}

func (h *SOPHandler) RegisterRoutes(r *mux.Router) {
	r.Use(h.withRequestID)

	r.HandleFunc("/", h.withMetrics(h.handleRoot)).Methods(http.MethodGet)
	r.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/sop").Subrouter()
	api.HandleFunc("/generate", h.withMetrics(h.handleGenerate)).Methods(http.MethodPost)

	// Prometheus
	r.Handle("/metrics", promhttp.Handler())
}

// Middleware для request id
func (h *SOPHandler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(entity.WithRequestID(r.Context(), id)))
	})
}

// Middleware для метрик
func (h *SOPHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := routeTemplate(r)
		method := r.Method

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		statusStr := strconv.Itoa(rw.status)
		metrics.ObserveHTTPRequest(method, path, statusStr, time.Since(start))

		if rw.status >= 400 {
			metrics.IncHTTPError(method, path, statusStr)
		}
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

// writeGenerationError flattens every generation failure into one 500 response.
// The kind only reaches logs and metrics.
func (h *SOPHandler) writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, entity.ErrTaskRequired) {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var genErr *entity.GenerationError
	if errors.As(err, &genErr) {
		h.logger.Error("generate sop failed",
			"request_id", entity.RequestIDFromContext(r.Context()), "kind", genErr.Kind, "err", err)
		writeDetail(w, http.StatusInternalServerError, genErr.Error())
		return
	}

	h.logger.Error("generate sop failed", "request_id", entity.RequestIDFromContext(r.Context()), "err", err)
	writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate SOP: %s", err))
}

// POST /api/sop/generate
func (h *SOPHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req entity.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("bad request body: %s", err))
		return
	}

	result, err := h.sopService.Generate(r.Context(), req)
	if err != nil {
		h.writeGenerationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GET /health
func (h *SOPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GET /
func (h *SOPHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to FinanceFlow API"})
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("panic recovered", "err", fmt.Sprint(v...))
}
