// Package web serves the explorer UI and its JSON API.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cdcockrum/cneos-explorer/internal/domain"
	"github.com/cdcockrum/cneos-explorer/internal/explorer"
)

//go:embed index.html
var indexHTML []byte

// DatasetService produces dataset views for the two datasets.
type DatasetService interface {
	Fireballs(ctx context.Context, q domain.FireballQuery) explorer.View
	CloseApproaches(ctx context.Context, q domain.CloseApproachQuery) explorer.View
}

// Server exposes the UI page, the dataset API, health, and metrics.
type Server struct {
	httpServer *http.Server
	service    DatasetService
	logger     *slog.Logger
}

// NewServer creates the explorer HTTP server.
func NewServer(addr string, service DatasetService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/fireballs", s.handleFireballs)
	mux.HandleFunc("GET /api/close-approaches", s.handleCloseApproaches)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = s.requestLogger(mux)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleFireballs(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q, err := domain.ParseFireballQuery(
		params.Get("limit"),
		params.Get("date-min"),
		params.Get("energy-min"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.service.Fireballs(r.Context(), q))
}

func (s *Server) handleCloseApproaches(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q, err := domain.ParseCloseApproachQuery(domain.CloseApproachInput{
		Limit:   params.Get("limit"),
		DistMax: params.Get("dist-max"),
		DateMin: params.Get("date-min"),
		DateMax: params.Get("date-max"),
		HMin:    params.Get("h-min"),
		HMax:    params.Get("h-max"),
		VInfMin: params.Get("v-inf-min"),
		VInfMax: params.Get("v-inf-max"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.service.CloseApproaches(r.Context(), q))
}

// requestLogger tags each request with an id, echoed in the X-Request-ID
// header, and logs the outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// writeError renders a validation failure as a 400 with the user-facing
// message. Anything else is a 500; handlers upstream have already logged it.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
