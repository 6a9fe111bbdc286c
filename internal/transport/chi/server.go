// Package chi provides the HTTP API on top of the recommendation usecases.
package chi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/logger"
	"github.com/hireline/assessrec/internal/metrics"
	healthuc "github.com/hireline/assessrec/internal/usecase/health"
	recommenduc "github.com/hireline/assessrec/internal/usecase/recommend"
)

// Server handles the HTTP API.
type Server struct {
	recommend *recommenduc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		recommend: recommend,
		health:    health,
		logger:    logger,
	}
}

// Router builds the chi router with middleware and routes.
// corsOrigins lists allowed CORS origins; empty disables CORS.
func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(metrics.Middleware())

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Get("/search", s.handleSearch)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger stashes a request-scoped logger in the context and emits
// one structured event per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		reqLogger := s.logger.With(
			zap.String("request_id", middleware.GetReqID(r.Context())))
		r = r.WithContext(logger.ContextWithLogger(r.Context(), reqLogger))

		next.ServeHTTP(ww, r)

		reqLogger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)))
	})
}

// recoverer converts panics into JSON 500 responses instead of closing
// the connection.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.Any("panic", rec),
					zap.Stack("stack"))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// parseBoolParam parses a query flag, treating absent or malformed values as false.
func parseBoolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

// parseIntParam parses an int query parameter, falling back to def.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
