package chi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/logger"
	healthuc "github.com/hireline/assessrec/internal/usecase/health"
	recommenduc "github.com/hireline/assessrec/internal/usecase/recommend"
)

// handleSearch handles GET /search?query=&is_url=&max_results=.
// Pipeline faults do not produce HTTP errors; the response carries the
// error text in search_query with an empty result list.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	isURL := parseBoolParam(r, "is_url")
	maxResults := parseIntParam(r, "max_results", recommenduc.DefaultMaxResults)

	logger.FromContext(r.Context()).Debug("search request",
		zap.String("query", query),
		zap.Bool("is_url", isURL),
		zap.Int("max_results", maxResults))

	resp := s.recommend.Recommend(r.Context(), query, isURL, maxResults)
	writeJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
