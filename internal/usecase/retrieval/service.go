// Package retrieval runs the filtered vector search behind recommendations:
// compile metadata filters from the query, embed it, search, and apply the
// duration post-filter.
package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/search/query"
	"github.com/hireline/assessrec/internal/domain/search/result"
	"github.com/hireline/assessrec/internal/metrics"
)

const (
	// defaultTopK matches the fixed candidate set size of the recommender.
	defaultTopK = 5

	// fallbackCount is how many unfiltered candidates to return when the
	// duration post-filter would otherwise leave nothing.
	fallbackCount = 3
)

// Service retrieves assessment candidates for a search query.
type Service struct {
	index      Index
	embed      Embedder
	collection string
	logger     *zap.Logger
}

// New creates a retrieval service bound to one catalog collection.
func New(index Index, embed Embedder, collection string, logger *zap.Logger) *Service {
	return &Service{index: index, embed: embed, collection: collection, logger: logger}
}

// Search compiles filters from the query, embeds it, and runs a KNN search.
// When the query names a duration cap in minutes, results whose known
// duration exceeds the cap are dropped; if that drops everything, the first
// few unfiltered candidates are returned so the caller always has something
// to show.
func (s *Service) Search(ctx context.Context, q string) ([]result.Result, error) {
	f := query.Compile(q)

	embResult, err := s.embed.Embed(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %v: %w", err, domain.ErrRetrievalFailed)
	}

	results, err := s.index.SearchKNN(ctx, s.collection, embResult.Embedding, f, defaultTopK)
	if err != nil {
		return nil, fmt.Errorf("search knn: %v: %w", err, domain.ErrRetrievalFailed)
	}

	s.logger.Debug("retrieved candidates",
		zap.String("query", q),
		zap.Int("filter_conditions", len(f.Conditions())),
		zap.Int("candidates", len(results)))

	maxDuration, ok := query.MaxDuration(q)
	if !ok {
		return results, nil
	}

	filtered, fellBack := filterByDuration(results, maxDuration)
	if fellBack {
		metrics.SearchDurationFallbackTotal.Inc()
		s.logger.Debug("duration cap removed all candidates, returning unfiltered head",
			zap.Float64("max_duration", maxDuration),
			zap.Int("returned", len(filtered)))
	}
	return filtered, nil
}

// filterByDuration keeps results with a known duration within the cap.
// An empty outcome falls back to the head of the unfiltered list.
func filterByDuration(results []result.Result, maxDuration float64) ([]result.Result, bool) {
	filtered := make([]result.Result, 0, len(results))
	for _, r := range results {
		if d := r.Duration(); d > 0 && d <= maxDuration {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) > 0 {
		return filtered, false
	}
	if len(results) > fallbackCount {
		return results[:fallbackCount], true
	}
	return results, len(results) > 0
}
