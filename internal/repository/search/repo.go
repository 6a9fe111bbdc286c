// Package search adapts the db searcher into domain search results.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hireline/assessrec/internal/db"
	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/search/filter"
	"github.com/hireline/assessrec/internal/domain/search/result"
	"github.com/hireline/assessrec/internal/repository/assessment"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the retrieval usecase's index contract.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchKNN performs a KNN search with the compiled filter as a pre-filter.
func (r *Repo) SearchKNN(
	ctx context.Context, collection string,
	vector []float32, f filter.Filter, topK int,
) ([]result.Result, error) {
	q := &db.KNNQuery{
		IndexName: assessment.IndexName(collection),
		Filter:    f,
		Vector:    vector,
		K:         topK,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("search knn %s: %w", collection, err)
	}

	return parseResults(sr, collection), nil
}

func parseResults(sr *db.SearchResult, collection string) []result.Result {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := fmt.Sprintf("%s%s:doc:", assessment.KeyPrefix, collection)
	results := make([]result.Result, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		docID := strings.TrimPrefix(entry.Key, prefix)
		results = append(results, parseEntry(docID, entry))
	}

	return results
}

func parseEntry(docID string, entry db.SearchEntry) result.Result {
	content, _, tags, numerics, flags := assessment.SplitHashFields(entry.Fields)
	return result.New(docID, entry.Score, content, tags, numerics, flags)
}
