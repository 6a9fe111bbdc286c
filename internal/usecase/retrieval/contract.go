package retrieval

import (
	"context"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/search/filter"
	"github.com/hireline/assessrec/internal/domain/search/result"
)

// Index defines the storage contract for KNN retrieval.
type Index interface {
	SearchKNN(
		ctx context.Context, collection string,
		vector []float32, f filter.Filter, topK int,
	) ([]result.Result, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
