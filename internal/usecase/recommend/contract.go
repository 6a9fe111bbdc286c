package recommend

import (
	"context"

	"github.com/hireline/assessrec/internal/domain/search/result"
)

// Retriever runs the filtered vector search for a finished search query.
type Retriever interface {
	Search(ctx context.Context, query string) ([]result.Result, error)
}

// Extractor pulls the job description text out of a job listing page.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Generator turns a job description into a concise search query.
type Generator interface {
	GenerateSearchQuery(ctx context.Context, jobDescription string) (string, error)
}
