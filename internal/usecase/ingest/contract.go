package ingest

import (
	"context"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/catalog"
	domdoc "github.com/hireline/assessrec/internal/domain/document"
)

// RecordSource yields normalized catalog records for ingestion.
type RecordSource interface {
	Records(ctx context.Context) ([]catalog.Record, error)
}

// Repository is the storage contract for catalog ingestion.
type Repository interface {
	EnsureIndex(ctx context.Context, collection string, vocab catalog.Vocabulary) error
	UpsertMulti(ctx context.Context, collection string, docs []domdoc.Document) error
	SaveVocabulary(ctx context.Context, collection string, vocab catalog.Vocabulary) error
	Count(ctx context.Context, collection string) (int, error)
}

// BatchEmbedder vectorizes document contents in batches.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
