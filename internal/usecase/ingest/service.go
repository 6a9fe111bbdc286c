// Package ingest builds the searchable catalog: records are normalized,
// rendered into documents with flat filterable metadata, vectorized in
// batches, and written to the store under a fresh index.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/catalog"
	domdoc "github.com/hireline/assessrec/internal/domain/document"
)

// defaultBatchSize is how many documents go into one embedding request.
const defaultBatchSize = 64

// Service ingests a catalog into a named collection.
type Service struct {
	source    RecordSource
	repo      Repository
	embed     BatchEmbedder
	batchSize int
	logger    *zap.Logger
}

// New creates an ingestion service. A non-positive batchSize uses the default.
func New(source RecordSource, repo Repository, embed BatchEmbedder, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Service{
		source:    source,
		repo:      repo,
		embed:     embed,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Summary reports what an ingestion run produced.
type Summary struct {
	Records   int
	Documents int
	JobLevels int
	Languages int
	Tokens    int
}

// Run rebuilds the collection from the record source. The index is
// recreated from the corpus vocabulary, so re-running ingestion on the
// same catalog is idempotent.
func (s *Service) Run(ctx context.Context, collection string) (Summary, error) {
	records, err := s.source.Records(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("read records: %w", err)
	}
	if len(records) == 0 {
		return Summary{}, domain.ErrEmptyCatalog
	}

	vocab := catalog.BuildVocabulary(records)

	s.logger.Info("building documents",
		zap.String("collection", collection),
		zap.Int("records", len(records)),
		zap.Int("job_levels", len(vocab.JobLevels())),
		zap.Int("languages", len(vocab.Languages())))

	docs := make([]domdoc.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, domdoc.Build(rec, vocab))
	}

	summary := Summary{
		Records:   len(records),
		JobLevels: len(vocab.JobLevels()),
		Languages: len(vocab.Languages()),
	}

	tokens, err := s.vectorize(ctx, docs)
	if err != nil {
		return Summary{}, err
	}
	summary.Tokens = tokens

	if err := s.repo.EnsureIndex(ctx, collection, vocab); err != nil {
		return Summary{}, fmt.Errorf("ensure index: %w", err)
	}
	if err := s.repo.UpsertMulti(ctx, collection, docs); err != nil {
		return Summary{}, fmt.Errorf("store documents: %w", err)
	}
	if err := s.repo.SaveVocabulary(ctx, collection, vocab); err != nil {
		return Summary{}, fmt.Errorf("save vocabulary: %w", err)
	}

	summary.Documents = len(docs)

	s.logger.Info("ingestion complete",
		zap.String("collection", collection),
		zap.Int("documents", summary.Documents),
		zap.Int("embedding_tokens", summary.Tokens))

	return summary, nil
}

// vectorize embeds document contents batch by batch and attaches the
// vectors in place.
func (s *Service) vectorize(ctx context.Context, docs []domdoc.Document) (int, error) {
	var tokens int

	for start := 0; start < len(docs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}

		texts := make([]string, 0, end-start)
		for _, doc := range docs[start:end] {
			texts = append(texts, doc.Content())
		}

		res, err := s.embed.BatchEmbed(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embed batch [%d:%d]: %w", start, end, err)
		}
		if len(res.Embeddings) != len(texts) {
			return 0, fmt.Errorf("embed batch [%d:%d]: got %d vectors for %d texts",
				start, end, len(res.Embeddings), len(texts))
		}

		for i := range res.Embeddings {
			docs[start+i] = docs[start+i].WithVector(res.Embeddings[i])
		}
		tokens += res.TotalTokens

		s.logger.Debug("embedded batch",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("tokens", res.TotalTokens))
	}

	return tokens, nil
}
