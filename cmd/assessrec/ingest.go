package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/repository/csvcatalog"
	ingestuc "github.com/hireline/assessrec/internal/usecase/ingest"
)

var (
	ingestCatalogPath string
	ingestCollection  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the searchable catalog from a CSV export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runIngest(cmd.Context())
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCatalogPath, "catalog", "", "path to the catalog CSV file")
	ingestCmd.Flags().StringVar(&ingestCollection, "collection", "", "collection name (defaults to config)")
	_ = ingestCmd.MarkFlagRequired("catalog")
}

func runIngest(ctx context.Context) error {
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	collection := ingestCollection
	if collection == "" {
		collection = app.cfg.Catalog.Collection
	}

	svc := ingestuc.New(
		csvcatalog.New(ingestCatalogPath),
		app.assessments,
		batchEmbedderFor(app.docEmbedder),
		app.cfg.Embedding.BatchSize,
		app.logger,
	)

	summary, err := svc.Run(ctx, collection)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", ingestCatalogPath, err)
	}

	app.logger.Info("catalog ingested",
		zap.String("collection", collection),
		zap.Int("records", summary.Records),
		zap.Int("documents", summary.Documents),
		zap.Int("job_levels", summary.JobLevels),
		zap.Int("languages", summary.Languages),
		zap.Int("embedding_tokens", summary.Tokens))

	return nil
}

// batchEmbedderFor returns the embedder's native batch implementation, or a
// per-text fallback when it has none.
func batchEmbedderFor(e domain.Embedder) ingestuc.BatchEmbedder {
	if be, ok := e.(ingestuc.BatchEmbedder); ok {
		return be
	}
	return fallbackBatchEmbedder{inner: e}
}

type fallbackBatchEmbedder struct {
	inner domain.Embedder
}

func (f fallbackBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	return domain.BatchFallback(ctx, f.inner, texts)
}
