package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/config"
	"github.com/hireline/assessrec/internal/db"
	dbRedis "github.com/hireline/assessrec/internal/db/redis"
	"github.com/hireline/assessrec/internal/domain"
	logpkg "github.com/hireline/assessrec/internal/logger"
	"github.com/hireline/assessrec/internal/metrics"
	assessmentrepo "github.com/hireline/assessrec/internal/repository/assessment"
	searchrepo "github.com/hireline/assessrec/internal/repository/search"
	openaiEmb "github.com/hireline/assessrec/internal/transport/openai"
	retrievaluc "github.com/hireline/assessrec/internal/usecase/retrieval"
)

// application bundles the shared composition root for all commands.
type application struct {
	cfg    config.Config
	logger *zap.Logger
	store  db.Store

	assessments *assessmentrepo.Repo
	retrieval   *retrievaluc.Service

	docEmbedder   domain.Embedder
	queryEmbedder domain.Embedder
	baseEmbedder  *openaiEmb.Embedder
}

// newApplication loads configuration and wires the store, embedders,
// repositories, and the retrieval service.
func newApplication(ctx context.Context) (*application, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	logger.Info("starting assessrec",
		zap.String("env", env),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("collection", cfg.Catalog.Collection))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("connected to database")

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterPipelineMetrics()

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	// Instruction prefixes differ between documents and queries for
	// asymmetric embedding models; both default to the bare embedder.
	var docEmbedder domain.Embedder = base
	if cfg.Embedding.DocumentInstruction != "" {
		docEmbedder = domain.NewInstructionEmbedder(base, cfg.Embedding.DocumentInstruction)
	}
	var queryEmbedder domain.Embedder = base
	if cfg.Embedding.QueryInstruction != "" {
		queryEmbedder = domain.NewInstructionEmbedder(base, cfg.Embedding.QueryInstruction)
	}

	assessments := assessmentrepo.New(store, cfg.Embedding.Dimensions).
		WithHNSW(assessmentrepo.HNSWConfig{
			M:           cfg.Index.HNSWM,
			EFConstruct: cfg.Index.HNSWEFConstruct,
		})

	retrieval := retrievaluc.New(
		searchrepo.New(store), queryEmbedder, cfg.Catalog.Collection, logger,
	)

	return &application{
		cfg:           cfg,
		logger:        logger,
		store:         store,
		assessments:   assessments,
		retrieval:     retrieval,
		docEmbedder:   docEmbedder,
		queryEmbedder: queryEmbedder,
		baseEmbedder:  base,
	}, nil
}

// close releases the store and flushes logs.
func (a *application) close() {
	a.store.Close()
	_ = a.logger.Sync()
}
