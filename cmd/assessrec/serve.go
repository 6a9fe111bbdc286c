package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain"
	chiTransport "github.com/hireline/assessrec/internal/transport/chi"
	"github.com/hireline/assessrec/internal/transport/gemini"
	"github.com/hireline/assessrec/internal/transport/jobpage"
	healthuc "github.com/hireline/assessrec/internal/usecase/health"
	recommenduc "github.com/hireline/assessrec/internal/usecase/recommend"
	"github.com/hireline/assessrec/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	logger := app.logger
	cfg := app.cfg

	logger.Info("serve",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port))

	extractor := jobpage.NewExtractor(
		time.Duration(cfg.Scraper.TimeoutSec)*time.Second, logger,
	)

	var generator recommenduc.Generator
	if cfg.Generation.APIKey != "" {
		generator, err = gemini.NewGenerator(
			ctx, cfg.Generation.APIKey, cfg.Generation.Model,
			time.Duration(cfg.Generation.TimeoutSec)*time.Second, logger,
		)
		if err != nil {
			return fmt.Errorf("create generator: %w", err)
		}
	} else {
		logger.Warn("generation.api_key not set, URL queries will fail")
		generator = disabledGenerator{}
	}

	recommendSvc := recommenduc.New(app.retrieval, extractor, generator, logger)
	healthSvc := healthuc.New(
		app.store,
		newEmbeddingHealthChecker(app.queryEmbedder),
		app.assessments,
		cfg.Catalog.Collection,
	)

	server := chiTransport.NewServer(recommendSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.HTTP.CORSOrigins),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
	return nil
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// disabledGenerator rejects URL queries when no generation API key is configured.
type disabledGenerator struct{}

func (disabledGenerator) GenerateSearchQuery(context.Context, string) (string, error) {
	return "", fmt.Errorf("query generation is not configured: %w", domain.ErrGenerationFailed)
}
