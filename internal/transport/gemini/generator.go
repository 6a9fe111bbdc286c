// Package gemini wraps the Google GenAI client for search query generation.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/metrics"
)

const (
	defaultModel   = "gemini-2.5-pro"
	defaultTimeout = 30 * time.Second

	// maxJobDescriptionBytes caps the prompt size to stay within token limits.
	maxJobDescriptionBytes = 3000
)

//go:embed prompt.md
var promptTemplate string

// Generator turns a job description into a concise assessment search query.
type Generator struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
// A non-positive timeout uses the default.
func NewGenerator(ctx context.Context, apiKey, model string, timeout time.Duration, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Generator{client: client, modelName: model, timeout: timeout, logger: logger}, nil
}

// GenerateSearchQuery asks the model for a search query describing assessments
// that fit the given job description. Any failure, including an empty model
// response, is reported as domain.ErrGenerationFailed so callers can degrade
// to the raw input instead of aborting the request.
func (g *Generator) GenerateSearchQuery(ctx context.Context, jobDescription string) (string, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return "", fmt.Errorf("empty job description: %w", domain.ErrGenerationFailed)
	}

	prompt := buildPrompt(jobDescription)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.modelName, "error").Inc()
		g.logger.Warn("query generation failed",
			zap.String("model", g.modelName),
			zap.Error(err))
		return "", fmt.Errorf("generate content: %v: %w", err, domain.ErrGenerationFailed)
	}

	query := collectText(resp)
	if query == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(g.modelName, "error").Inc()
		return "", fmt.Errorf("model returned empty response: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.modelName, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.modelName).Observe(duration.Seconds())

	g.logger.Debug("generated search query",
		zap.String("model", g.modelName),
		zap.Int("job_description_len", len(jobDescription)),
		zap.String("query", query))

	return query, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.modelName
}

func buildPrompt(jobDescription string) string {
	if len(jobDescription) > maxJobDescriptionBytes {
		jobDescription = jobDescription[:maxJobDescriptionBytes]
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Job description:\n{{JOB_DESCRIPTION}}\n\nSearch query:"
	}
	return strings.ReplaceAll(template, "{{JOB_DESCRIPTION}}", jobDescription)
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
