// Package recommend routes user input through the recommendation pipeline.
// Direct queries go straight to retrieval; job listing URLs are scraped and
// summarized into a search query first. Pipeline faults never surface as
// transport errors: the caller always gets a Response, with the error text
// in SearchQuery and no results.
package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain/search/query"
	"github.com/hireline/assessrec/internal/domain/search/result"
	"github.com/hireline/assessrec/internal/metrics"
)

const (
	// DefaultMaxResults is used when the caller does not cap the result count.
	DefaultMaxResults = 5

	// MaxResultsLimit bounds how many results a caller may request.
	MaxResultsLimit = 10

	// descriptionLimit caps the description text returned per assessment.
	descriptionLimit = 500
)

var urlRe = regexp.MustCompile(`https?://\S+`)

// Assessment is one recommended test in a Response.
type Assessment struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Duration    float64  `json:"duration"`
	TestTypes   []string `json:"test_types"`
}

// Response is the full recommendation outcome for one user query.
type Response struct {
	SearchQuery       string       `json:"search_query"`
	OriginalQuery     string       `json:"original_query"`
	IsURL             bool         `json:"is_url"`
	JobDescriptionURL string       `json:"job_description_url,omitempty"`
	Results           []Assessment `json:"results"`
}

// Service orchestrates scraping, query generation, and retrieval.
type Service struct {
	retriever Retriever
	extractor Extractor
	generator Generator
	logger    *zap.Logger
}

// New creates a recommendation service.
func New(retriever Retriever, extractor Extractor, generator Generator, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		extractor: extractor,
		generator: generator,
		logger:    logger,
	}
}

// Recommend resolves userQuery into assessment recommendations. When isURL
// is set, the query is treated as (or searched for) a job listing URL whose
// description is scraped and condensed into a search query.
func (s *Service) Recommend(ctx context.Context, userQuery string, isURL bool, maxResults int) Response {
	if maxResults < 1 || maxResults > MaxResultsLimit {
		maxResults = DefaultMaxResults
	}

	resp := Response{
		OriginalQuery: userQuery,
		IsURL:         isURL,
		Results:       []Assessment{},
	}

	searchQuery := userQuery
	if isURL {
		url := resolveURL(userQuery)
		if url == "" {
			return resp
		}
		resp.JobDescriptionURL = url

		jobDescription, err := s.extractor.Extract(ctx, url)
		if err != nil {
			s.logger.Warn("job description extraction failed",
				zap.String("url", url),
				zap.Error(err))
			resp.SearchQuery = fmt.Sprintf("Error extracting job description: %v", err)
			return resp
		}

		searchQuery, err = s.generator.GenerateSearchQuery(ctx, jobDescription)
		if err != nil {
			s.logger.Warn("search query generation failed",
				zap.String("url", url),
				zap.Error(err))
			resp.SearchQuery = fmt.Sprintf("Error generating search query: %v", err)
			return resp
		}

		searchQuery = carryDurationConstraint(userQuery, searchQuery)
	}

	resp.SearchQuery = searchQuery

	source := "text"
	if isURL {
		source = "url"
	}

	start := time.Now()
	results, err := s.retriever.Search(ctx, searchQuery)
	metrics.SearchRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(source, "error").Inc()
		s.logger.Error("assessment search failed",
			zap.String("search_query", searchQuery),
			zap.Error(err))
		resp.SearchQuery = fmt.Sprintf("Error searching for assessments: %v", err)
		return resp
	}
	metrics.SearchRequestsTotal.WithLabelValues(source, "success").Inc()

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	resp.Results = toAssessments(results)

	return resp
}

// resolveURL returns the query itself when it already is a URL, otherwise
// the first URL found inside it.
func resolveURL(q string) string {
	if strings.HasPrefix(q, "http://") || strings.HasPrefix(q, "https://") {
		return q
	}
	return urlRe.FindString(q)
}

// carryDurationConstraint re-appends a duration cap from the original user
// query when the generated query does not mention time at all.
func carryDurationConstraint(userQuery, generated string) string {
	phrase, ok := query.DurationPhrase(userQuery)
	if !ok {
		return generated
	}

	lower := strings.ToLower(generated)
	if strings.Contains(lower, "time") || strings.Contains(lower, "minute") {
		return generated
	}
	return generated + fmt.Sprintf(" Assessment duration less than %s.", phrase)
}

// truncateRunes caps a string at n characters without splitting a
// multi-byte rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func toAssessments(results []result.Result) []Assessment {
	out := make([]Assessment, 0, len(results))
	for _, r := range results {
		description := truncateRunes(r.Content(), descriptionLimit)

		out = append(out, Assessment{
			Name:        r.Tags()["name"],
			URL:         r.Tags()["url"],
			Description: description,
			Duration:    r.Duration(),
			TestTypes:   r.TestTypes(),
		})
	}
	return out
}
