package recommend

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/search/result"
	"github.com/hireline/assessrec/internal/metrics"
)

// --- Mocks ---

type mockRetriever struct {
	results   []result.Result
	err       error
	lastQuery string
}

func (m *mockRetriever) Search(_ context.Context, q string) ([]result.Result, error) {
	m.lastQuery = q
	return m.results, m.err
}

type mockExtractor struct {
	text    string
	err     error
	lastURL string
}

func (m *mockExtractor) Extract(_ context.Context, url string) (string, error) {
	m.lastURL = url
	return m.text, m.err
}

type mockGenerator struct {
	query  string
	err    error
	lastJD string
}

func (m *mockGenerator) GenerateSearchQuery(_ context.Context, jd string) (string, error) {
	m.lastJD = jd
	return m.query, m.err
}

func sampleResults(n int) []result.Result {
	out := make([]result.Result, n)
	for i := range out {
		out[i] = result.New(
			"doc", 0.9, strings.Repeat("x", 600),
			map[string]string{"name": "Verify G+", "url": "https://example.com"},
			map[string]float64{"duration": 24},
			map[string]bool{"test_type_A": true},
		)
	}
	return out
}

func newService(r *mockRetriever, e *mockExtractor, g *mockGenerator) *Service {
	return New(r, e, g, zap.NewNop())
}

// --- Tests ---

func TestRecommendDirectQuery(t *testing.T) {
	retr := &mockRetriever{results: sampleResults(1)}
	svc := newService(retr, &mockExtractor{}, &mockGenerator{})

	resp := svc.Recommend(context.Background(), "cognitive test", false, 5)

	if resp.SearchQuery != "cognitive test" {
		t.Errorf("SearchQuery = %q", resp.SearchQuery)
	}
	if retr.lastQuery != "cognitive test" {
		t.Errorf("retriever got %q", retr.lastQuery)
	}
	if resp.IsURL || resp.JobDescriptionURL != "" {
		t.Error("direct query should not set URL fields")
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}

	r := resp.Results[0]
	if r.Name != "Verify G+" || r.URL != "https://example.com" || r.Duration != 24 {
		t.Errorf("result = %+v", r)
	}
	if len(r.Description) != descriptionLimit {
		t.Errorf("description length = %d, want %d", len(r.Description), descriptionLimit)
	}
	if len(r.TestTypes) != 1 || r.TestTypes[0] != "A" {
		t.Errorf("test types = %v", r.TestTypes)
	}
}

func TestRecommendMaxResults(t *testing.T) {
	retr := &mockRetriever{results: sampleResults(5)}
	svc := newService(retr, &mockExtractor{}, &mockGenerator{})

	resp := svc.Recommend(context.Background(), "q", false, 2)
	if len(resp.Results) != 2 {
		t.Errorf("results = %d, want 2", len(resp.Results))
	}

	// Out-of-range caps fall back to the default.
	resp = svc.Recommend(context.Background(), "q", false, 99)
	if len(resp.Results) != 5 {
		t.Errorf("results = %d, want all 5 under default cap", len(resp.Results))
	}
}

func TestRecommendURLQuery(t *testing.T) {
	retr := &mockRetriever{results: sampleResults(1)}
	ext := &mockExtractor{text: "We are hiring a Java developer."}
	gen := &mockGenerator{query: "java programming skills assessment"}
	svc := newService(retr, ext, gen)

	resp := svc.Recommend(context.Background(), "https://jobs.example.com/123", true, 5)

	if ext.lastURL != "https://jobs.example.com/123" {
		t.Errorf("extractor got %q", ext.lastURL)
	}
	if gen.lastJD != "We are hiring a Java developer." {
		t.Errorf("generator got %q", gen.lastJD)
	}
	if resp.SearchQuery != "java programming skills assessment" {
		t.Errorf("SearchQuery = %q", resp.SearchQuery)
	}
	if resp.JobDescriptionURL != "https://jobs.example.com/123" {
		t.Errorf("JobDescriptionURL = %q", resp.JobDescriptionURL)
	}
	if len(resp.Results) != 1 {
		t.Errorf("results = %d, want 1", len(resp.Results))
	}
}

func TestRecommendURLEmbeddedInText(t *testing.T) {
	ext := &mockExtractor{text: "jd"}
	gen := &mockGenerator{query: "generated"}
	svc := newService(&mockRetriever{}, ext, gen)

	svc.Recommend(context.Background(), "see https://jobs.example.com/456 for details", true, 5)

	if ext.lastURL != "https://jobs.example.com/456" {
		t.Errorf("extractor got %q, want the embedded URL", ext.lastURL)
	}
}

func TestRecommendNoURLFound(t *testing.T) {
	svc := newService(&mockRetriever{}, &mockExtractor{}, &mockGenerator{})

	resp := svc.Recommend(context.Background(), "no url in here", true, 5)

	if resp.SearchQuery != "" {
		t.Errorf("SearchQuery = %q, want empty", resp.SearchQuery)
	}
	if len(resp.Results) != 0 {
		t.Errorf("results = %d, want 0", len(resp.Results))
	}
}

func TestRecommendExtractionFailure(t *testing.T) {
	ext := &mockExtractor{err: domain.ErrExtractionFailed}
	svc := newService(&mockRetriever{}, ext, &mockGenerator{})

	resp := svc.Recommend(context.Background(), "https://jobs.example.com/1", true, 5)

	if !strings.HasPrefix(resp.SearchQuery, "Error extracting job description:") {
		t.Errorf("SearchQuery = %q", resp.SearchQuery)
	}
	if len(resp.Results) != 0 {
		t.Error("failed extraction should return no results")
	}
}

func TestRecommendGenerationFailure(t *testing.T) {
	ext := &mockExtractor{text: "jd"}
	gen := &mockGenerator{err: domain.ErrGenerationFailed}
	svc := newService(&mockRetriever{}, ext, gen)

	resp := svc.Recommend(context.Background(), "https://jobs.example.com/1", true, 5)

	if !strings.HasPrefix(resp.SearchQuery, "Error generating search query:") {
		t.Errorf("SearchQuery = %q", resp.SearchQuery)
	}
	if len(resp.Results) != 0 {
		t.Error("failed generation should return no results")
	}
}

func TestRecommendRetrievalFailure(t *testing.T) {
	retr := &mockRetriever{err: domain.ErrRetrievalFailed}
	svc := newService(retr, &mockExtractor{}, &mockGenerator{})

	resp := svc.Recommend(context.Background(), "cognitive test", false, 5)

	if !strings.HasPrefix(resp.SearchQuery, "Error searching for assessments:") {
		t.Errorf("SearchQuery = %q", resp.SearchQuery)
	}
	if len(resp.Results) != 0 {
		t.Error("failed retrieval should return no results")
	}
}

func TestRecommendCarriesDurationConstraint(t *testing.T) {
	retr := &mockRetriever{}
	ext := &mockExtractor{text: "jd"}
	gen := &mockGenerator{query: "java skills assessment"}
	svc := newService(retr, ext, gen)

	resp := svc.Recommend(
		context.Background(),
		"https://jobs.example.com/1 must finish in 30 minutes", true, 5,
	)

	want := "java skills assessment Assessment duration less than 30 minutes."
	if resp.SearchQuery != want {
		t.Errorf("SearchQuery = %q, want %q", resp.SearchQuery, want)
	}
}

func TestRecommendSkipsDurationWhenGeneratedMentionsTime(t *testing.T) {
	ext := &mockExtractor{text: "jd"}
	gen := &mockGenerator{query: "assessment within 20 minutes"}
	svc := newService(&mockRetriever{}, ext, gen)

	resp := svc.Recommend(
		context.Background(),
		"https://jobs.example.com/1 in 30 minutes", true, 5,
	)

	if resp.SearchQuery != "assessment within 20 minutes" {
		t.Errorf("SearchQuery = %q, should be left as generated", resp.SearchQuery)
	}
}

func TestRecommendMultibyteDescriptionTruncation(t *testing.T) {
	content := strings.Repeat("é", 600)
	retr := &mockRetriever{results: []result.Result{result.New(
		"doc", 0.9, content,
		map[string]string{"name": "OPQ", "url": "https://example.com"},
		nil, nil,
	)}}
	svc := newService(retr, &mockExtractor{}, &mockGenerator{})

	resp := svc.Recommend(context.Background(), "personality", false, 5)
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}

	description := resp.Results[0].Description
	if !utf8.ValidString(description) {
		t.Error("truncation split a multi-byte rune")
	}
	if got := utf8.RuneCountInString(description); got != descriptionLimit {
		t.Errorf("description runes = %d, want %d", got, descriptionLimit)
	}
}

func TestRecommendSearchMetrics(t *testing.T) {
	success := metrics.SearchRequestsTotal.WithLabelValues("text", "success")
	failure := metrics.SearchRequestsTotal.WithLabelValues("text", "error")
	successBefore := testutil.ToFloat64(success)
	failureBefore := testutil.ToFloat64(failure)

	svc := newService(&mockRetriever{results: sampleResults(1)}, &mockExtractor{}, &mockGenerator{})
	svc.Recommend(context.Background(), "cognitive test", false, 5)

	if got := testutil.ToFloat64(success); got != successBefore+1 {
		t.Errorf("success counter = %v, want %v", got, successBefore+1)
	}

	svc = newService(&mockRetriever{err: domain.ErrRetrievalFailed}, &mockExtractor{}, &mockGenerator{})
	svc.Recommend(context.Background(), "cognitive test", false, 5)

	if got := testutil.ToFloat64(failure); got != failureBefore+1 {
		t.Errorf("error counter = %v, want %v", got, failureBefore+1)
	}
}
