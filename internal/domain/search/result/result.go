// Package result holds the search hit value object.
package result

import "github.com/hireline/assessrec/internal/domain/catalog"

// Result is a single similarity-search hit with its hydrated metadata.
type Result struct {
	id       string
	score    float64
	content  string
	tags     map[string]string
	numerics map[string]float64
	flags    map[string]bool
}

// New creates a search result.
func New(
	id string, score float64, content string,
	tags map[string]string, numerics map[string]float64, flags map[string]bool,
) Result {
	return Result{id: id, score: score, content: content, tags: tags, numerics: numerics, flags: flags}
}

// ID returns the document identifier.
func (r Result) ID() string { return r.id }

// Score returns the similarity score (cosine similarity, higher is better).
func (r Result) Score() float64 { return r.score }

// Content returns the document content.
func (r Result) Content() string { return r.content }

// Tags returns the string metadata.
func (r Result) Tags() map[string]string { return r.tags }

// Numerics returns the numeric metadata.
func (r Result) Numerics() map[string]float64 { return r.numerics }

// Flags returns the boolean metadata.
func (r Result) Flags() map[string]bool { return r.flags }

// Duration returns the assessment duration in minutes.
func (r Result) Duration() float64 { return r.numerics["duration"] }

// TestTypes returns the single-letter codes whose test_type_* flag is set.
func (r Result) TestTypes() []string {
	var codes []string
	for _, code := range catalog.TestTypeCodes {
		if r.flags["test_type_"+code] {
			codes = append(codes, code)
		}
	}
	return codes
}
