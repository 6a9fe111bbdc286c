// Package document holds the searchable assessment document: free-text
// content plus a flat scalar metadata mapping the retrieval index can filter
// on. Documents are built once at ingestion and never mutated.
package document

import (
	"fmt"
	"regexp"
)

var idRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Duration range buckets. Buckets are cumulative upper bounds: a 12-minute
// assessment is very_short, a 50-minute one is standard.
const (
	RangeVeryShort = "very_short" // <= 15 min
	RangeShort     = "short"      // <= 30 min
	RangeMedium    = "medium"     // <= 45 min
	RangeStandard  = "standard"   // <= 60 min
	RangeLong      = "long"       // > 60 min
	RangeUnknown   = "unknown"    // unparseable duration
)

// Well-known metadata keys shared by the builder, the query compiler, and
// the index schema.
const (
	KeyName           = "name"
	KeyURL            = "url"
	KeyDescription    = "description"
	KeySearchKeywords = "search_keywords"
	KeyDuration       = "duration"
	KeyDurationRange  = "duration_range"
	KeyRemoteTesting  = "remote_testing"
	KeyAdaptiveIRT    = "adaptive_irt"

	KeyContainsCognitive   = "contains_cognitive"
	KeyContainsPersonality = "contains_personality"
	KeyContainsTechnical   = "contains_technical"
	KeyContainsSoftSkill   = "contains_soft_skill"

	KeyDurationUnder30 = "duration_under_30"
	KeyDurationUnder45 = "duration_under_45"
	KeyDurationUnder60 = "duration_under_60"
)

// Document is the searchable unit derived from one assessment record.
// Metadata splits into tags (string), numerics (float64), and flags (bool);
// the retrieval engine filters on flat scalar equality only.
type Document struct {
	id       string
	content  string
	tags     map[string]string
	numerics map[string]float64
	flags    map[string]bool
	vector   []float32
}

// New validates and creates a Document.
func New(
	id, content string,
	tags map[string]string, numerics map[string]float64, flags map[string]bool,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf(
			"document ID %q must be lowercase alphanumeric with underscores and hyphens", id)
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	return Document{
		id:       id,
		content:  content,
		tags:     cloneMap(tags),
		numerics: cloneMap(numerics),
		flags:    cloneMap(flags),
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, content string, tags map[string]string, numerics map[string]float64,
	flags map[string]bool, vector []float32,
) Document {
	return Document{id: id, content: content, tags: tags, numerics: numerics, flags: flags, vector: vector}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Content returns the embedding-readable composite text.
func (d *Document) Content() string { return d.content }

// Tags returns the string metadata fields.
func (d *Document) Tags() map[string]string { return d.tags }

// Numerics returns the numeric metadata fields.
func (d *Document) Numerics() map[string]float64 { return d.numerics }

// Flags returns the boolean metadata fields.
func (d *Document) Flags() map[string]bool { return d.flags }

// Vector returns the embedding vector.
func (d *Document) Vector() []float32 { return d.vector }

// WithVector returns a copy with the given vector set.
func (d *Document) WithVector(v []float32) Document {
	return Document{
		id: d.id, content: d.content, tags: d.tags,
		numerics: d.numerics, flags: d.flags, vector: v,
	}
}

// Duration returns the assessment duration in minutes (0 when unknown).
func (d *Document) Duration() float64 { return d.numerics[KeyDuration] }

// DurationRange buckets a duration in minutes. known=false yields unknown.
func DurationRange(minutes float64, known bool) string {
	switch {
	case !known:
		return RangeUnknown
	case minutes <= 15:
		return RangeVeryShort
	case minutes <= 30:
		return RangeShort
	case minutes <= 45:
		return RangeMedium
	case minutes <= 60:
		return RangeStandard
	default:
		return RangeLong
	}
}

// FlagJobLevel returns the flag key for a normalized vocabulary job level.
func FlagJobLevel(normalized string) string { return "job_level_" + normalized }

// FlagLanguage returns the flag key for a normalized vocabulary language.
func FlagLanguage(normalized string) string { return "language_" + normalized }

// FlagTestType returns the flag key for a single-letter test-type code.
func FlagTestType(code string) string { return "test_type_" + code }

func cloneMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return nil
	}
	c := make(map[string]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
