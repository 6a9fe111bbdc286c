// Package catalog holds the assessment catalog domain: raw records, list
// field normalization, and the corpus-wide vocabulary.
package catalog

import (
	"strconv"
	"strings"
)

// TestTypeCodes is the fixed alphabet of single-letter test-type codes.
var TestTypeCodes = []string{"A", "B", "C", "D", "E", "K", "P", "S"}

// Record is one catalog row describing an assessment product.
// List fields are expected to be normalized via NormalizeList before use.
type Record struct {
	Name          string
	URL           string
	Description   string
	Duration      float64 // minutes; 0 when unparseable
	DurationKnown bool    // false when the source cell was not numeric
	RemoteTesting bool
	AdaptiveIRT   bool
	JobLevels     []string
	Languages     []string
	TestTypes     []string
}

// NormalizeList coerces a raw list field into a clean slice of trimmed,
// non-empty strings. The source table mixes three shapes: empty cells,
// stringified list literals like `['English', 'French']`, and plain
// comma-separated values. It never fails; ambiguous input degrades to the
// comma-split path, and a fully malformed value yields nil.
func NormalizeList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		if items, ok := parseListLiteral(raw); ok {
			return items
		}
		// fall through to comma split
	}

	return splitComma(raw)
}

// parseListLiteral parses a bracketed list of quoted strings.
// Returns ok=false on any malformation so the caller can fall back.
func parseListLiteral(raw string) ([]string, bool) {
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return nil, true
	}

	var items []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(part) < 2 {
			return nil, false
		}
		quote := part[0]
		if (quote != '\'' && quote != '"') || part[len(part)-1] != quote {
			return nil, false
		}
		item := strings.TrimSpace(part[1 : len(part)-1])
		if item != "" {
			items = append(items, item)
		}
	}
	return items, true
}

func splitComma(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseDuration parses a duration cell into minutes. Non-numeric or missing
// values default to 0 with known=false rather than failing the row.
func ParseDuration(raw string) (minutes float64, known bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// ParseBool parses boolean cells ("true"/"yes"/"1" in any case).
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// NormalizeKey converts a vocabulary value into a metadata field key segment:
// lower-cased, spaces and hyphens replaced with underscores.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// NormalizeLanguageKey is NormalizeKey plus substitutions for symbols that
// appear in language names ("C#", "C++").
func NormalizeLanguageKey(s string) string {
	s = NormalizeKey(s)
	s = strings.ReplaceAll(s, "#", "sharp")
	s = strings.ReplaceAll(s, "+", "plus")
	return s
}
