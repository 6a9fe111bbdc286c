package catalog

import (
	"sort"
	"strings"
)

// Vocabulary is the corpus-wide set of distinct job-level and language
// values, computed once over the full catalog before any document is built.
// Document flag keys and query filter keys are both derived from it, so the
// two sides always share one naming scheme.
type Vocabulary struct {
	jobLevels []string // case-folded, sorted
	languages []string // case-folded, sorted
}

// BuildVocabulary collects the case-folded union of job levels and languages
// across all records. The result is deterministic for a given catalog.
func BuildVocabulary(records []Record) Vocabulary {
	levels := make(map[string]struct{})
	langs := make(map[string]struct{})

	for i := range records {
		for _, l := range records[i].JobLevels {
			if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
				levels[l] = struct{}{}
			}
		}
		for _, l := range records[i].Languages {
			if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
				langs[l] = struct{}{}
			}
		}
	}

	return Vocabulary{
		jobLevels: sortedKeys(levels),
		languages: sortedKeys(langs),
	}
}

// ReconstructVocabulary rebuilds a Vocabulary from stored value lists.
func ReconstructVocabulary(jobLevels, languages []string) Vocabulary {
	jl := make([]string, 0, len(jobLevels))
	for _, l := range jobLevels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			jl = append(jl, l)
		}
	}
	lg := make([]string, 0, len(languages))
	for _, l := range languages {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			lg = append(lg, l)
		}
	}
	sort.Strings(jl)
	sort.Strings(lg)
	return Vocabulary{jobLevels: jl, languages: lg}
}

// JobLevels returns the case-folded job-level values, sorted.
func (v Vocabulary) JobLevels() []string { return v.jobLevels }

// Languages returns the case-folded language values, sorted.
func (v Vocabulary) Languages() []string { return v.languages }

// IsEmpty reports whether the vocabulary has no values at all.
func (v Vocabulary) IsEmpty() bool {
	return len(v.jobLevels) == 0 && len(v.languages) == 0
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
