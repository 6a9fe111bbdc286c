package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hireline/assessrec/internal/domain/catalog"
)

// testTypeCategories maps single-letter codes to their catalog category
// names. Codes outside the map render as "Unknown (X)" in content and are
// excluded from category aggregation.
var testTypeCategories = map[string]string{
	"A": "Ability & Aptitude",
	"B": "Biodata & Situational Judgment",
	"C": "Competencies",
	"D": "Development and 360",
	"E": "Assessment Exercises",
	"K": "Knowledge & Skills",
	"P": "Personality & Behavior",
	"S": "Simulation",
}

// Category aggregates group several codes under one filterable flag.
var (
	cognitiveCodes = map[string]bool{"A": true, "K": true}
	personalCodes  = map[string]bool{"P": true}
	technicalCodes = map[string]bool{"K": true, "S": true}
	softSkillCodes = map[string]bool{"C": true, "B": true, "P": true}
)

var idSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Build converts one assessment record into a searchable Document. It must
// run only after the full Vocabulary is computed over the catalog: every
// job-level and language flag in the vocabulary is emitted on every document
// (false where absent), so the metadata key set is identical corpus-wide and
// the index filters consistently.
func Build(rec catalog.Record, vocab catalog.Vocabulary) Document {
	codes := upperCodes(rec.TestTypes)

	content := buildContent(rec, codes)

	tags := map[string]string{
		KeyName:           rec.Name,
		KeyURL:            rec.URL,
		KeyDescription:    rec.Description,
		KeyDurationRange:  DurationRange(rec.Duration, rec.DurationKnown),
		KeySearchKeywords: buildSearchKeywords(rec),
	}

	numerics := map[string]float64{
		KeyDuration: rec.Duration,
	}

	flags := map[string]bool{
		KeyRemoteTesting: rec.RemoteTesting,
		KeyAdaptiveIRT:   rec.AdaptiveIRT,

		KeyContainsCognitive:   anyCode(codes, cognitiveCodes),
		KeyContainsPersonality: anyCode(codes, personalCodes),
		KeyContainsTechnical:   anyCode(codes, technicalCodes),
		KeyContainsSoftSkill:   anyCode(codes, softSkillCodes),

		KeyDurationUnder30: rec.Duration <= 30,
		KeyDurationUnder45: rec.Duration <= 45,
		KeyDurationUnder60: rec.Duration <= 60,
	}

	for _, level := range vocab.JobLevels() {
		flags[FlagJobLevel(catalog.NormalizeKey(level))] = containsFold(rec.JobLevels, level)
	}
	for _, lang := range vocab.Languages() {
		flags[FlagLanguage(catalog.NormalizeLanguageKey(lang))] = containsFold(rec.Languages, lang)
	}
	for _, code := range catalog.TestTypeCodes {
		flags[FlagTestType(code)] = containsFold(codes, code)
	}

	return Document{
		id:       DocID(rec.Name),
		content:  content,
		tags:     tags,
		numerics: numerics,
		flags:    flags,
	}
}

// DocID derives a stable document identifier from the assessment name, so
// re-running ingestion upserts rather than duplicates.
func DocID(name string) string {
	id := idSanitizer.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "assessment"
	}
	return id
}

// TestTypes returns the codes whose test_type_* flag is set, in alphabet order.
func (d *Document) TestTypes() []string {
	var codes []string
	for _, code := range catalog.TestTypeCodes {
		if d.flags[FlagTestType(code)] {
			codes = append(codes, code)
		}
	}
	return codes
}

// buildContent composes the human/embedding-readable text for one record.
// The phrasing is part of the index contract: it is what the embedding model
// sees, so changing it invalidates stored vectors.
func buildContent(rec catalog.Record, codes []string) string {
	levels := "various job levels"
	if len(rec.JobLevels) > 0 {
		levels = strings.Join(rec.JobLevels, " and ")
	}
	languages := "multiple languages"
	if len(rec.Languages) > 0 {
		languages = strings.Join(rec.Languages, " and ")
	}
	types := "various assessments"
	if len(codes) > 0 {
		types = strings.Join(codes, ", ")
	}

	detailed := "No test types specified"
	if len(codes) > 0 {
		pairs := make([]string, len(codes))
		for i, code := range codes {
			category, ok := testTypeCategories[code]
			if !ok {
				category = fmt.Sprintf("Unknown (%s)", code)
			}
			pairs[i] = fmt.Sprintf("%s: %s", code, category)
		}
		detailed = strings.Join(pairs, ", ")
	}

	remote := "Not available"
	if rec.RemoteTesting {
		remote = "Available"
	}
	adaptive := "No"
	if rec.AdaptiveIRT {
		adaptive = "Yes"
	}

	return fmt.Sprintf(
		"%s: A %s position in %s. Job Description: %s Test Types: %s "+
			"Detailed Test Types: %s Duration: %g minutes Remote Testing: %s Adaptive Testing: %s",
		rec.Name, levels, languages, rec.Description, types, detailed, rec.Duration, remote, adaptive,
	)
}

// buildSearchKeywords flattens the record into a lower-cased keyword blob.
func buildSearchKeywords(rec catalog.Record) string {
	parts := []string{rec.Name, rec.Description}
	parts = append(parts, rec.JobLevels...)
	parts = append(parts, rec.Languages...)
	parts = append(parts, rec.TestTypes...)
	return strings.ToLower(strings.Join(parts, " "))
}

func upperCodes(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func anyCode(codes []string, set map[string]bool) bool {
	for _, c := range codes {
		if set[c] {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}
