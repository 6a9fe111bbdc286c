// Package query compiles free-text search queries into metadata filters.
// The compiler is rule-based: it scans for known vocabulary phrases and
// emits one equality condition per hit, OR-combined (see filter package).
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hireline/assessrec/internal/domain/catalog"
	"github.com/hireline/assessrec/internal/domain/document"
	"github.com/hireline/assessrec/internal/domain/search/filter"
)

// jobLevelPhrases is the fixed list of job-level phrases the compiler
// recognizes. It mirrors the catalog's job-level vocabulary; phrase keys
// normalize exactly the way the document builder normalizes flag keys.
var jobLevelPhrases = []string{
	"analyst", "director", "entry-level", "executive", "front line manager",
	"general population", "graduate", "manager", "mid-professional",
	"professional individual contributor", "supervisor",
}

// languageNames is the fixed list of language names the compiler recognizes.
var languageNames = []string{
	"arabic", "chinese simplified", "chinese traditional", "czech", "danish",
	"dutch", "english", "estonian", "finnish", "flemish", "french", "german",
	"greek", "hungarian", "icelandic", "indonesian", "italian", "japanese",
	"korean", "latvian", "lithuanian", "malay", "norwegian", "polish",
	"portuguese", "romanian", "russian", "serbian", "slovak", "spanish",
	"swedish", "thai", "turkish", "vietnamese",
}

// categoryPatterns maps keyword groups to the category aggregate flags.
var categoryPatterns = []struct {
	re  *regexp.Regexp
	key string
}{
	{regexp.MustCompile(`\b(cognitive|ability|aptitude)\b`), document.KeyContainsCognitive},
	{regexp.MustCompile(`\b(personality|behavior|behaviour)\b`), document.KeyContainsPersonality},
	{regexp.MustCompile(`\b(technical|knowledge|skill)\b`), document.KeyContainsTechnical},
	{regexp.MustCompile(`\b(soft skill|competenc|situational|judgment)\b`), document.KeyContainsSoftSkill},
}

var (
	durationFilterRe = regexp.MustCompile(`(\d+)\s*(min|mins|minutes)`)
	// The post-filter accepts only the long form. Narrower than the filter
	// regex on purpose: behavior carried over from the legacy pipeline.
	maxDurationRe = regexp.MustCompile(`(\d+)\s*minutes`)

	jobLevelRes = compilePhraseRes(jobLevelPhrases)
	languageRes = compilePhraseRes(languageNames)
)

func compilePhraseRes(phrases []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(phrases))
	for i, p := range phrases {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)
	}
	return res
}

// Compile scans a free-text query and produces the metadata filter. All
// matched conditions are OR-combined; zero matches yields the empty filter
// (unconstrained similarity search).
func Compile(q string) filter.Filter {
	q = strings.ToLower(q)
	var conditions []filter.Condition

	add := func(key, match string) {
		if c, err := filter.NewCondition(key, match); err == nil {
			conditions = append(conditions, c)
		}
	}

	for i, re := range jobLevelRes {
		if re.MatchString(q) {
			add(document.FlagJobLevel(catalog.NormalizeKey(jobLevelPhrases[i])), "true")
		}
	}

	for _, cp := range categoryPatterns {
		if cp.re.MatchString(q) {
			add(cp.key, "true")
		}
	}

	if m := durationFilterRe.FindStringSubmatch(q); m != nil {
		if minutes, err := strconv.Atoi(m[1]); err == nil {
			// Asymmetric on purpose: short windows constrain the range tag,
			// longer ones use the cumulative threshold flags.
			switch {
			case minutes <= 15:
				add(document.KeyDurationRange, document.RangeVeryShort)
			case minutes <= 30:
				add(document.KeyDurationRange, document.RangeShort)
			case minutes <= 45:
				add(document.KeyDurationUnder45, "true")
			case minutes <= 60:
				add(document.KeyDurationUnder60, "true")
			}
		}
	}

	for i, re := range languageRes {
		if re.MatchString(q) {
			add(document.FlagLanguage(catalog.NormalizeLanguageKey(languageNames[i])), "true")
		}
	}

	if strings.Contains(q, "remote") {
		add(document.KeyRemoteTesting, "true")
	}
	if strings.Contains(q, "adaptive") {
		add(document.KeyAdaptiveIRT, "true")
	}

	f, err := filter.New(conditions)
	if err != nil {
		// Over-long condition lists degrade to unconstrained search.
		return filter.Filter{}
	}
	return f
}

// MaxDuration extracts a maximum-duration constraint in minutes from the
// query, used for numeric post-filtering of retrieval results.
func MaxDuration(q string) (float64, bool) {
	m := maxDurationRe.FindStringSubmatch(strings.ToLower(q))
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return float64(minutes), true
}

// DurationPhrase returns the matched duration phrase (e.g. "20 minutes")
// from the query, for re-appending to generated search queries.
func DurationPhrase(q string) (string, bool) {
	m := maxDurationRe.FindString(strings.ToLower(q))
	if m == "" {
		return "", false
	}
	return m, true
}
