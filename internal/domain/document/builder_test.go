package document

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hireline/assessrec/internal/domain/catalog"
)

func testVocabulary() catalog.Vocabulary {
	return catalog.ReconstructVocabulary(
		[]string{"manager", "entry-level", "graduate"},
		[]string{"english", "french", "chinese simplified"},
	)
}

func testRecord() catalog.Record {
	return catalog.Record{
		Name:          "Verify G+",
		URL:           "https://example.com/verify-g-plus",
		Description:   "A cognitive ability assessment.",
		Duration:      24,
		DurationKnown: true,
		RemoteTesting: true,
		AdaptiveIRT:   true,
		JobLevels:     []string{"Manager", "Graduate"},
		Languages:     []string{"English"},
		TestTypes:     []string{"A"},
	}
}

func TestBuildMetadataCompleteness(t *testing.T) {
	vocab := testVocabulary()
	doc := Build(testRecord(), vocab)

	// Every vocabulary value must appear as a flag, true or false.
	wantFlags := []string{
		"job_level_manager", "job_level_entry_level", "job_level_graduate",
		"language_english", "language_french", "language_chinese_simplified",
		"contains_cognitive", "contains_personality", "contains_technical", "contains_soft_skill",
		"duration_under_30", "duration_under_45", "duration_under_60",
		"remote_testing", "adaptive_irt",
	}
	for _, code := range catalog.TestTypeCodes {
		wantFlags = append(wantFlags, FlagTestType(code))
	}
	for _, key := range wantFlags {
		if _, ok := doc.Flags()[key]; !ok {
			t.Errorf("missing flag %q", key)
		}
	}

	for _, key := range []string{KeyName, KeyURL, KeyDescription, KeySearchKeywords, KeyDurationRange} {
		if _, ok := doc.Tags()[key]; !ok {
			t.Errorf("missing tag %q", key)
		}
	}
	if doc.Duration() != 24 {
		t.Errorf("Duration() = %v, want 24", doc.Duration())
	}
}

func TestBuildFlagValues(t *testing.T) {
	doc := Build(testRecord(), testVocabulary())

	truthy := []string{
		"job_level_manager", "job_level_graduate",
		"language_english",
		"test_type_A",
		"contains_cognitive",
		"remote_testing", "adaptive_irt",
		"duration_under_30", "duration_under_45", "duration_under_60",
	}
	for _, key := range truthy {
		if !doc.Flags()[key] {
			t.Errorf("flag %q = false, want true", key)
		}
	}

	falsy := []string{
		"job_level_entry_level",
		"language_french", "language_chinese_simplified",
		"test_type_P", "test_type_K",
		"contains_personality", "contains_technical", "contains_soft_skill",
	}
	for _, key := range falsy {
		if doc.Flags()[key] {
			t.Errorf("flag %q = true, want false", key)
		}
	}

	if got := doc.Tags()[KeyDurationRange]; got != RangeShort {
		t.Errorf("duration_range = %q, want %q", got, RangeShort)
	}
}

func TestBuildCategoryAggregates(t *testing.T) {
	// K is cognitive and technical; P is personality and soft skill.
	// Together they light up all four aggregates.
	rec := testRecord()
	rec.TestTypes = []string{"K", "P"}

	doc := Build(rec, testVocabulary())

	for _, key := range []string{
		KeyContainsCognitive, KeyContainsPersonality,
		KeyContainsTechnical, KeyContainsSoftSkill,
	} {
		if !doc.Flags()[key] {
			t.Errorf("flag %q = false, want true for test types K,P", key)
		}
	}

	if got := doc.TestTypes(); !reflect.DeepEqual(got, []string{"K", "P"}) {
		t.Errorf("TestTypes() = %v, want [K P]", got)
	}
}

func TestBuildContent(t *testing.T) {
	doc := Build(testRecord(), testVocabulary())

	want := "Verify G+: A Manager and Graduate position in English. " +
		"Job Description: A cognitive ability assessment. " +
		"Test Types: A " +
		"Detailed Test Types: A: Ability & Aptitude " +
		"Duration: 24 minutes Remote Testing: Available Adaptive Testing: Yes"
	if doc.Content() != want {
		t.Errorf("content mismatch:\n got: %s\nwant: %s", doc.Content(), want)
	}
}

func TestBuildContentFallbacks(t *testing.T) {
	rec := catalog.Record{
		Name:        "Generic Test",
		Description: "Desc.",
	}

	doc := Build(rec, catalog.Vocabulary{})

	content := doc.Content()
	for _, want := range []string{
		"various job levels", "multiple languages",
		"various assessments", "No test types specified",
		"Remote Testing: Not available", "Adaptive Testing: No",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q: %s", want, content)
		}
	}
}

func TestBuildUnknownTestTypeCode(t *testing.T) {
	rec := testRecord()
	rec.TestTypes = []string{"X"}

	doc := Build(rec, testVocabulary())

	if !strings.Contains(doc.Content(), "X: Unknown (X)") {
		t.Errorf("content should render unknown codes: %s", doc.Content())
	}
	for _, code := range catalog.TestTypeCodes {
		if doc.Flags()[FlagTestType(code)] {
			t.Errorf("flag %s = true, want false for unknown code", FlagTestType(code))
		}
	}
}

func TestBuildUnknownDuration(t *testing.T) {
	rec := testRecord()
	rec.Duration = 0
	rec.DurationKnown = false

	doc := Build(rec, testVocabulary())

	if got := doc.Tags()[KeyDurationRange]; got != RangeUnknown {
		t.Errorf("duration_range = %q, want %q", got, RangeUnknown)
	}
}

func TestBuildZeroDurationIsVeryShort(t *testing.T) {
	rec := testRecord()
	rec.Duration = 0
	rec.DurationKnown = true

	doc := Build(rec, testVocabulary())

	if got := doc.Tags()[KeyDurationRange]; got != RangeVeryShort {
		t.Errorf("duration_range = %q, want %q", got, RangeVeryShort)
	}
}

func TestBuildDeterministic(t *testing.T) {
	rec := testRecord()
	vocab := testVocabulary()

	first := Build(rec, vocab)
	second := Build(rec, vocab)

	if first.Content() != second.Content() ||
		first.ID() != second.ID() ||
		!reflect.DeepEqual(first.Flags(), second.Flags()) ||
		!reflect.DeepEqual(first.Tags(), second.Tags()) {
		t.Error("Build is not deterministic for the same inputs")
	}
}

func TestDurationRange(t *testing.T) {
	tests := []struct {
		minutes float64
		known   bool
		want    string
	}{
		{10, true, RangeVeryShort},
		{15, true, RangeVeryShort},
		{16, true, RangeShort},
		{30, true, RangeShort},
		{45, true, RangeMedium},
		{60, true, RangeStandard},
		{61, true, RangeLong},
		{0, false, RangeUnknown},
	}
	for _, tt := range tests {
		if got := DurationRange(tt.minutes, tt.known); got != tt.want {
			t.Errorf("DurationRange(%v, %v) = %q, want %q", tt.minutes, tt.known, got, tt.want)
		}
	}
}

func TestDocID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Verify G+", "verify-g"},
		{"  Agile Software Development  ", "agile-software-development"},
		{"360° Feedback", "360-feedback"},
		{"***", "assessment"},
	}
	for _, tt := range tests {
		if got := DocID(tt.name); got != tt.want {
			t.Errorf("DocID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
