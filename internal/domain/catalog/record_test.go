package catalog

import (
	"reflect"
	"testing"
)

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"list literal single quotes", `['English', 'French']`, []string{"English", "French"}},
		{"list literal double quotes", `["Manager", "Supervisor"]`, []string{"Manager", "Supervisor"}},
		{"empty literal", "[]", nil},
		{"comma separated", "English, French , German", []string{"English", "French", "German"}},
		{"single value", "English", []string{"English"}},
		{"trailing comma", "A, B,", []string{"A", "B"}},
		// Malformed literal falls back to the comma split, brackets and all.
		{"unquoted literal", "[English, French]", []string{"[English", "French]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeList(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeListIdempotent(t *testing.T) {
	once := NormalizeList("A, B, C")
	twice := NormalizeList(joinComma(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization not idempotent: %v vs %v", once, twice)
	}
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw       string
		want      float64
		wantKnown bool
	}{
		{"30", 30, true},
		{"12.5", 12.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"-5", 0, false},
	}

	for _, tt := range tests {
		got, known := ParseDuration(tt.raw)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf("ParseDuration(%q) = (%v, %v), want (%v, %v)",
				tt.raw, got, known, tt.want, tt.wantKnown)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, truthy := range []string{"true", "True", "YES", "y", "1", " true "} {
		if !ParseBool(truthy) {
			t.Errorf("ParseBool(%q) = false, want true", truthy)
		}
	}
	for _, falsy := range []string{"", "false", "no", "0", "maybe"} {
		if ParseBool(falsy) {
			t.Errorf("ParseBool(%q) = true, want false", falsy)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Entry-Level", "entry_level"},
		{"Front Line Manager", "front_line_manager"},
		{"  Graduate ", "graduate"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLanguageKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Chinese Simplified", "chinese_simplified"},
		{"C#", "csharp"},
		{"C++", "cplusplus"},
	}
	for _, tt := range tests {
		if got := NormalizeLanguageKey(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguageKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
