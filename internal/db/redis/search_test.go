package redis

import (
	"testing"

	"github.com/hireline/assessrec/internal/domain/search/filter"
)

func mustFilter(t *testing.T, pairs ...string) filter.Filter {
	t.Helper()
	var conds []filter.Condition
	for i := 0; i+1 < len(pairs); i += 2 {
		c, err := filter.NewCondition(pairs[i], pairs[i+1])
		if err != nil {
			t.Fatalf("NewCondition: %v", err)
		}
		conds = append(conds, c)
	}
	f, err := filter.New(conds)
	if err != nil {
		t.Fatalf("New filter: %v", err)
	}
	return f
}

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name string
		f    filter.Filter
		want string
	}{
		{"empty", filter.Filter{}, ""},
		{
			"single condition",
			mustFilter(t, "contains_cognitive", "true"),
			"@contains_cognitive:{true}",
		},
		{
			"or group",
			mustFilter(t, "contains_cognitive", "true", "duration_range", "short"),
			"(@contains_cognitive:{true} | @duration_range:{short})",
		},
		{
			"escaped value",
			mustFilter(t, "duration_range", "very_short and more"),
			`@duration_range:{very_short\ and\ more}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildFilter(tt.f); got != tt.want {
				t.Errorf("buildFilter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVectorToBytes(t *testing.T) {
	b := vectorToBytes([]float32{1.0, -2.5})
	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
	if vectorToBytes(nil) != "" {
		t.Error("nil vector should serialize to empty string")
	}
}
