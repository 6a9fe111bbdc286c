// Package filter holds the compiled metadata filter passed to the similarity
// index. A filter is zero or more field=value equalities combined with OR:
// the compiler deliberately widens recall instead of narrowing it, so a query
// matching several vocabulary terms returns documents satisfying any of them.
package filter

import "fmt"

// MaxConditions bounds filter size; a natural-language query can only match
// so many vocabulary terms before the filter stops being selective.
const MaxConditions = 32

// Condition is a single field=value equality over a tag field.
type Condition struct {
	key   string
	match string
}

// NewCondition validates and creates an equality condition.
func NewCondition(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// Key returns the metadata field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Filter is a disjunction of equality conditions. The zero value is the
// absent filter (unconstrained search).
type Filter struct {
	conditions []Condition
}

// New validates and creates a Filter from OR-combined conditions.
func New(conditions []Condition) (Filter, error) {
	if len(conditions) > MaxConditions {
		return Filter{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	return Filter{conditions: conditions}, nil
}

// Conditions returns the OR-combined conditions.
func (f Filter) Conditions() []Condition { return f.conditions }

// IsEmpty reports whether the filter has no conditions.
func (f Filter) IsEmpty() bool { return len(f.conditions) == 0 }
