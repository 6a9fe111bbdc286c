package search

import (
	"context"
	"errors"
	"testing"

	"github.com/hireline/assessrec/internal/db"
	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/search/filter"
)

type mockStore struct {
	lastQuery *db.KNNQuery
	result    *db.SearchResult
	err       error
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	return m.result, m.err
}

func TestSearchKNN(t *testing.T) {
	store := &mockStore{
		result: &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{{
				Key:   "assessrec:assessments:doc:verify-g",
				Score: 0.87,
				Fields: map[string]string{
					"content":          "Verify G+: content",
					"name":             "Verify G+",
					"url":              "https://example.com/v",
					"duration":         "24",
					"contains_ability": "true",
				},
			}},
		},
	}
	repo := New(store)

	cond, err := filter.NewCondition("contains_ability", "true")
	if err != nil {
		t.Fatal(err)
	}
	f, err := filter.New([]filter.Condition{cond})
	if err != nil {
		t.Fatal(err)
	}

	hits, err := repo.SearchKNN(context.Background(), "assessments", []float32{0.1, 0.2}, f, 5)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}

	if store.lastQuery.IndexName != "assessrec:assessments:idx" {
		t.Errorf("index = %q", store.lastQuery.IndexName)
	}
	if store.lastQuery.K != 5 {
		t.Errorf("k = %d, want 5", store.lastQuery.K)
	}

	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	hit := hits[0]
	if hit.ID() != "verify-g" {
		t.Errorf("id = %q, want verify-g (key prefix trimmed)", hit.ID())
	}
	if hit.Score() != 0.87 {
		t.Errorf("score = %v", hit.Score())
	}
	if hit.Tags()["name"] != "Verify G+" {
		t.Errorf("name = %q", hit.Tags()["name"])
	}
	if hit.Duration() != 24 {
		t.Errorf("duration = %v", hit.Duration())
	}
	if !hit.Flags()["contains_ability"] {
		t.Error("contains_ability flag lost in hydration")
	}
}

func TestSearchKNNIndexMissing(t *testing.T) {
	repo := New(&mockStore{err: db.ErrIndexNotFound})

	_, err := repo.SearchKNN(context.Background(), "assessments", []float32{0.1}, filter.Filter{}, 5)
	if !errors.Is(err, domain.ErrIndexNotFound) {
		t.Fatalf("err = %v, want domain.ErrIndexNotFound", err)
	}
}

func TestSearchKNNEmptyResult(t *testing.T) {
	repo := New(&mockStore{result: &db.SearchResult{}})

	hits, err := repo.SearchKNN(context.Background(), "assessments", []float32{0.1}, filter.Filter{}, 5)
	if err != nil {
		t.Fatalf("SearchKNN: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want 0", len(hits))
	}
}
