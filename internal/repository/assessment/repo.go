// Package assessment persists searchable assessment documents and manages
// the FT index their metadata is filtered through.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hireline/assessrec/internal/db"
	"github.com/hireline/assessrec/internal/domain"
	"github.com/hireline/assessrec/internal/domain/catalog"
	domdoc "github.com/hireline/assessrec/internal/domain/document"
)

// KeyPrefix namespaces all assessment keys in the store.
const KeyPrefix = "assessrec:"

// HNSWConfig holds vector index tuning parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// store is the consumer interface for assessment persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements the ingestion and lookup side of assessment storage.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates an assessment repository.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW overrides HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// Upsert stores one document as a flat hash.
func (r *Repo) Upsert(ctx context.Context, collection string, doc *domdoc.Document) error {
	key := docKey(collection, doc.ID())
	if err := r.store.HSet(ctx, key, buildHashFields(doc)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// UpsertMulti stores a batch of documents in one round-trip.
func (r *Repo) UpsertMulti(ctx context.Context, collection string, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	items := make([]db.HashSetItem, len(docs))
	for i := range docs {
		items[i] = db.HashSetItem{
			Key:    docKey(collection, docs[i].ID()),
			Fields: buildHashFields(&docs[i]),
		}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi (%d docs): %w", len(docs), err)
	}
	return nil
}

// Get returns one document by ID.
func (r *Repo) Get(ctx context.Context, collection, id string) (domdoc.Document, error) {
	key := docKey(collection, id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domdoc.Document{}, domain.ErrIndexNotFound
	}
	content, vector, tags, numerics, flags := SplitHashFields(fields)
	return domdoc.Reconstruct(id, content, tags, numerics, flags, vector), nil
}

// EnsureIndex recreates the FT index with a schema derived from the
// vocabulary: every filterable flag becomes a TAG field, duration is
// NUMERIC, and the content vector uses HNSW with cosine distance. Ingestion
// drops and recreates so vocabulary growth is reflected in the schema.
func (r *Repo) EnsureIndex(ctx context.Context, collection string, vocab catalog.Vocabulary) error {
	idx := IndexName(collection)

	if err := r.store.DropIndex(ctx, idx); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", idx, err)
	}

	b := db.NewIndex(idx).
		Prefix(collectionPrefix(collection)).
		Numeric(domdoc.KeyDuration).
		Tag(domdoc.KeyDurationRange).
		Tag(domdoc.KeyRemoteTesting).
		Tag(domdoc.KeyAdaptiveIRT).
		Tag(domdoc.KeyContainsCognitive).
		Tag(domdoc.KeyContainsPersonality).
		Tag(domdoc.KeyContainsTechnical).
		Tag(domdoc.KeyContainsSoftSkill).
		Tag(domdoc.KeyDurationUnder30).
		Tag(domdoc.KeyDurationUnder45).
		Tag(domdoc.KeyDurationUnder60)

	for _, level := range vocab.JobLevels() {
		b.Tag(domdoc.FlagJobLevel(catalog.NormalizeKey(level)))
	}
	for _, lang := range vocab.Languages() {
		b.Tag(domdoc.FlagLanguage(catalog.NormalizeLanguageKey(lang)))
	}
	for _, code := range catalog.TestTypeCodes {
		b.Tag(domdoc.FlagTestType(code))
	}

	b.VectorHNSW("__vector", "vector", r.vectorDim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct)

	def, err := b.Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index %s: %w", idx, err)
	}
	return nil
}

// IndexReady reports whether the FT index exists.
func (r *Repo) IndexReady(ctx context.Context, collection string) (bool, error) {
	return r.store.IndexExists(ctx, IndexName(collection))
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context, collection string) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName(collection), "*")
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

// vocabularyDTO is the stored vocabulary snapshot.
type vocabularyDTO struct {
	JobLevels []string `json:"job_levels"`
	Languages []string `json:"languages"`
}

// SaveVocabulary persists the corpus vocabulary alongside the index so
// operators can inspect what flag fields the schema was derived from.
func (r *Repo) SaveVocabulary(ctx context.Context, collection string, vocab catalog.Vocabulary) error {
	data, err := json.Marshal(vocabularyDTO{
		JobLevels: vocab.JobLevels(),
		Languages: vocab.Languages(),
	})
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}
	if err := r.store.Set(ctx, vocabKey(collection), data); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	return nil
}

// LoadVocabulary returns the vocabulary snapshot stored at ingestion.
func (r *Repo) LoadVocabulary(ctx context.Context, collection string) (catalog.Vocabulary, error) {
	raw, err := r.store.Get(ctx, vocabKey(collection))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return catalog.Vocabulary{}, domain.ErrIndexNotFound
		}
		return catalog.Vocabulary{}, fmt.Errorf("load vocabulary: %w", err)
	}
	var dto vocabularyDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return catalog.Vocabulary{}, fmt.Errorf("unmarshal vocabulary: %w", err)
	}
	return catalog.ReconstructVocabulary(dto.JobLevels, dto.Languages), nil
}

// IndexName returns the FT index name for a collection.
func IndexName(collection string) string {
	return fmt.Sprintf("%s%s:idx", KeyPrefix, collection)
}

func collectionPrefix(collection string) string {
	return fmt.Sprintf("%s%s:doc:", KeyPrefix, collection)
}

func docKey(collection, id string) string {
	return collectionPrefix(collection) + id
}

func vocabKey(collection string) string {
	return fmt.Sprintf("%s%s:vocabulary", KeyPrefix, collection)
}
