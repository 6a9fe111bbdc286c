// Package db defines the storage contract for the assessment index. The
// similarity-search engine is an external capability; this package is its
// narrow boundary: flat hash documents, an FT index over their filterable
// fields, and KNN search with an optional metadata pre-filter.
package db

import (
	"context"
	"time"

	"github.com/hireline/assessrec/internal/domain/search/filter"
)

// Store is the database facade. Consumers depend on narrow sub-interfaces.
type Store interface {
	Pinger
	HashStore
	KVStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based document storage.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// KVStore provides simple key-value operations (catalog snapshots).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides KNN search over FT indexes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// KNNQuery describes a vector similarity search with optional pre-filter.
type KNNQuery struct {
	IndexName    string
	Filter       filter.Filter
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchEntry is one hit: the storage key, similarity score, and the
// returned hash fields.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a raw FT.SEARCH response.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// StorageType is the FT index storage backend.
type StorageType string

// StorageHash indexes flat HASH keys.
const StorageHash StorageType = "HASH"

// IndexFieldType is an FT schema field type.
type IndexFieldType string

// FT schema field types used by the assessment index.
const (
	IndexFieldTag     IndexFieldType = "TAG"
	IndexFieldNumeric IndexFieldType = "NUMERIC"
	IndexFieldVector  IndexFieldType = "VECTOR"
)

// DistanceMetric is a vector distance function.
type DistanceMetric string

// DistanceCosine is the only metric the assessment index uses.
const DistanceCosine DistanceMetric = "COSINE"

// IndexField is one FT schema field.
type IndexField struct {
	Name              string
	Alias             string // AS alias in FT.CREATE SCHEMA
	Type              IndexFieldType
	VectorDim         int
	VectorDistance    DistanceMetric
	VectorM           int
	VectorEFConstruct int
}

// IndexDefinition describes an FT index.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}
