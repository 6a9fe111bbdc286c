package domain

import "errors"

var (
	// ErrExtractionFailed signals that a job page could not be fetched or parsed.
	ErrExtractionFailed = errors.New("job description extraction failed")
	// ErrGenerationFailed signals that the text-generation provider could not
	// produce a search query.
	ErrGenerationFailed = errors.New("search query generation failed")
	// ErrRetrievalFailed signals that the similarity index is unreachable or
	// rejected the query.
	ErrRetrievalFailed = errors.New("assessment retrieval failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexNotFound signals that the assessment index has not been ingested.
	ErrIndexNotFound = errors.New("assessment index not found")
	// ErrEmptyCatalog signals an ingestion source with no usable rows.
	ErrEmptyCatalog = errors.New("catalog has no records")
)
