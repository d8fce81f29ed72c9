package docsem

import "context"

// VectorMetadata is the payload stored alongside each vector. It is a
// denormalized copy for inspection; the relational row remains the source
// of truth.
type VectorMetadata struct {
	Title     string
	SourceURL string
}

// VectorMatch is one nearest-neighbor result. Distance is monotonic:
// smaller means more similar.
type VectorMatch struct {
	ID       string
	Distance float32
}

// VectorIndex wraps a persistent vector store shared by ingestion and
// search. Entry IDs are the relational chunk IDs, establishing the 1:1
// cross-store link.
type VectorIndex interface {
	// Upsert stores or replaces the vector for id.
	Upsert(ctx context.Context, id string, vector []float32, meta VectorMetadata) error

	// Query returns up to k matches ordered nearest-first. If fewer than k
	// vectors are stored, all available matches are returned.
	Query(ctx context.Context, vector []float32, k int) ([]VectorMatch, error)

	// Close releases the connection to the store.
	Close() error
}
