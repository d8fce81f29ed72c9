package docsem

import "context"

// Embedder computes fixed-length vector embeddings for text. The same
// embedder (same model, same dimension) must be used at ingestion time and
// at query time for distances to be comparable.
type Embedder interface {
	// Embed returns the embedding vector for text.
	// Returns EUNAVAILABLE if the embedding provider fails.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the fixed length of vectors produced by Embed.
	Dimension() int
}
