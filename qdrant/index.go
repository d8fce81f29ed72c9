// Package qdrant provides a Qdrant-backed implementation of
// docsem.VectorIndex. The index is persistent and shared between ingestion
// and search; entry IDs are the relational chunk IDs.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/docsem/docsem"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollectionName is the Qdrant collection holding chunk vectors.
const DefaultCollectionName = "chunks"

// Ensure Index implements docsem.VectorIndex at compile time.
var _ docsem.VectorIndex = (*Index)(nil)

// Index wraps a Qdrant collection of chunk embeddings.
type Index struct {
	client     *qdrant.Client
	collection string
	dimension  uint64
}

// Option configures an Index.
type Option func(*Index)

// WithCollection overrides the collection name.
// Defaults to DefaultCollectionName.
func WithCollection(name string) Option {
	return func(idx *Index) {
		idx.collection = name
	}
}

// NewIndex connects to Qdrant and ensures the chunk collection exists with
// the given vector dimension. The dimension must match the embedder used
// for both ingestion and query.
func NewIndex(host string, port int, dimension int, opts ...Option) (*Index, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, docsem.Errorf(docsem.EUNAVAILABLE, "failed to create qdrant client: %v", err)
	}

	idx := &Index{
		client:     client,
		collection: DefaultCollectionName,
		dimension:  uint64(dimension),
	}
	for _, opt := range opts {
		opt(idx)
	}

	if err := idx.ensureCollection(context.Background()); err != nil {
		client.Close()
		return nil, err
	}

	return idx, nil
}

// ensureCollection creates the collection if it doesn't exist.
// Idempotent, safe to call on every startup.
func (idx *Index) ensureCollection(ctx context.Context) error {
	collections, err := idx.client.ListCollections(ctx)
	if err != nil {
		return docsem.Errorf(docsem.EUNAVAILABLE, "failed to list qdrant collections: %v", err)
	}

	for _, name := range collections {
		if name == idx.collection {
			return nil
		}
	}

	err = idx.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: idx.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     idx.dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return docsem.Errorf(docsem.EUNAVAILABLE, "failed to create qdrant collection: %v", err)
	}

	return nil
}

// Upsert stores or replaces the vector for id, along with a metadata copy
// of the chunk's title and source URL.
func (idx *Index) Upsert(ctx context.Context, id string, vector []float32, meta docsem.VectorMetadata) error {
	if uint64(len(vector)) != idx.dimension {
		return docsem.Errorf(docsem.EINVALID, "vector has %d dimensions, expected %d", len(vector), idx.dimension)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(id),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]any{
			"title":      meta.Title,
			"source_url": meta.SourceURL,
		}),
	}

	// Retry transient failures with exponential backoff; the relational row
	// is already durable, so a lost vector write would leave the index
	// lagging until the next ingest. Rejections the server will repeat
	// (bad arguments, missing collection) are not retried.
	operation := func() error {
		_, err := idx.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: idx.collection,
			Points:         []*qdrant.PointStruct{point},
		})
		if err != nil && !isTransientError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return docsem.Errorf(docsem.EUNAVAILABLE, "failed to upsert vector: %v", err)
	}

	return nil
}

// Query returns up to k matches ordered nearest-first. Qdrant reports
// cosine similarity (higher is closer); it is converted to a distance
// (1 - similarity) so that smaller always means more similar.
func (idx *Index) Query(ctx context.Context, vector []float32, k int) ([]docsem.VectorMatch, error) {
	if uint64(len(vector)) != idx.dimension {
		return nil, docsem.Errorf(docsem.EINVALID, "query vector has %d dimensions, expected %d", len(vector), idx.dimension)
	}

	results, err := idx.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: idx.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
	})
	if err != nil {
		return nil, docsem.Errorf(docsem.EUNAVAILABLE, "vector query failed: %v", err)
	}

	matches := make([]docsem.VectorMatch, 0, len(results))
	for _, result := range results {
		matches = append(matches, docsem.VectorMatch{
			ID:       result.Id.GetUuid(),
			Distance: 1 - result.Score,
		})
	}

	return matches, nil
}

// isTransientError reports whether a Qdrant RPC failure is worth retrying.
// Anything else is treated as permanent: the server would reject the same
// request again.
func isTransientError(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted:
		return true
	}
	return false
}

// Close closes the Qdrant client connection.
func (idx *Index) Close() error {
	if idx.client != nil {
		if err := idx.client.Close(); err != nil {
			return fmt.Errorf("failed to close qdrant client: %w", err)
		}
	}
	return nil
}
