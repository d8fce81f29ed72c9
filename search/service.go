// Package search provides semantic retrieval over ingested chunks.
package search

import (
	"context"
	"strings"

	"github.com/docsem/docsem"
)

// Ensure Service implements docsem.SearchService at compile time.
var _ docsem.SearchService = (*Service)(nil)

// Service implements semantic search: embed the query, find the nearest
// vectors, hydrate the matching chunks from relational storage. It is
// read-only; only the ingestion pipeline writes to either store.
type Service struct {
	Embedder docsem.Embedder
	Index    docsem.VectorIndex
	Chunks   docsem.ChunkService
}

// NewService creates a new Service.
func NewService(embedder docsem.Embedder, index docsem.VectorIndex, chunks docsem.ChunkService) *Service {
	return &Service{Embedder: embedder, Index: index, Chunks: chunks}
}

// Search returns up to k chunks ordered most relevant first.
//
// An empty query returns an empty result rather than an error: "no query"
// is a normal condition distinct from "no matches". Hydration is an
// unordered lookup, so the hydrated chunks are re-ordered into the exact
// order the vector query returned; this reorder is what preserves the
// ranking. Vector matches with no relational row (stale index entries)
// are silently dropped.
func (s *Service) Search(ctx context.Context, query string, k int) ([]*docsem.Chunk, error) {
	if strings.TrimSpace(query) == "" {
		return []*docsem.Chunk{}, nil
	}
	if k <= 0 {
		k = docsem.DefaultSearchLimit
	}

	vector, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := s.Index.Query(ctx, vector, k)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []*docsem.Chunk{}, nil
	}

	ids := make([]string, len(matches))
	for i, match := range matches {
		ids[i] = match.ID
	}

	byID, err := s.Chunks.FindChunksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]*docsem.Chunk, 0, len(matches))
	for _, id := range ids {
		if chunk, ok := byID[id]; ok {
			results = append(results, chunk)
		}
	}

	return results, nil
}
