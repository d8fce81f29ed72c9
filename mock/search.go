package mock

import (
	"context"

	"github.com/docsem/docsem"
)

var _ docsem.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of docsem.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, k int) ([]*docsem.Chunk, error)
}

func (s *SearchService) Search(ctx context.Context, query string, k int) ([]*docsem.Chunk, error) {
	return s.SearchFn(ctx, query, k)
}
