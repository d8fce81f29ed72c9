package mock

import (
	"context"

	"github.com/docsem/docsem"
)

var _ docsem.ChunkService = (*ChunkService)(nil)

// ChunkService is a mock implementation of docsem.ChunkService.
type ChunkService struct {
	UpsertChunkFn     func(ctx context.Context, chunk *docsem.Chunk) (bool, error)
	FindChunkByIDFn   func(ctx context.Context, id string) (*docsem.Chunk, error)
	FindChunksByIDsFn func(ctx context.Context, ids []string) (map[string]*docsem.Chunk, error)
	SearchTextFn      func(ctx context.Context, query string) ([]*docsem.Chunk, error)
}

func (s *ChunkService) UpsertChunk(ctx context.Context, chunk *docsem.Chunk) (bool, error) {
	return s.UpsertChunkFn(ctx, chunk)
}

func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*docsem.Chunk, error) {
	return s.FindChunkByIDFn(ctx, id)
}

func (s *ChunkService) FindChunksByIDs(ctx context.Context, ids []string) (map[string]*docsem.Chunk, error) {
	return s.FindChunksByIDsFn(ctx, ids)
}

func (s *ChunkService) SearchText(ctx context.Context, query string) ([]*docsem.Chunk, error) {
	return s.SearchTextFn(ctx, query)
}
