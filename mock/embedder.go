package mock

import (
	"context"

	"github.com/docsem/docsem"
)

var _ docsem.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docsem.Embedder.
type Embedder struct {
	EmbedFn     func(ctx context.Context, text string) ([]float32, error)
	DimensionFn func() int
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) Dimension() int {
	if e.DimensionFn != nil {
		return e.DimensionFn()
	}
	return 3
}
