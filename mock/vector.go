package mock

import (
	"context"

	"github.com/docsem/docsem"
)

var _ docsem.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of docsem.VectorIndex.
type VectorIndex struct {
	UpsertFn func(ctx context.Context, id string, vector []float32, meta docsem.VectorMetadata) error
	QueryFn  func(ctx context.Context, vector []float32, k int) ([]docsem.VectorMatch, error)
	CloseFn  func() error
}

func (v *VectorIndex) Upsert(ctx context.Context, id string, vector []float32, meta docsem.VectorMetadata) error {
	return v.UpsertFn(ctx, id, vector, meta)
}

func (v *VectorIndex) Query(ctx context.Context, vector []float32, k int) ([]docsem.VectorMatch, error) {
	return v.QueryFn(ctx, vector, k)
}

func (v *VectorIndex) Close() error {
	if v.CloseFn != nil {
		return v.CloseFn()
	}
	return nil
}
