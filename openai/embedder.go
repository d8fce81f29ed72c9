// Package openai provides an OpenAI implementation of docsem.Embedder.
package openai

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/docsem/docsem"
	"github.com/openai/openai-go"
)

const model = "text-embedding-3-small"

// Dimension is the vector size produced by text-embedding-3-small.
const Dimension = 1536

// Ensure Embedder implements docsem.Embedder at compile time.
var _ docsem.Embedder = (*Embedder)(nil)

// Embedder implements docsem.Embedder using the OpenAI embeddings API.
// Rate limit errors are retried with exponential backoff; other failures
// are permanent.
type Embedder struct {
	client *openai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *openai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, docsem.Errorf(docsem.EINVALID, "text required")
	}

	var vector []float32

	operation := func() error {
		resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{
				OfString: openai.String(text),
			},
			Model: model,
		})
		if err != nil {
			if isRateLimitError(err) {
				return err // retried with backoff
			}
			return backoff.Permanent(err)
		}
		if len(resp.Data) == 0 {
			return backoff.Permanent(errors.New("empty embedding response"))
		}
		vector = toFloat32(resp.Data[0].Embedding)
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, docsem.Errorf(docsem.EUNAVAILABLE, "openai embedding failed: %v", err)
	}

	return vector, nil
}

// Dimension returns the fixed length of vectors produced by Embed.
func (e *Embedder) Dimension() int {
	return Dimension
}

// isRateLimitError checks if the error is a rate limit error (HTTP 429).
func isRateLimitError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// toFloat32 converts the API's float64 vector to float32 for storage.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}
