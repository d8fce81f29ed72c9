// Package gemini provides a Google Gemini implementation of docsem.Embedder.
package gemini

import (
	"context"

	"github.com/docsem/docsem"
	"google.golang.org/genai"
)

const model = "gemini-embedding-001"

// Dimension is the embedding size requested from the Gemini API. The model
// supports several output sizes; 768 keeps the index compact while staying
// well within retrieval quality for documentation text.
const Dimension = 768

// Ensure Embedder implements docsem.Embedder at compile time.
var _ docsem.Embedder = (*Embedder)(nil)

// Embedder implements docsem.Embedder using the Gemini embedding API.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, docsem.Errorf(docsem.EINVALID, "text required")
	}

	dim := int32(Dimension)
	result, err := e.client.Models.EmbedContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		&genai.EmbedContentConfig{
			OutputDimensionality: &dim,
		},
	)
	if err != nil {
		return nil, docsem.Errorf(docsem.EUNAVAILABLE, "gemini embedding failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, docsem.Errorf(docsem.EINTERNAL, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}

// Dimension returns the fixed length of vectors produced by Embed.
func (e *Embedder) Dimension() int {
	return Dimension
}
