package docsem

import (
	"context"
	"time"
)

// Chunk represents one section-sized unit of documentation text. It is the
// unit of storage, embedding, and retrieval. The relational row is the source
// of truth; the vector index entry shares the same ID.
type Chunk struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"source_url"` // page URL + "#" + section anchor; unique
	Title       string    `json:"title"`      // "<page title> - <section title>"
	Content     string    `json:"content"`
	ContentHash string    `json:"-"` // used to detect unchanged content on re-ingest
	DocVersion  string    `json:"doc_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	if c.DocVersion == "" {
		return Errorf(EINVALID, "chunk doc version required")
	}
	return nil
}

// ChunkService represents a service for managing chunks in relational storage.
type ChunkService interface {
	// UpsertChunk creates or refreshes the chunk identified by its SourceURL.
	// On return the chunk's ID and timestamps reflect the stored row.
	// Returns created=true if a new row was inserted. A re-ingest with
	// identical title, content, and version leaves the stored row untouched.
	UpsertChunk(ctx context.Context, chunk *Chunk) (created bool, err error)

	// FindChunkByID retrieves a chunk by ID.
	// Returns ENOTFOUND if the chunk does not exist.
	FindChunkByID(ctx context.Context, id string) (*Chunk, error)

	// FindChunksByIDs retrieves the chunks for the given IDs. The result map
	// contains an entry per ID that exists; missing IDs are simply absent.
	// Callers needing a particular order must impose it themselves.
	FindChunksByIDs(ctx context.Context, ids []string) (map[string]*Chunk, error)

	// SearchText performs a case-insensitive substring match over title and
	// content. This is the plain (non-semantic) search mode.
	SearchText(ctx context.Context, query string) ([]*Chunk, error)
}

// SearchService provides semantic search over chunks.
type SearchService interface {
	// Search embeds the query and returns up to k chunks ordered most
	// relevant first. An empty query returns an empty result, not an error.
	Search(ctx context.Context, query string, k int) ([]*Chunk, error)
}

// DefaultSearchLimit is the number of results returned when the caller does
// not specify k.
const DefaultSearchLimit = 10
