package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/docsem/docsem"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docsem.ChunkService = (*ChunkService)(nil)

// ChunkService implements docsem.ChunkService using SQLite.
type ChunkService struct {
	db *DB
}

// NewChunkService creates a new ChunkService.
func NewChunkService(db *DB) *ChunkService {
	return &ChunkService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// UpsertChunk creates or refreshes the chunk identified by its SourceURL.
//
// The source_url unique constraint is the idempotency key: at most one row
// exists per source URL. A concurrent insert losing the race against the
// constraint is retried as an update. A re-ingest that changes nothing
// leaves the row (and its updated_at) untouched.
func (s *ChunkService) UpsertChunk(ctx context.Context, chunk *docsem.Chunk) (bool, error) {
	if err := chunk.Validate(); err != nil {
		return false, err
	}

	hash := hashContent(chunk.Content)

	existing, err := s.findChunkBySourceURL(ctx, chunk.SourceURL)
	if err != nil && docsem.ErrorCode(err) != docsem.ENOTFOUND {
		return false, err
	}

	if existing != nil {
		if existing.Title == chunk.Title && existing.ContentHash == hash && existing.DocVersion == chunk.DocVersion {
			*chunk = *existing
			return false, nil
		}
		return false, s.updateChunk(ctx, existing.ID, existing.CreatedAt, chunk, hash)
	}

	return s.insertChunk(ctx, chunk, hash)
}

// insertChunk inserts a new row for the chunk. A UNIQUE constraint failure
// means a concurrent ingest of the same URL won the insert race between the
// caller's lookup and this insert; the losing write is retried as an update
// of the winner's row.
func (s *ChunkService) insertChunk(ctx context.Context, chunk *docsem.Chunk, hash string) (bool, error) {
	chunk.ID = uuid.New().String()
	chunk.ContentHash = hash
	chunk.CreatedAt = time.Now().UTC().Truncate(time.Second)
	chunk.UpdatedAt = chunk.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, source_url, title, content, content_hash, doc_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, chunk.ID, chunk.SourceURL, chunk.Title, chunk.Content, chunk.ContentHash,
		chunk.DocVersion, chunk.CreatedAt.Format(time.RFC3339), chunk.UpdatedAt.Format(time.RFC3339))

	if err != nil {
		if isUniqueConstraintError(err) {
			winner, findErr := s.findChunkBySourceURL(ctx, chunk.SourceURL)
			if findErr != nil {
				return false, findErr
			}
			return false, s.updateChunk(ctx, winner.ID, winner.CreatedAt, chunk, hash)
		}
		return false, err
	}

	return true, nil
}

// updateChunk overwrites the stored row's mutable fields and refreshes the
// caller's chunk with the stored identity and timestamps.
func (s *ChunkService) updateChunk(ctx context.Context, id string, createdAt time.Time, chunk *docsem.Chunk, hash string) error {
	chunk.ID = id
	chunk.ContentHash = hash
	chunk.CreatedAt = createdAt
	chunk.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		UPDATE chunks
		SET title = ?, content = ?, content_hash = ?, doc_version = ?, updated_at = ?
		WHERE id = ?
	`, chunk.Title, chunk.Content, chunk.ContentHash, chunk.DocVersion,
		chunk.UpdatedAt.Format(time.RFC3339), id)

	return err
}

// FindChunkByID retrieves a chunk by ID.
func (s *ChunkService) FindChunkByID(ctx context.Context, id string) (*docsem.Chunk, error) {
	return s.findChunkBy(ctx, "id", id)
}

// findChunkBySourceURL retrieves a chunk by its source URL.
func (s *ChunkService) findChunkBySourceURL(ctx context.Context, sourceURL string) (*docsem.Chunk, error) {
	return s.findChunkBy(ctx, "source_url", sourceURL)
}

func (s *ChunkService) findChunkBy(ctx context.Context, column, value string) (*docsem.Chunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, content, content_hash, doc_version, created_at, updated_at
		FROM chunks
		WHERE `+column+` = ?
	`, value)

	chunk, err := scanChunk(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docsem.Errorf(docsem.ENOTFOUND, "chunk not found")
	}
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// FindChunksByIDs retrieves the chunks for the given IDs as a map keyed by
// ID. Missing IDs are absent from the map. The map carries no ordering;
// callers reorder as needed.
func (s *ChunkService) FindChunksByIDs(ctx context.Context, ids []string) (map[string]*docsem.Chunk, error) {
	result := make(map[string]*docsem.Chunk, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, title, content, content_hash, doc_version, created_at, updated_at
		FROM chunks
		WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		result[chunk.ID] = chunk
	}

	return result, rows.Err()
}

// SearchText performs a case-insensitive substring match over title and
// content, newest chunks first.
func (s *ChunkService) SearchText(ctx context.Context, query string) ([]*docsem.Chunk, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_url, title, content, content_hash, doc_version, created_at, updated_at
		FROM chunks
		WHERE LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'
		ORDER BY created_at DESC
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*docsem.Chunk
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// scanChunk scans one chunks row using the provided scan function.
func scanChunk(scan func(dest ...any) error) (*docsem.Chunk, error) {
	var chunk docsem.Chunk
	var createdAt, updatedAt string

	if err := scan(&chunk.ID, &chunk.SourceURL, &chunk.Title, &chunk.Content,
		&chunk.ContentHash, &chunk.DocVersion, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if chunk.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if chunk.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &chunk, nil
}

// escapeLike escapes LIKE wildcards in user-provided search terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// isUniqueConstraintError reports whether err is a SQLite unique constraint
// violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
