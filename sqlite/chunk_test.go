package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/docsem/docsem"
	"github.com/docsem/docsem/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunk(section string) *docsem.Chunk {
	return &docsem.Chunk{
		SourceURL:  "https://docs.example.com/en/5.2/topics/db/models/#" + section,
		Title:      "Models - " + section,
		Content:    "Content about " + section + ".",
		DocVersion: "5.2",
	}
}

func TestChunkService_UpsertChunk(t *testing.T) {
	t.Parallel()

	t.Run("inserts new chunk with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		chunk := testChunk("fields")
		created, err := svc.UpsertChunk(ctx, chunk)
		require.NoError(t, err)

		assert.True(t, created)
		assert.NotEmpty(t, chunk.ID, "ID should be generated")
		assert.NotEmpty(t, chunk.ContentHash, "ContentHash should be generated")
		assert.False(t, chunk.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, chunk.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid chunk", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		_, err := svc.UpsertChunk(ctx, &docsem.Chunk{}) // missing required fields
		require.Error(t, err)
		assert.Equal(t, docsem.EINVALID, docsem.ErrorCode(err))
	})

	t.Run("updates existing row instead of duplicating", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		first := testChunk("fields")
		created, err := svc.UpsertChunk(ctx, first)
		require.NoError(t, err)
		require.True(t, created)

		second := testChunk("fields")
		second.Content = "Revised content about fields."
		created, err = svc.UpsertChunk(ctx, second)
		require.NoError(t, err)

		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID, "update keeps the original ID")

		found, err := svc.FindChunkByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Revised content about fields.", found.Content)
	})

	t.Run("identical re-ingest leaves the row untouched", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		first := testChunk("fields")
		_, err := svc.UpsertChunk(ctx, first)
		require.NoError(t, err)

		second := testChunk("fields")
		created, err := svc.UpsertChunk(ctx, second)
		require.NoError(t, err)

		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.UpdatedAt, second.UpdatedAt, "unchanged content keeps updated_at")
	})

	t.Run("never produces two rows for one source URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			chunk := testChunk("fields")
			chunk.Content = fmt.Sprintf("Revision %d.", i)
			_, err := svc.UpsertChunk(ctx, chunk)
			require.NoError(t, err)
		}

		var count int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestChunkService_FindChunkByID(t *testing.T) {
	t.Parallel()

	t.Run("returns chunk when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		chunk := testChunk("queries")
		_, err := svc.UpsertChunk(ctx, chunk)
		require.NoError(t, err)

		found, err := svc.FindChunkByID(ctx, chunk.ID)
		require.NoError(t, err)
		assert.Equal(t, chunk.SourceURL, found.SourceURL)
		assert.Equal(t, chunk.Title, found.Title)
		assert.Equal(t, chunk.Content, found.Content)
		assert.Equal(t, chunk.DocVersion, found.DocVersion)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		_, err := svc.FindChunkByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, docsem.ENOTFOUND, docsem.ErrorCode(err))
	})
}

func TestChunkService_FindChunksByIDs(t *testing.T) {
	t.Parallel()

	t.Run("returns map keyed by ID, omitting missing IDs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		a := testChunk("fields")
		b := testChunk("queries")
		_, err := svc.UpsertChunk(ctx, a)
		require.NoError(t, err)
		_, err = svc.UpsertChunk(ctx, b)
		require.NoError(t, err)

		found, err := svc.FindChunksByIDs(ctx, []string{a.ID, "missing", b.ID})
		require.NoError(t, err)

		assert.Len(t, found, 2)
		assert.Equal(t, a.SourceURL, found[a.ID].SourceURL)
		assert.Equal(t, b.SourceURL, found[b.ID].SourceURL)
		assert.NotContains(t, found, "missing")
	})

	t.Run("returns empty map for no IDs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		found, err := svc.FindChunksByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestChunkService_SearchText(t *testing.T) {
	t.Parallel()

	t.Run("matches substring in title or content, case-insensitive", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		a := testChunk("fields")
		a.Title = "Models - Field types"
		a.Content = "CharField stores text."
		b := testChunk("queries")
		b.Title = "Queries - Filtering"
		b.Content = "Use filter() to narrow a QuerySet."
		for _, c := range []*docsem.Chunk{a, b} {
			_, err := svc.UpsertChunk(ctx, c)
			require.NoError(t, err)
		}

		results, err := svc.SearchText(ctx, "FIELD")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, a.ID, results[0].ID)

		results, err = svc.SearchText(ctx, "queryset")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, b.ID, results[0].ID)
	})

	t.Run("treats LIKE wildcards as literals", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)
		ctx := context.Background()

		chunk := testChunk("fields")
		chunk.Content = "Use 100% of the connection pool."
		_, err := svc.UpsertChunk(ctx, chunk)
		require.NoError(t, err)

		results, err := svc.SearchText(ctx, "100%")
		require.NoError(t, err)
		assert.Len(t, results, 1)

		results, err = svc.SearchText(ctx, "%zzz%")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("returns no results for no match", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewChunkService(db)

		results, err := svc.SearchText(context.Background(), "nothing here")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
