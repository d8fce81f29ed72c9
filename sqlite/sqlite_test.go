package sqlite_test

import (
	"context"
	"testing"

	"github.com/docsem/docsem/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		// Verify the chunks table exists by querying it
		ctx := context.Background()
		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("enforces source_url uniqueness at the schema level", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		_, err := db.ExecContext(ctx, `
			INSERT INTO chunks (id, source_url, created_at, updated_at)
			VALUES ('a', 'https://example.com/page#intro', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')
		`)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, `
			INSERT INTO chunks (id, source_url, created_at, updated_at)
			VALUES ('b', 'https://example.com/page#intro', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')
		`)
		require.Error(t, err)
		require.Contains(t, err.Error(), "UNIQUE constraint failed")
	})
}
