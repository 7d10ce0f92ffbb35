package database_test

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/database"
)

// Test helpers

func newTestConfig(t *testing.T) database.Config {
	t.Helper()
	return database.Config{
		Type:  "sqlite",
		DSN:   filepath.Join(t.TempDir(), "docroots.db"),
		Table: "statiq_docroots",
	}
}

func setupTestStore(t *testing.T) database.RootStore {
	t.Helper()
	ctx := context.Background()

	store, cleanup, err := database.Connect(ctx, newTestConfig(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return store
}

// Tests for configuration

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, database.Config{}.Enabled())
	assert.True(t, database.Config{Type: "sqlite"}.Enabled())
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := database.Config{Type: "sqlite", DSN: "docroots.db", Table: "statiq_docroots"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unsupported type", func(t *testing.T) {
		cfg := database.Config{Type: "mysql", DSN: "x", Table: "statiq_docroots"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty dsn", func(t *testing.T) {
		cfg := database.Config{Type: "sqlite", Table: "statiq_docroots"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid table name", func(t *testing.T) {
		cfg := database.Config{Type: "sqlite", DSN: "x", Table: "Bad-Table"}
		assert.Error(t, cfg.Validate())
	})
}

// Tests for Connect routing logic

func TestConnect_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, _, err := database.Connect(ctx, database.Config{Type: "mysql", DSN: "x", Table: "t"})
	assert.Error(t, err)
}

func TestConnect_SQLite(t *testing.T) {
	store := setupTestStore(t)
	assert.NotNil(t, store)
}

func TestConnect_MigrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)

	store, cleanup, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "example.com", Position: 0, Root: "/srv/a"}))
	cleanup()

	// Reconnecting migrates and validates against the existing table.
	store, cleanup, err = database.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	mappings, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, mappings, 1)
}

func TestConnect_SchemaMismatch(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)

	// Pre-create the table with an incompatible shape.
	db, err := sql.Open("sqlite", cfg.DSN)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE statiq_docroots (host TEXT, note TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = database.Connect(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

// Tests for store operations

func TestStore_AddListRemove(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "example.com", Position: 1, Root: "/srv/b"}))
	require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "example.com", Position: 0, Root: "/srv/a"}))
	require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "other.test", Position: 0, Root: "/srv/other"}))

	t.Run("list one host ordered by position", func(t *testing.T) {
		mappings, err := store.List(ctx, "example.com")
		require.NoError(t, err)

		require.Len(t, mappings, 2)
		assert.Equal(t, statiq.Docroot{Host: "example.com", Position: 0, Root: "/srv/a"}, mappings[0])
		assert.Equal(t, statiq.Docroot{Host: "example.com", Position: 1, Root: "/srv/b"}, mappings[1])
	})

	t.Run("list all hosts", func(t *testing.T) {
		mappings, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, mappings, 3)
	})

	t.Run("add replaces an occupied position", func(t *testing.T) {
		require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "example.com", Position: 0, Root: "/srv/new"}))

		mappings, err := store.List(ctx, "example.com")
		require.NoError(t, err)
		require.Len(t, mappings, 2)
		assert.Equal(t, "/srv/new", mappings[0].Root)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "example.com", "/srv/new"))

		mappings, err := store.List(ctx, "example.com")
		require.NoError(t, err)
		require.Len(t, mappings, 1)
		assert.Equal(t, "/srv/b", mappings[0].Root)
	})

	t.Run("remove of an absent mapping is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "example.com", "/srv/never"))
	})
}

func TestStore_Roots(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "example.com", Position: 1, Root: "/srv/b"}))
	require.NoError(t, store.Add(ctx, statiq.Docroot{Host: "example.com", Position: 0, Root: "/srv/a"}))

	t.Run("ordered by position", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/logo.png", nil)
		req.Host = "example.com"

		roots, err := store.Roots(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"/srv/a", "/srv/b"}, roots)
	})

	t.Run("port and case are normalized away", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/logo.png", nil)
		req.Host = "Example.COM:8080"

		roots, err := store.Roots(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"/srv/a", "/srv/b"}, roots)
	})

	t.Run("unmapped host yields no roots", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/logo.png", nil)
		req.Host = "unknown.test"

		roots, err := store.Roots(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, roots)
	})
}
