package stores

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"dynamic-routing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) (WindowStore, *sql.DB) {
	t.Helper()
	db, err := OpenSQLiteDB(filepath.Join(t.TempDir(), "windows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteWindowStore(context.Background(), db)
	require.NoError(t, err)
	return store, db
}

func TestSQLiteWindowStore(t *testing.T) {
	t.Parallel()

	runWindowStoreSuite(t, func(t *testing.T) WindowStore {
		store, _ := newTestSQLiteStore(t)
		return store
	})
}

func TestSQLiteWindowStore_PersistsVersionColumn(t *testing.T) {
	t.Parallel()

	store, db := newTestSQLiteStore(t)
	ctx := context.Background()
	key := models.NewWindowKey("m1", "USD", "stripe")

	require.NoError(t, store.Put(ctx, key, 0, sampleWindow()))
	require.NoError(t, store.Put(ctx, key, 1, sampleWindow()))

	var version int64
	err := db.QueryRowContext(ctx, `SELECT version FROM success_rate_windows WHERE window_key = ?`, key.String()).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestSQLiteWindowStore_MigrationIsIdempotent(t *testing.T) {
	t.Parallel()

	_, db := newTestSQLiteStore(t)
	_, err := NewSQLiteWindowStore(context.Background(), db)
	assert.NoError(t, err)
}

func TestOpenSQLiteDB_EmptyPath(t *testing.T) {
	t.Parallel()

	db, err := OpenSQLiteDB("")
	assert.Nil(t, db)
	assert.Error(t, err)
}
