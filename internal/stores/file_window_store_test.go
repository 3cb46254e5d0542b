package stores

import (
	"context"
	"strings"
	"testing"

	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/filestorages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) WindowStore {
	t.Helper()
	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return NewFileWindowStore(fileStorage)
}

func TestFileWindowStore(t *testing.T) {
	t.Parallel()

	runWindowStoreSuite(t, newTestFileStore)
}

func TestFileWindowStore_FileKeyIsPathSafe(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t).(*fileWindowStore)
	key := store.fileKey(models.NewWindowKey("../../etc", "a/b", "passwd"))

	assert.True(t, strings.HasPrefix(key, "windows/"))
	assert.True(t, strings.HasSuffix(key, ".json"))
	assert.NotContains(t, strings.TrimPrefix(key, "windows/"), "/")
	assert.NotContains(t, key, "..")

	require.NoError(t, store.Put(context.Background(), models.NewWindowKey("../../etc", "a/b", "passwd"), 0, sampleWindow()))
}
