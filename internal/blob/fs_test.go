package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "timetrack/internal/errors"
)

func TestFSStore_PutGetDelete(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("date,hours\n2024-01-10,8\n")
	require.NoError(t, store.Put(ctx, "export.csv", payload))

	data, err := store.Get(ctx, "export.csv")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	objects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "export.csv", objects[0].Key)
	assert.Equal(t, int64(len(payload)), objects[0].Size)

	require.NoError(t, store.Delete(ctx, "export.csv"))
	_, err = store.Get(ctx, "export.csv")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting an absent object is not an error.
	assert.NoError(t, store.Delete(ctx, "export.csv"))
}

func TestFSStore_RejectsPathKeys(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "a/b.csv", `a\b.csv`, "../escape.csv", "..", "a..b/c"} {
		assert.ErrorIs(t, store.Put(ctx, key, []byte("x")), apperrors.ErrNotFound, "key %q", key)
	}
}
