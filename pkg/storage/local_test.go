package stores

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	return &LocalStore{
		Root:       t.TempDir(),
		NewDirPerm: 0755,
	}
}

func TestLocalStore_WriteReadDelete(t *testing.T) {
	store := newTestLocalStore(t)

	require.NoError(t, store.Write("avatars/u-alice.png", strings.NewReader("fake png")))

	exists, err := store.Exists("avatars/u-alice.png")
	require.NoError(t, err)
	assert.True(t, exists)

	r, size, err := store.Read("avatars/u-alice.png")
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, int64(8), size)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fake png", string(data))

	require.NoError(t, store.Delete("avatars/u-alice.png"))
	exists, err = store.Exists("avatars/u-alice.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStore_RejectsPathEscape(t *testing.T) {
	store := newTestLocalStore(t)

	err := store.Write("../../etc/passwd", strings.NewReader("nope"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, _, err = store.Read("../secret")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = store.Exists("../../x")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStore_PublicURL(t *testing.T) {
	store := newTestLocalStore(t)
	assert.Equal(t, "/uploads/avatars/u-alice.png", store.PublicURL("avatars/u-alice.png"))
	assert.Equal(t, "/uploads/avatars/u-alice.png", store.PublicURL("/avatars/u-alice.png"))
}

func TestGetStore_DefaultsToLocal(t *testing.T) {
	store := GetStore("")
	_, ok := store.(*LocalStore)
	assert.True(t, ok)

	store = GetStore(KindMinio)
	_, ok = store.(*MinioStore)
	assert.True(t, ok)
}
