package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	City string `json:"city"`
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("k", `["a"]`))
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, v)
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.Get("weatherFavorites")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("weatherFavorites", `[{"city":"Madrid"}]`))
	v, err := s.Get("weatherFavorites")
	require.NoError(t, err)
	assert.Equal(t, `[{"city":"Madrid"}]`, v)

	_, err = os.Stat(filepath.Join(dir, "weatherFavorites.json"))
	assert.NoError(t, err)

	// A second store over the same directory sees the persisted value.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	v, err = reopened.Get("weatherFavorites")
	require.NoError(t, err)
	assert.Equal(t, `[{"city":"Madrid"}]`, v)
}

func TestFileStore_KeysAreSanitized(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("../escape", "x"))
	_, err = os.Stat(filepath.Join(dir, ".._escape.json"))
	assert.NoError(t, err)
}

func TestNewFileStore_RequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestLoadSaveList(t *testing.T) {
	s := NewMemoryStore()

	list, err := LoadList[entry](s, "history")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	require.NoError(t, SaveList(s, "history", []entry{{City: "Madrid"}, {City: "Barcelona"}}))
	raw, _ := s.Get("history")
	assert.JSONEq(t, `[{"city":"Madrid"},{"city":"Barcelona"}]`, raw)

	list, err = LoadList[entry](s, "history")
	require.NoError(t, err)
	assert.Equal(t, []entry{{City: "Madrid"}, {City: "Barcelona"}}, list)

	require.NoError(t, SaveList[entry](s, "empty", nil))
	raw, _ = s.Get("empty")
	assert.Equal(t, "[]", raw)
}

func TestLoadList_Corrupt(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("history", "{not json"))

	_, err := LoadList[entry](s, "history")
	assert.Error(t, err)
}
