package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashdeck/internal/store"
)

func TestIndexKey(t *testing.T) {
	require.Equal(t, "revisionapp:deck:istqb-fl:index", store.IndexKey("istqb-fl"))
}

func TestLoadIndex(t *testing.T) {
	kv := store.NewMemory()
	require.Zero(t, store.LoadIndex(kv, "a"))

	require.NoError(t, kv.Set(store.IndexKey("a"), "5"))
	require.Equal(t, 5, store.LoadIndex(kv, "a"))

	for _, raw := range []string{"", "abc", "1.5", "NaN"} {
		require.NoError(t, kv.Set(store.IndexKey("a"), raw))
		require.Zero(t, store.LoadIndex(kv, "a"), raw)
	}

	require.Zero(t, store.LoadIndex(nil, "a"))
}

func TestSaveAndResetIndex(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, store.SaveIndex(kv, "a", 12))

	raw, err := kv.Get(store.IndexKey("a"))
	require.NoError(t, err)
	require.Equal(t, "12", raw)

	require.NoError(t, store.ResetIndex(kv, "a"))
	_, err = kv.Get(store.IndexKey("a"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

type brokenKV struct{}

func (brokenKV) Get(string) (string, error) { return "", errors.New("storage unavailable") }
func (brokenKV) Set(string, string) error   { return errors.New("quota exceeded") }
func (brokenKV) Delete(string) error        { return errors.New("storage unavailable") }

func TestLoadIndexSwallowsStorageFailures(t *testing.T) {
	require.Zero(t, store.LoadIndex(brokenKV{}, "a"))
	require.Error(t, store.SaveIndex(brokenKV{}, "a", 1))
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")

	first := store.NewFile(path)
	_, err := first.Get("missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, store.SaveIndex(first, "a", 3))
	require.NoError(t, store.SaveIndex(first, "b:c", 7))

	second := store.NewFile(path)
	require.Equal(t, 3, store.LoadIndex(second, "a"))
	require.Equal(t, 7, store.LoadIndex(second, "b:c"))

	require.NoError(t, second.Delete(store.IndexKey("a")))
	require.NoError(t, second.Delete("never-set"))

	third := store.NewFile(path)
	require.Zero(t, store.LoadIndex(third, "a"))
	require.Equal(t, 7, store.LoadIndex(third, "b:c"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("entries = [not toml"), 0o644))

	kv := store.NewFile(path)
	_, err := kv.Get(store.IndexKey("a"))
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)

	// Callers treat this as "no saved index".
	require.Zero(t, store.LoadIndex(kv, "a"))
}
