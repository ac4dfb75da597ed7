package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string         `json:"name"`
	Count int            `json:"count"`
	Tags  map[string]int `json:"tags"`
}

func TestStore_WriteThenRead(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	changed, err := store.Write("nba/tabela.json", sample{Name: "Celtics", Count: 3, Tags: map[string]int{"b": 2, "a": 1}})
	require.NoError(t, err)
	assert.True(t, changed)

	var got sample
	require.NoError(t, store.Read("nba/tabela.json", &got))
	assert.Equal(t, "Celtics", got.Name)
	assert.Equal(t, 3, got.Count)

	raw, err := store.ReadRaw("nba/tabela.json")
	require.NoError(t, err)
	assert.Less(t, indexOf(raw, `"a"`), indexOf(raw, `"b"`), "map keys must be sorted")
	assert.Equal(t, byte('\n'), raw[len(raw)-1])
}

func TestStore_WriteSkipsIdenticalContent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	payload := sample{Name: "Lakers"}

	changed, err := store.Write("games.json", payload)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = store.Write("games.json", payload)
	require.NoError(t, err)
	assert.False(t, changed)

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestStore_ReadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	var got sample
	err := store.Read("missing.json", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotExist))
}

func TestStore_ReadInvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	var got sample
	err := NewStore(dir).Read("broken.json", &got)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotExist))
}

func TestStore_PathRejectsEscape(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	_, err := store.Path("../outside.json")
	assert.Error(t, err)
	_, err = store.Path("/etc/passwd")
	assert.Error(t, err)
	_, err = store.Path("")
	assert.Error(t, err)
}

func TestStore_ModTimeMissingIsZero(t *testing.T) {
	t.Parallel()

	mod, err := NewStore(t.TempDir()).ModTime("nope.json")
	require.NoError(t, err)
	assert.True(t, mod.IsZero())
}

func indexOf(raw []byte, needle string) int {
	for i := 0; i+len(needle) <= len(raw); i++ {
		if string(raw[i:i+len(needle)]) == needle {
			return i
		}
	}
	return -1
}
