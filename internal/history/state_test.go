package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDeduplicatesAdjacentEntries(t *testing.T) {
	store := OpenPath(filepath.Join(t.TempDir(), "history.log"))
	store.Append(".name")
	store.Append(".name")
	store.Append(".age")

	assert.Equal(t, []string{".name", ".age"}, store.Entries())
}

func TestOpenPathReloadsPersistedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")
	store := OpenPath(path)
	store.Append(".name")
	store.Append(".age")

	reloaded := OpenPath(path)
	assert.Equal(t, []string{".name", ".age"}, reloaded.Entries())
}

func TestCyclePreviousAndNext(t *testing.T) {
	store := OpenPath(filepath.Join(t.TempDir(), "history.log"))
	store.Append(".a")
	store.Append(".b")
	store.Append(".c")
	state := NewState(store)

	entry, ok := state.CyclePrevious()
	require.True(t, ok)
	assert.Equal(t, ".c", entry)

	entry, ok = state.CyclePrevious()
	require.True(t, ok)
	assert.Equal(t, ".b", entry)

	entry, ok = state.CycleNext()
	require.True(t, ok)
	assert.Equal(t, ".c", entry)

	_, ok = state.CycleNext()
	assert.False(t, ok, "cycling past the newest entry resets to idle")
}

func TestOpenSeedsPopupAndSetSearchFilters(t *testing.T) {
	store := OpenPath(filepath.Join(t.TempDir(), "history.log"))
	store.Append(".name")
	store.Append(".age")
	store.Append(".name.first")
	state := NewState(store)

	state.Open("")
	assert.True(t, state.IsVisible())
	assert.Len(t, state.Matches(), 3)

	state.SetSearch("name")
	assert.Len(t, state.Matches(), 2)
	selected, ok := state.Selected()
	require.True(t, ok)
	assert.Equal(t, ".name.first", selected, "most recent match is selected first")

	state.Close()
	assert.False(t, state.IsVisible())
}

func TestRecordResetsCycling(t *testing.T) {
	store := OpenPath(filepath.Join(t.TempDir(), "history.log"))
	store.Append(".a")
	state := NewState(store)

	_, _ = state.CyclePrevious()
	state.Record(".b")

	_, ok := state.CycleNext()
	assert.False(t, ok, "recording a query resets cycling to idle")
}
