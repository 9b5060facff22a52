package snippets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveNewSnippetRejectsDuplicateName(t *testing.T) {
	s := NewStateWithoutPersistence()
	s.EnterCreateMode(".name")
	s.SetPendingName("byName")
	require.NoError(t, s.SaveNewSnippet())

	s.EnterCreateMode(".age")
	s.SetPendingName("byName")
	err := s.SaveNewSnippet()
	assert.Error(t, err)
}

func TestSaveNewSnippetRejectsEmptyName(t *testing.T) {
	s := NewStateWithoutPersistence()
	s.EnterCreateMode(".name")
	err := s.SaveNewSnippet()
	assert.Error(t, err)
}

func TestUpdateSnippetNameRenamesInPlace(t *testing.T) {
	s := NewStateWithoutPersistence()
	s.EnterCreateMode(".name")
	s.SetPendingName("orig")
	require.NoError(t, s.SaveNewSnippet())

	s.SelectNext()
	require.NoError(t, s.EnterEditMode())
	s.SetPendingName("renamed")
	require.NoError(t, s.UpdateSnippetName())

	snippet, ok := s.SelectedSnippet()
	require.True(t, ok)
	assert.Equal(t, "renamed", snippet.Name)
}

func TestConfirmDeleteRemovesSnippet(t *testing.T) {
	s := NewStateWithoutPersistence()
	s.EnterCreateMode(".a")
	s.SetPendingName("a")
	require.NoError(t, s.SaveNewSnippet())
	s.EnterCreateMode(".b")
	s.SetPendingName("b")
	require.NoError(t, s.SaveNewSnippet())

	require.NoError(t, s.EnterDeleteMode())
	require.NoError(t, s.ConfirmDelete())

	assert.Len(t, s.Snippets(), 1)
}

func TestSearchQueryFiltersByNamePrefix(t *testing.T) {
	s := NewStateWithoutPersistence()
	for _, name := range []string{"users", "user-active", "posts"} {
		s.EnterCreateMode(".")
		s.SetPendingName(name)
		require.NoError(t, s.SaveNewSnippet())
	}

	s.SetSearchQuery("user")
	assert.Equal(t, 2, s.FilteredCount())
}

func TestRoundTripTOML(t *testing.T) {
	original := []Snippet{
		{Name: "byName", Query: ".name", Description: "lookup by name"},
		{Name: "byAge", Query: ".age"},
	}
	data, err := SerializeTOML(original)
	require.NoError(t, err)

	parsed := ParseTOML(data)
	assert.Equal(t, original, parsed)
}
