package snippets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.toml")
	original := []Snippet{{Name: "byName", Query: ".name"}}

	require.NoError(t, Save(path, original))
	loaded := Load(path)

	assert.Equal(t, original, loaded)
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	assert.Nil(t, Load(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestLoadMalformedFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0640))
	assert.Nil(t, Load(path))
}
