package search

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStubIsAlwaysInactiveAndNeverConsumesKeys(t *testing.T) {
	s := NewStub()
	assert.False(t, s.Active())
	assert.False(t, s.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
}
