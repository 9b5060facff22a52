package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelTogglesVisibility(t *testing.T) {
	p := NewPanel()
	assert.False(t, p.Visible())

	p.Toggle()
	assert.True(t, p.Visible())

	p.Toggle()
	assert.False(t, p.Visible())
}

func TestPollResponseChannelIsNoop(t *testing.T) {
	p := NewPanel()
	PollResponseChannel(p)
	assert.False(t, p.Visible())
}
