package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordForwardSkipsPunctuationRun(t *testing.T) {
	b := NewBufferWithText(".name.first")
	b.SetCursor(0)

	b.WordForward()

	assert.Equal(t, 1, b.Cursor())
}

func TestWordForwardSkipsWhitespace(t *testing.T) {
	b := NewBufferWithText("foo bar")
	b.SetCursor(0)

	b.WordForward()

	assert.Equal(t, 4, b.Cursor())
}

func TestWordBackLandsOnWordStart(t *testing.T) {
	b := NewBufferWithText(".name.first")
	b.SetCursor(b.Len())

	b.WordBack()

	assert.Equal(t, 6, b.Cursor())
}

func TestWordEndLandsOnLastCharOfWord(t *testing.T) {
	b := NewBufferWithText("foo bar")
	b.SetCursor(0)

	b.WordEnd()

	assert.Equal(t, 2, b.Cursor())
}
