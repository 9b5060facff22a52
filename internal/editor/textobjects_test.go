package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPipeBoundsInnerMiddleSegment(t *testing.T) {
	text := []rune(".foo | .bar | .baz")
	// cursor inside " .bar "
	start, end, ok := FindPipeBounds(text, 8, ScopeInner)
	require.True(t, ok)
	assert.Equal(t, ".bar", string(text[start:end]))
}

func TestFindPipeBoundsAroundTrailingSegmentTakesLeadingPipe(t *testing.T) {
	text := []rune(".foo | .bar | .baz")
	start, end, ok := FindPipeBounds(text, 16, ScopeAround)
	require.True(t, ok)
	// Around on the last segment deletes the leading pipe plus content.
	assert.Equal(t, "| .baz", string(text[start:end]))
}

func TestFindPipeBoundsAroundMiddleSegmentTakesTrailingPipe(t *testing.T) {
	text := []rune(".foo | .bar | .baz")
	start, end, ok := FindPipeBounds(text, 8, ScopeAround)
	require.True(t, ok)
	assert.Equal(t, ".bar | ", string(text[start:end]))
}

func TestFindBracketBoundsNestedPicksInnermost(t *testing.T) {
	text := []rune("map(select(.x))")
	start, end, ok := FindBracketBounds(text, 11, '(', ')', ScopeInner)
	require.True(t, ok)
	assert.Equal(t, ".x", string(text[start:end]))
}

func TestFindQuoteBoundsOddCountBefore(t *testing.T) {
	text := []rune(`"a" "b"`)
	start, end, ok := FindQuoteBounds(text, 5, '"', ScopeInner)
	require.True(t, ok)
	assert.Equal(t, "b", string(text[start:end]))
}

func TestFindWordBoundsNonWordCursorFails(t *testing.T) {
	text := []rune(".name")
	_, _, ok := FindWordBounds(text, 0, ScopeInner)
	assert.False(t, ok)
}

func TestTextObjectTargetFromRune(t *testing.T) {
	tests := map[rune]TextObjectTarget{
		'w': ObjectWord,
		'"': ObjectDoubleQuote,
		'\'': ObjectSingleQuote,
		'`': ObjectBacktick,
		'(': ObjectParens,
		'b': ObjectParens,
		'[': ObjectBrackets,
		'{': ObjectBraces,
		'|': ObjectPipe,
	}
	for r, want := range tests {
		got, ok := TextObjectTargetFromRune(r)
		require.True(t, ok, "rune %q", r)
		assert.Equal(t, want, got)
	}

	_, ok := TextObjectTargetFromRune('z')
	assert.False(t, ok)
}
