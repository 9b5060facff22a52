package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalState(query string) *State {
	s := NewState()
	s.Buffer = NewBufferWithText(query)
	s.Mode = Normal
	return s
}

func charKey(c rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{c}}
}

func ctrlRKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyCtrlR}
}

func moveCursorTo(s *State, col int) {
	s.Buffer.MoveHead()
	for i := 0; i < col; i++ {
		s.Buffer.MoveForward()
	}
}

func TestOperatorDWDeletesWordFromStart(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('d'))
	require.Equal(t, ModeOperator, s.Mode.Kind)
	require.Equal(t, 'd', s.Mode.Operator)

	s.HandleKey(charKey('w'))
	assert.Contains(t, s.Buffer.Text(), "first")
	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestOperatorDWDeletesWordFromMiddle(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 5)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('w'))

	assert.Less(t, len(s.Buffer.Text()), len(".name.first"))
	assert.True(t, strings.HasPrefix(s.Buffer.Text(), ".name"))
}

func TestOperatorDBDeletesWordBackward(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveEnd()

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('b'))

	assert.True(t, strings.HasPrefix(s.Buffer.Text(), ".name"))
}

func TestOperatorDEDeletesToWordEnd(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('e'))

	assert.Contains(t, s.Buffer.Text(), "first")
}

func TestOperatorDDollarDeletesToEndOfLine(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 5)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('$'))

	assert.Equal(t, ".name", s.Buffer.Text())
}

func TestOperatorDDDeletesEntireLine(t *testing.T) {
	s := newNormalState(".name.first")

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('d'))

	assert.Equal(t, "", s.Buffer.Text())
	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestOperatorCWChangesWord(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('c'))
	s.HandleKey(charKey('w'))

	assert.Contains(t, s.Buffer.Text(), "first")
	assert.Equal(t, ModeInsert, s.Mode.Kind)
}

func TestOperatorCCChangesEntireLine(t *testing.T) {
	s := newNormalState(".name.first")

	s.HandleKey(charKey('c'))
	s.HandleKey(charKey('c'))

	assert.Equal(t, "", s.Buffer.Text())
	assert.Equal(t, ModeInsert, s.Mode.Kind)
}

func TestOperatorInvalidMotionCancels(t *testing.T) {
	s := newNormalState(".name")
	original := s.Buffer.Text()

	s.HandleKey(charKey('d'))
	require.Equal(t, ModeOperator, s.Mode.Kind)

	s.HandleKey(charKey('z'))

	assert.Equal(t, ModeNormal, s.Mode.Kind)
	assert.Equal(t, original, s.Buffer.Text())
}

func TestEscapeInOperatorModeCancelsOperator(t *testing.T) {
	s := newNormalState(".name")
	original := s.Buffer.Text()

	s.HandleKey(charKey('d'))
	require.Equal(t, ModeOperator, s.Mode.Kind)

	s.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, s.Mode.Kind)
	assert.Equal(t, original, s.Buffer.Text())
}

func TestEscapeFromInsertToNormal(t *testing.T) {
	s := newNormalState(".name")
	s.Mode = Insert

	s.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestIEntersInsertModeAtCursor(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()
	before := s.Buffer.Cursor()

	s.HandleKey(charKey('i'))

	assert.Equal(t, ModeInsert, s.Mode.Kind)
	assert.Equal(t, before, s.Buffer.Cursor())
}

func TestAEntersInsertModeAfterCursor(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()
	before := s.Buffer.Cursor()

	s.HandleKey(charKey('a'))

	assert.Equal(t, ModeInsert, s.Mode.Kind)
	assert.Equal(t, before+1, s.Buffer.Cursor())
}

func TestCapitalIEntersInsertAtLineStart(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveEnd()

	s.HandleKey(charKey('I'))

	assert.Equal(t, ModeInsert, s.Mode.Kind)
	assert.Equal(t, 0, s.Buffer.Cursor())
}

func TestCapitalAEntersInsertAtLineEnd(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('A'))

	assert.Equal(t, ModeInsert, s.Mode.Kind)
	assert.Equal(t, 5, s.Buffer.Cursor())
}

func TestXDeletesCharacterAtCursor(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('x'))

	assert.Equal(t, "name", s.Buffer.Text())
}

func TestCapitalXDeletesCharacterBeforeCursor(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()
	s.Buffer.MoveForward()

	s.HandleKey(charKey('X'))

	assert.Equal(t, "name", s.Buffer.Text())
}

func TestCapitalDDeletesToEndOfLine(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 5)

	s.HandleKey(charKey('D'))

	assert.Equal(t, ".name", s.Buffer.Text())
}

func TestCapitalCChangesToEndOfLine(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 5)

	s.HandleKey(charKey('C'))

	assert.Equal(t, ".name", s.Buffer.Text())
	assert.Equal(t, ModeInsert, s.Mode.Kind)
}

func TestUTriggersUndo(t *testing.T) {
	s := newNormalState("")
	s.Mode = Insert
	for _, r := range ".name" {
		s.HandleKey(charKey(r))
	}
	s.Mode = Normal

	s.HandleKey(charKey('u'))

	assert.Equal(t, "", s.Buffer.Text())
}

func TestCtrlRTriggersRedo(t *testing.T) {
	s := newNormalState("")
	s.Mode = Insert
	for _, r := range ".name" {
		s.HandleKey(charKey(r))
	}
	s.Mode = Normal
	s.Buffer.Undo()
	require.Equal(t, "", s.Buffer.Text())

	s.HandleKey(ctrlRKey())

	assert.Equal(t, ".name", s.Buffer.Text())
}

func TestHMovesCursorLeft(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveEnd()
	before := s.Buffer.Cursor()

	s.HandleKey(charKey('h'))

	assert.Equal(t, before-1, s.Buffer.Cursor())
}

func TestLMovesCursorRight(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('l'))

	assert.Equal(t, 1, s.Buffer.Cursor())
}

func TestZeroMovesToLineStart(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveEnd()

	s.HandleKey(charKey('0'))

	assert.Equal(t, 0, s.Buffer.Cursor())
}

func TestDollarMovesToLineEnd(t *testing.T) {
	s := newNormalState(".name")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('$'))

	assert.Equal(t, 5, s.Buffer.Cursor())
}

func TestWMovesWordForward(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()
	before := s.Buffer.Cursor()

	s.HandleKey(charKey('w'))

	assert.Greater(t, s.Buffer.Cursor(), before)
}

func TestBMovesWordBackward(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveEnd()
	before := s.Buffer.Cursor()

	s.HandleKey(charKey('b'))

	assert.Less(t, s.Buffer.Cursor(), before)
}

func TestEMovesToWordEnd(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()
	before := s.Buffer.Cursor()

	s.HandleKey(charKey('e'))

	assert.Greater(t, s.Buffer.Cursor(), before)
}

func TestQuestionMarkTogglesHelp(t *testing.T) {
	s := newNormalState(".name")
	s.HelpVisible = false

	s.HandleKey(charKey('?'))
	assert.True(t, s.HelpVisible)

	s.HandleKey(charKey('?'))
	assert.False(t, s.HelpVisible)
}

func TestYEntersOperatorMode(t *testing.T) {
	s := newNormalState(".name")

	s.HandleKey(charKey('y'))

	require.Equal(t, ModeOperator, s.Mode.Kind)
	assert.Equal(t, 'y', s.Mode.Operator)
}

func TestYYYanksLine(t *testing.T) {
	s := newNormalState(".name.first")

	s.HandleKey(charKey('y'))
	out := s.HandleKey(charKey('y'))

	assert.Equal(t, ModeNormal, s.Mode.Kind)
	assert.Equal(t, ".name.first", out.Yanked)
}

func TestOperatorUnknownWithMotionCancels(t *testing.T) {
	s := newNormalState(".name")
	s.Mode = Operator('z')
	original := s.Buffer.Text()

	s.HandleKey(charKey('w'))

	assert.Equal(t, ModeNormal, s.Mode.Kind)
	assert.Equal(t, original, s.Buffer.Text())
}

func TestFEntersCharSearchMode(t *testing.T) {
	s := newNormalState(".name.first")

	s.HandleKey(charKey('f'))

	require.Equal(t, ModeCharSearch, s.Mode.Kind)
	assert.Equal(t, SearchForward, s.Mode.Direction)
	assert.Equal(t, SearchFind, s.Mode.Type)
}

func TestFFindForwardMovesToChar(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('f'))
	s.HandleKey(charKey('.'))

	assert.Equal(t, 5, s.Buffer.Cursor())
	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestCapitalFFindBackwardMovesToChar(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 10)

	s.HandleKey(charKey('F'))
	s.HandleKey(charKey('.'))

	assert.Equal(t, 5, s.Buffer.Cursor())
}

func TestTTillForwardMovesBeforeChar(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('t'))
	s.HandleKey(charKey('.'))

	assert.Equal(t, 4, s.Buffer.Cursor())
}

func TestCapitalTTillBackwardMovesAfterChar(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 10)

	s.HandleKey(charKey('T'))
	s.HandleKey(charKey('.'))

	assert.Equal(t, 6, s.Buffer.Cursor())
}

func TestSemicolonRepeatsLastCharSearch(t *testing.T) {
	s := newNormalState("a.b.c.d")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('f'))
	s.HandleKey(charKey('.'))
	require.Equal(t, 1, s.Buffer.Cursor())

	s.HandleKey(charKey(';'))
	assert.Equal(t, 3, s.Buffer.Cursor())

	s.HandleKey(charKey(';'))
	assert.Equal(t, 5, s.Buffer.Cursor())
}

func TestCommaRepeatsLastCharSearchReversed(t *testing.T) {
	s := newNormalState("a.b.c.d")
	moveCursorTo(s, 3)

	s.HandleKey(charKey('f'))
	s.HandleKey(charKey('.'))
	require.Equal(t, 5, s.Buffer.Cursor())

	s.HandleKey(charKey(','))
	assert.Equal(t, 3, s.Buffer.Cursor())

	s.HandleKey(charKey(','))
	assert.Equal(t, 1, s.Buffer.Cursor())
}

func TestCharSearchNotFoundStaysInPlace(t *testing.T) {
	s := newNormalState(".name.first")
	s.Buffer.MoveHead()

	s.HandleKey(charKey('f'))
	s.HandleKey(charKey('z'))

	assert.Equal(t, 0, s.Buffer.Cursor())
	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestEscapeCancelsCharSearchMode(t *testing.T) {
	s := newNormalState(".name.first")

	s.HandleKey(charKey('f'))
	s.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestDIWDeletesInnerWord(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 2)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('w'))

	assert.Equal(t, "..first", s.Buffer.Text())
	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestDAWDeletesAroundWord(t *testing.T) {
	s := newNormalState("foo bar")
	moveCursorTo(s, 1)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('a'))
	s.HandleKey(charKey('w'))

	assert.Equal(t, "bar", s.Buffer.Text())
}

func TestCIWChangesInnerWord(t *testing.T) {
	s := newNormalState(".name.first")
	moveCursorTo(s, 7)

	s.HandleKey(charKey('c'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('w'))

	assert.Equal(t, ".name.", s.Buffer.Text())
	assert.Equal(t, ModeInsert, s.Mode.Kind)
}

// Scenario 6 from §8: di" removes the string literal's contents.
func TestDIQuoteDeletesInnerQuotes(t *testing.T) {
	s := newNormalState(`select(.name == "foo")`)
	moveCursorTo(s, 18)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('"'))

	assert.Equal(t, `select(.name == "")`, s.Buffer.Text())
	assert.Equal(t, ModeNormal, s.Mode.Kind)
}

func TestDAQuoteDeletesAroundQuotes(t *testing.T) {
	s := newNormalState(`select(.name == "foo")`)
	moveCursorTo(s, 18)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('a'))
	s.HandleKey(charKey('"'))

	assert.Equal(t, `select(.name == )`, s.Buffer.Text())
}

func TestCIParenChangesInnerParentheses(t *testing.T) {
	s := newNormalState("map(select(.x))")
	moveCursorTo(s, 11)

	s.HandleKey(charKey('c'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('('))

	assert.Equal(t, "map(select())", s.Buffer.Text())
	assert.Equal(t, ModeInsert, s.Mode.Kind)
}

func TestDIBracketDeletesInnerBrackets(t *testing.T) {
	s := newNormalState(".items[0]")
	moveCursorTo(s, 7)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('['))

	assert.Equal(t, ".items[]", s.Buffer.Text())
}

func TestDIBraceDeletesInnerBraces(t *testing.T) {
	s := newNormalState("{foo: bar}")
	moveCursorTo(s, 5)

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('{'))

	assert.Equal(t, "{}", s.Buffer.Text())
}

func TestTextObjectInvalidTargetCancels(t *testing.T) {
	s := newNormalState(".name")
	original := s.Buffer.Text()

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('z'))

	assert.Equal(t, ModeNormal, s.Mode.Kind)
	assert.Equal(t, original, s.Buffer.Text())
}

func TestTextObjectNoMatchCancels(t *testing.T) {
	s := newNormalState(".name")
	moveCursorTo(s, 0)
	original := s.Buffer.Text()

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(charKey('w'))

	assert.Equal(t, ModeNormal, s.Mode.Kind)
	assert.Equal(t, original, s.Buffer.Text())
}

func TestTextObjectModeDisplay(t *testing.T) {
	s := newNormalState(".name")

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))

	require.Equal(t, ModeTextObject, s.Mode.Kind)
	assert.Equal(t, 'd', s.Mode.Operator)
	assert.Equal(t, "di…", s.Mode.Display())
}

func TestEscapeCancelsTextObjectMode(t *testing.T) {
	s := newNormalState(".name")

	s.HandleKey(charKey('d'))
	s.HandleKey(charKey('i'))
	s.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeNormal, s.Mode.Kind)
}
