// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package editor

import "unicode"

// TextObjectTarget names what a text object's delimiters bound.
type TextObjectTarget int

const (
	ObjectWord TextObjectTarget = iota
	ObjectDoubleQuote
	ObjectSingleQuote
	ObjectBacktick
	ObjectParens
	ObjectBrackets
	ObjectBraces
	ObjectPipe
)

// TextObjectTargetFromRune maps the character typed after i/a to a target,
// the second half of an operator+scope+target chord (diw, ca", yi(, ...).
func TextObjectTargetFromRune(c rune) (TextObjectTarget, bool) {
	switch c {
	case 'w':
		return ObjectWord, true
	case '"':
		return ObjectDoubleQuote, true
	case '\'':
		return ObjectSingleQuote, true
	case '`':
		return ObjectBacktick, true
	case '(', ')', 'b':
		return ObjectParens, true
	case '[', ']':
		return ObjectBrackets, true
	case '{', '}', 'B':
		return ObjectBraces, true
	case '|':
		return ObjectPipe, true
	default:
		return 0, false
	}
}

func (t TextObjectTarget) delimiters() (rune, rune, bool) {
	switch t {
	case ObjectDoubleQuote:
		return '"', '"', true
	case ObjectSingleQuote:
		return '\'', '\'', true
	case ObjectBacktick:
		return '`', '`', true
	case ObjectParens:
		return '(', ')', true
	case ObjectBrackets:
		return '[', ']', true
	case ObjectBraces:
		return '{', '}', true
	default:
		return 0, 0, false
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// FindWordBounds returns [start,end) of the word under cursorCol.
func FindWordBounds(text []rune, cursorCol int, scope TextObjectScope) (int, int, bool) {
	if len(text) == 0 || cursorCol >= len(text) {
		return 0, 0, false
	}
	if !isWordChar(text[cursorCol]) {
		return 0, 0, false
	}

	start := cursorCol
	for start > 0 && isWordChar(text[start-1]) {
		start--
	}
	end := cursorCol
	for end < len(text) && isWordChar(text[end]) {
		end++
	}

	if scope == ScopeInner {
		return start, end, true
	}

	if end < len(text) && text[end] == ' ' {
		extEnd := end
		for extEnd < len(text) && text[extEnd] == ' ' {
			extEnd++
		}
		return start, extEnd, true
	}
	if start > 0 && text[start-1] == ' ' {
		extStart := start
		for extStart > 0 && text[extStart-1] == ' ' {
			extStart--
		}
		return extStart, end, true
	}
	return start, end, true
}

// FindQuoteBounds returns the paired quote bounds surrounding cursorCol.
// For same-character delimiters the "open" side is the one whose count of
// delimiters before it is even.
func FindQuoteBounds(text []rune, cursorCol int, delimiter rune, scope TextObjectScope) (int, int, bool) {
	if len(text) == 0 {
		return 0, 0, false
	}
	cursorCol = minInt(cursorCol, len(text)-1)

	openPos := -1
	for i := cursorCol; i >= 0; i-- {
		if text[i] != delimiter {
			continue
		}
		countBefore := 0
		for _, r := range text[:i] {
			if r == delimiter {
				countBefore++
			}
		}
		if countBefore%2 == 0 {
			openPos = i
			break
		}
	}
	if openPos == -1 {
		return 0, 0, false
	}

	closePos := -1
	for i := openPos + 1; i < len(text); i++ {
		if text[i] == delimiter {
			closePos = i
			break
		}
	}
	if closePos == -1 {
		return 0, 0, false
	}
	if cursorCol > closePos {
		return 0, 0, false
	}

	if scope == ScopeInner {
		return openPos + 1, closePos, true
	}
	return openPos, closePos + 1, true
}

// FindBracketBounds returns the innermost matching delimiter pair
// containing cursorCol, honoring nesting depth.
func FindBracketBounds(text []rune, cursorCol int, open, close rune, scope TextObjectScope) (int, int, bool) {
	if len(text) == 0 {
		return 0, 0, false
	}
	cursorCol = minInt(cursorCol, len(text)-1)

	searchEnd := cursorCol
	if text[cursorCol] == close {
		searchEnd = cursorCol - 1
	}

	openPos := -1
	depth := 0
	for i := searchEnd; i >= 0; i-- {
		switch text[i] {
		case close:
			depth++
		case open:
			if depth == 0 {
				openPos = i
			} else {
				depth--
			}
		}
		if openPos != -1 {
			break
		}
	}
	if openPos == -1 {
		return 0, 0, false
	}

	closePos := -1
	depth = 0
	for i := openPos + 1; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			if depth == 0 {
				closePos = i
			} else {
				depth--
			}
		}
		if closePos != -1 {
			break
		}
	}
	if closePos == -1 {
		return 0, 0, false
	}
	if cursorCol > closePos {
		return 0, 0, false
	}

	if scope == ScopeInner {
		return openPos + 1, closePos, true
	}
	return openPos, closePos + 1, true
}

// FindPipeBounds returns the bounds of the "|"-delimited segment containing
// cursorCol. Pipes are simple separators with no nesting.
func FindPipeBounds(text []rune, cursorCol int, scope TextObjectScope) (int, int, bool) {
	if len(text) == 0 {
		return 0, 0, false
	}
	cursorCol = minInt(cursorCol, len(text)-1)

	leftPipe := -1
	for i := cursorCol - 1; i >= 0; i-- {
		if text[i] == '|' {
			leftPipe = i
			break
		}
	}
	rightPipe := -1
	for i := cursorCol + 1; i < len(text); i++ {
		if text[i] == '|' {
			rightPipe = i
			break
		}
	}

	var start, end int
	if text[cursorCol] == '|' {
		if leftPipe != -1 {
			start = leftPipe + 1
		}
		end = cursorCol
	} else {
		if leftPipe != -1 {
			start = leftPipe + 1
		}
		if rightPipe != -1 {
			end = rightPipe
		} else {
			end = len(text)
		}
	}

	trimmedStart, trimmedEnd, ok := trimRange(text, start, end)

	if scope == ScopeInner {
		if !ok {
			return 0, 0, false
		}
		return trimmedStart, trimmedEnd, true
	}

	if !ok {
		return 0, 0, false
	}

	switch {
	case rightPipe != -1 && text[cursorCol] != '|':
		afterPipe := rightPipe + 1
		for afterPipe < len(text) && isSpaceRuneAny(text[afterPipe]) {
			afterPipe++
		}
		return trimmedStart, afterPipe, true
	case leftPipe != -1:
		return leftPipe, trimmedEnd, true
	default:
		return trimmedStart, trimmedEnd, true
	}
}

func isSpaceRuneAny(r rune) bool {
	return unicode.IsSpace(r)
}

func trimRange(text []rune, start, end int) (int, int, bool) {
	ts := end
	for i := start; i < end; i++ {
		if !unicode.IsSpace(text[i]) {
			ts = i
			break
		}
	}
	te := start
	for i := end - 1; i >= start; i-- {
		if !unicode.IsSpace(text[i]) {
			te = i + 1
			break
		}
	}
	if ts >= te {
		return 0, 0, false
	}
	return ts, te, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FindTextObjectBounds dispatches to the bounds finder for target.
func FindTextObjectBounds(text []rune, cursorCol int, target TextObjectTarget, scope TextObjectScope) (int, int, bool) {
	switch target {
	case ObjectWord:
		return FindWordBounds(text, cursorCol, scope)
	case ObjectDoubleQuote:
		return FindQuoteBounds(text, cursorCol, '"', scope)
	case ObjectSingleQuote:
		return FindQuoteBounds(text, cursorCol, '\'', scope)
	case ObjectBacktick:
		return FindQuoteBounds(text, cursorCol, '`', scope)
	case ObjectPipe:
		return FindPipeBounds(text, cursorCol, scope)
	case ObjectParens, ObjectBrackets, ObjectBraces:
		open, close, ok := target.delimiters()
		if !ok {
			return 0, 0, false
		}
		return FindBracketBounds(text, cursorCol, open, close, scope)
	default:
		return 0, 0, false
	}
}

// ExecuteTextObject deletes the text object identified by target/scope at
// the buffer's cursor, returning the deleted text and whether it applied.
func ExecuteTextObject(b *Buffer, target TextObjectTarget, scope TextObjectScope) (string, bool) {
	start, end, ok := FindTextObjectBounds(b.text, b.cursor, target, scope)
	if !ok || start >= end {
		return "", false
	}
	return b.DeleteRange(start, end), true
}
