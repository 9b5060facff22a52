// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package editor

// maxUndoDepth bounds the undo stack so a long editing session doesn't
// grow it without limit.
const maxUndoDepth = 200

// snapshot is a single undo/redo checkpoint: the full buffer contents and
// cursor position at the time it was taken.
type snapshot struct {
	text   []rune
	cursor int
}

// Buffer is a single-line, cursor-addressed rune buffer with undo/redo,
// standing in for the teacher's multi-line textarea widget narrowed to one
// line (queries are always a single logical line).
type Buffer struct {
	text   []rune
	cursor int

	undoStack []snapshot
	redoStack []snapshot
	// coalescing tracks whether the most recent edit was a plain
	// character insertion, so consecutive keystrokes in Insert mode share
	// one undo step instead of one per rune.
	coalescing bool
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferWithText returns a buffer seeded with text, cursor at the end.
func NewBufferWithText(text string) *Buffer {
	r := []rune(text)
	return &Buffer{text: r, cursor: len(r)}
}

// Text returns the buffer's current contents.
func (b *Buffer) Text() string { return string(b.text) }

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the current cursor column (0-indexed, may equal Len()).
func (b *Buffer) Cursor() int { return b.cursor }

// SetCursor clamps and sets the cursor column.
func (b *Buffer) SetCursor(col int) {
	b.cursor = clampCol(col, len(b.text))
}

func clampCol(col, length int) int {
	if col < 0 {
		return 0
	}
	if col > length {
		return length
	}
	return col
}

// checkpoint pushes the current state onto the undo stack and clears the
// redo stack, per the conventional "any new edit invalidates redo" rule.
func (b *Buffer) checkpoint() {
	b.undoStack = append(b.undoStack, snapshot{text: append([]rune(nil), b.text...), cursor: b.cursor})
	if len(b.undoStack) > maxUndoDepth {
		b.undoStack = b.undoStack[len(b.undoStack)-maxUndoDepth:]
	}
	b.redoStack = nil
}

// InsertRune inserts r at the cursor and advances it, coalescing
// consecutive insertions into a single undo step.
func (b *Buffer) InsertRune(r rune) {
	if !b.coalescing {
		b.checkpoint()
	}
	b.coalescing = true
	b.text = append(b.text[:b.cursor], append([]rune{r}, b.text[b.cursor:]...)...)
	b.cursor++
}

// breakCoalescing ends the current insertion run so the next edit starts
// its own undo step.
func (b *Buffer) breakCoalescing() {
	b.coalescing = false
}

// DeleteNextChar deletes the rune under the cursor (vi "x").
func (b *Buffer) DeleteNextChar() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.checkpoint()
	b.breakCoalescing()
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return true
}

// DeleteCharBefore deletes the rune before the cursor (vi "X" / backspace).
func (b *Buffer) DeleteCharBefore() bool {
	if b.cursor == 0 {
		return false
	}
	b.checkpoint()
	b.breakCoalescing()
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

// DeleteLineByEnd deletes from the cursor to the end of the line (vi "D").
func (b *Buffer) DeleteLineByEnd() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	b.checkpoint()
	b.breakCoalescing()
	b.text = b.text[:b.cursor]
	return true
}

// DeleteLineByHead deletes from the start of the line to the cursor.
func (b *Buffer) DeleteLineByHead() bool {
	if b.cursor == 0 {
		return false
	}
	b.checkpoint()
	b.breakCoalescing()
	b.text = b.text[b.cursor:]
	b.cursor = 0
	return true
}

// DeleteRange deletes [start,end) and moves the cursor to start, returning
// the deleted text (e.g. for yank-on-delete). Used by operator motions and
// text objects, both of which compute their range first.
func (b *Buffer) DeleteRange(start, end int) string {
	start = clampCol(start, len(b.text))
	end = clampCol(end, len(b.text))
	if start >= end {
		return ""
	}
	b.checkpoint()
	b.breakCoalescing()
	cut := string(b.text[start:end])
	b.text = append(b.text[:start], b.text[end:]...)
	b.cursor = start
	return cut
}

// RuneRange returns the substring [start,end) without mutating the buffer,
// for yank (copy, no delete) operations.
func (b *Buffer) RuneRange(start, end int) string {
	start = clampCol(start, len(b.text))
	end = clampCol(end, len(b.text))
	if start >= end {
		return ""
	}
	return string(b.text[start:end])
}

// MoveHead moves the cursor to column 0 (vi "0"/"^"/Home).
func (b *Buffer) MoveHead() { b.cursor = 0; b.breakCoalescing() }

// MoveEnd moves the cursor to the last column (vi "$"/End).
func (b *Buffer) MoveEnd() { b.cursor = len(b.text); b.breakCoalescing() }

// MoveBack moves the cursor one column left (vi "h"/Left).
func (b *Buffer) MoveBack() {
	if b.cursor > 0 {
		b.cursor--
	}
	b.breakCoalescing()
}

// MoveForward moves the cursor one column right (vi "l"/Right).
func (b *Buffer) MoveForward() {
	if b.cursor < len(b.text) {
		b.cursor++
	}
	b.breakCoalescing()
}

// Undo restores the most recent checkpoint, pushing the current state onto
// the redo stack.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	b.breakCoalescing()
	n := len(b.undoStack) - 1
	prev := b.undoStack[n]
	b.undoStack = b.undoStack[:n]
	b.redoStack = append(b.redoStack, snapshot{text: append([]rune(nil), b.text...), cursor: b.cursor})
	b.text, b.cursor = prev.text, prev.cursor
	return true
}

// Redo reverses the most recent Undo.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	b.breakCoalescing()
	n := len(b.redoStack) - 1
	next := b.redoStack[n]
	b.redoStack = b.redoStack[:n]
	b.undoStack = append(b.undoStack, snapshot{text: append([]rune(nil), b.text...), cursor: b.cursor})
	b.text, b.cursor = next.text, next.cursor
	return true
}
