// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package editor

import tea "github.com/charmbracelet/bubbletea"

// Outcome summarizes the side effects a key produced, for the owning app
// model to react to (debounce scheduling, yank dispatch, help toggling)
// without the editor package needing to know about clipboard, history, or
// query execution.
type Outcome struct {
	// ContentChanged is true when the buffer's text was modified, meaning
	// query execution should be (re)scheduled through the debouncer.
	ContentChanged bool
	// ExecuteNow is true when the change should bypass the debouncer and
	// execute immediately, matching the teacher's vi commands that run the
	// query synchronously (undo, redo, operator completion, text object
	// completion) rather than waiting on typed-character debounce.
	ExecuteNow bool
	// Yanked holds the text captured by a completed "y" operator, for the
	// caller to hand to the clipboard backend. Empty when no yank occurred.
	Yanked string
	// HelpToggled is true when "?" flipped the normal-mode help overlay.
	HelpToggled bool
}

// State is the editor's full modal state: the current mode, the text
// buffer, the last character search (for ";"/","), and whether the help
// overlay is showing.
type State struct {
	Mode           Mode
	Buffer         *Buffer
	LastCharSearch *CharSearchState
	HelpVisible    bool
}

// NewState returns a State starting in Insert mode with an empty buffer.
func NewState() *State {
	return &State{Mode: Insert, Buffer: NewBuffer()}
}

// HandleKey dispatches msg to the handler for the current mode and returns
// what changed. Escape always returns to Normal mode regardless of the
// pending sub-mode, per vi convention.
func (s *State) HandleKey(msg tea.KeyMsg) Outcome {
	if msg.Type == tea.KeyEsc {
		s.Mode = Normal
		return Outcome{}
	}

	switch s.Mode.Kind {
	case ModeInsert:
		return s.handleInsertModeKey(msg)
	case ModeNormal:
		return s.handleNormalModeKey(msg)
	case ModeOperator:
		return s.handleOperatorModeKey(msg)
	case ModeCharSearch:
		return s.handleCharSearchModeKey(msg)
	case ModeTextObject:
		return s.handleTextObjectModeKey(msg)
	default:
		return Outcome{}
	}
}

func (s *State) handleInsertModeKey(msg tea.KeyMsg) Outcome {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			s.Buffer.InsertRune(r)
		}
		return Outcome{ContentChanged: true}
	case tea.KeySpace:
		s.Buffer.InsertRune(' ')
		return Outcome{ContentChanged: true}
	case tea.KeyBackspace:
		if s.Buffer.DeleteCharBefore() {
			return Outcome{ContentChanged: true}
		}
	case tea.KeyDelete:
		if s.Buffer.DeleteNextChar() {
			return Outcome{ContentChanged: true}
		}
	case tea.KeyLeft:
		s.Buffer.MoveBack()
	case tea.KeyRight:
		s.Buffer.MoveForward()
	case tea.KeyHome:
		s.Buffer.MoveHead()
	case tea.KeyEnd:
		s.Buffer.MoveEnd()
	}
	return Outcome{}
}

func (s *State) handleNormalModeKey(msg tea.KeyMsg) Outcome {
	var out Outcome

	switch msg.String() {
	case "?":
		s.HelpVisible = !s.HelpVisible
		out.HelpToggled = true

	case "h", "left":
		s.Buffer.MoveBack()
	case "l", "right":
		s.Buffer.MoveForward()

	case "0", "^", "home":
		s.Buffer.MoveHead()
	case "$", "end":
		s.Buffer.MoveEnd()

	case "w":
		s.Buffer.WordForward()
	case "b":
		s.Buffer.WordBack()
	case "e":
		s.Buffer.WordEnd()

	case "i":
		s.Mode = Insert
	case "a":
		s.Buffer.MoveForward()
		s.Mode = Insert
	case "I":
		s.Buffer.MoveHead()
		s.Mode = Insert
	case "A":
		s.Buffer.MoveEnd()
		s.Mode = Insert

	case "x":
		s.Buffer.DeleteNextChar()
		out.ContentChanged, out.ExecuteNow = true, true
	case "X":
		s.Buffer.DeleteCharBefore()
		out.ContentChanged, out.ExecuteNow = true, true

	case "D":
		s.Buffer.DeleteLineByEnd()
		out.ContentChanged, out.ExecuteNow = true, true
	case "C":
		s.Buffer.DeleteLineByEnd()
		s.Mode = Insert
		out.ContentChanged, out.ExecuteNow = true, true

	case "d":
		s.Mode = Operator('d')
	case "c":
		s.Mode = Operator('c')
	case "y":
		s.Mode = Operator('y')

	case "f":
		s.Mode = CharSearch(SearchForward, SearchFind)
	case "F":
		s.Mode = CharSearch(SearchBackward, SearchFind)
	case "t":
		s.Mode = CharSearch(SearchForward, SearchTill)
	case "T":
		s.Mode = CharSearch(SearchBackward, SearchTill)

	case ";":
		s.repeatLastCharSearch(false)
	case ",":
		s.repeatLastCharSearch(true)

	case "u":
		s.Buffer.Undo()
		out.ContentChanged, out.ExecuteNow = true, true
	case "ctrl+r":
		s.Buffer.Redo()
		out.ContentChanged, out.ExecuteNow = true, true
	}

	return out
}

// handleOperatorModeKey implements a pending 'd'/'c'/'y' operator: the
// doubled key ("dd", "cc", "yy") applies to the whole line, a motion key
// applies the operator over the span traversed, and "i"/"a" hand off to
// TextObject mode.
func (s *State) handleOperatorModeKey(msg tea.KeyMsg) Outcome {
	operator := s.Mode.Operator
	key := msg.String()

	if key == string(operator) {
		var out Outcome
		switch operator {
		case 'y':
			out.Yanked = s.Buffer.Text()
			s.Mode = Normal
		case 'd', 'c':
			s.Buffer.DeleteLineByHead()
			s.Buffer.DeleteLineByEnd()
			if operator == 'c' {
				s.Mode = Insert
			} else {
				s.Mode = Normal
			}
			out.ContentChanged, out.ExecuteNow = true, true
		default:
			s.Mode = Normal
		}
		return out
	}

	if key == "i" {
		s.Mode = TextObject(operator, ScopeInner)
		return Outcome{}
	}
	if key == "a" {
		s.Mode = TextObject(operator, ScopeAround)
		return Outcome{}
	}

	start := s.Buffer.Cursor()
	motionApplied := true
	switch key {
	case "w":
		s.Buffer.WordForward()
	case "b":
		s.Buffer.WordBack()
	case "e":
		s.Buffer.WordEnd()
		s.Buffer.MoveForward()
	case "0", "^", "home":
		s.Buffer.MoveHead()
	case "$", "end":
		s.Buffer.MoveEnd()
	case "h", "left":
		s.Buffer.MoveBack()
	case "l", "right":
		s.Buffer.MoveForward()
	default:
		motionApplied = false
	}

	if !motionApplied {
		s.Mode = Normal
		return Outcome{}
	}

	end := s.Buffer.Cursor()
	lo, hi := start, end
	if lo > hi {
		lo, hi = hi, lo
	}

	// 'd'/'c' delete the motion's span; 'y' copies it and puts the
	// cursor back where the motion started.
	var out Outcome
	out.ExecuteNow = true
	switch operator {
	case 'd':
		s.Buffer.DeleteRange(lo, hi)
		s.Mode = Normal
		out.ContentChanged = true
	case 'c':
		s.Buffer.DeleteRange(lo, hi)
		s.Mode = Insert
		out.ContentChanged = true
	case 'y':
		out.Yanked = s.Buffer.RuneRange(lo, hi)
		s.Buffer.SetCursor(start)
		s.Mode = Normal
	default:
		s.Buffer.SetCursor(start)
		s.Mode = Normal
	}
	return out
}

func (s *State) handleCharSearchModeKey(msg tea.KeyMsg) Outcome {
	direction, searchType := s.Mode.Direction, s.Mode.Type
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		target := msg.Runes[0]
		if ExecuteCharSearch(s.Buffer, target, direction, searchType) {
			s.LastCharSearch = &CharSearchState{Character: target, Direction: direction, Type: searchType}
		}
	}
	s.Mode = Normal
	return Outcome{}
}

func (s *State) handleTextObjectModeKey(msg tea.KeyMsg) Outcome {
	operator, scope := s.Mode.Operator, s.Mode.Scope

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		s.Mode = Normal
		return Outcome{}
	}

	target, ok := TextObjectTargetFromRune(msg.Runes[0])
	if !ok {
		s.Mode = Normal
		return Outcome{}
	}

	if operator == 'y' {
		s.Mode = Normal
		start, end, ok := FindTextObjectBounds(s.Buffer.text, s.Buffer.cursor, target, scope)
		if !ok || start >= end {
			return Outcome{}
		}
		return Outcome{Yanked: s.Buffer.RuneRange(start, end)}
	}

	_, applied := ExecuteTextObject(s.Buffer, target, scope)
	if !applied {
		s.Mode = Normal
		return Outcome{}
	}

	var out Outcome
	if operator == 'c' {
		s.Mode = Insert
	} else {
		s.Mode = Normal
	}
	out.ContentChanged, out.ExecuteNow = true, true
	return out
}

func (s *State) repeatLastCharSearch(reverse bool) {
	if s.LastCharSearch == nil {
		return
	}
	dir := s.LastCharSearch.Direction
	if reverse {
		dir = dir.Opposite()
	}
	ExecuteCharSearch(s.Buffer, s.LastCharSearch.Character, dir, s.LastCharSearch.Type)
}
