// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"jiq/internal/autocomplete"
	"jiq/internal/clipboard"
	"jiq/internal/editor"
	"jiq/internal/jsonvalue"
)

// handleKeyEvent implements §4.5's dispatch priority: search overlay,
// then global keys, then focus-dependent handling. Yanking ("y"/"yy")
// is not a separate layer here: the editor package already resolves
// the full operator state machine and reports a completed yank via
// Outcome.Yanked, which handleInputFieldKey forwards to the clipboard.
func (m *Model) handleKeyEvent(msg tea.KeyMsg) {
	if m.search.Active() {
		m.search.HandleKey(msg)
		return
	}

	if m.handleGlobalKeys(msg) {
		return
	}

	switch m.focus {
	case FocusInputField:
		m.handleInputFieldKey(msg)
	case FocusResultsPane:
		m.handleResultsPaneKey(msg)
	}
}

// handleGlobalKeys implements the key bindings that work regardless of
// focus. Returns true if the key was consumed.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c":
		m.shouldQuit = true
		return true
	case "f1":
		m.closeTopOverlayOrToggleHelp()
		return true
	case "ctrl+s":
		m.snippets.Open()
		return true
	case "ctrl+a":
		m.ai.Toggle()
		return true
	case "ctrl+t":
		m.tooltip.Toggle()
		return true
	case "tab":
		if m.anyModalOpen() {
			return false
		}
		m.toggleFocus()
		return true
	case "enter":
		m.outputMode = OutputResults
		m.shouldQuit = true
		return true
	case "shift+enter", "alt+enter":
		m.outputMode = OutputQuery
		m.shouldQuit = true
		return true
	}
	return false
}

// closeTopOverlayOrToggleHelp implements F1's priority stack: help,
// then snippets, then history, then autocomplete, only then the plain
// help toggle. Esc closes help and snippets in handleInputFieldKey and
// history in handleHistoryPopupKey.
func (m *Model) closeTopOverlayOrToggleHelp() {
	switch {
	case m.helpVisible:
		m.helpVisible = false
	case m.snippets.IsVisible():
		m.snippets.Close()
	case m.history.IsVisible():
		m.history.Close()
	case m.autocomp.Visible():
		m.autocomp.Hide()
	default:
		m.helpVisible = !m.helpVisible
	}
}

func (m *Model) anyModalOpen() bool {
	return m.snippets.IsVisible() || m.history.IsVisible()
}

func (m *Model) toggleFocus() {
	if m.focus == FocusInputField {
		m.focus = FocusResultsPane
	} else {
		m.focus = FocusInputField
	}
}

func (m *Model) copyToClipboard(text string) {
	if err := clipboard.Copy(text, m.clipboardBackend); err != nil {
		m.logger.Warn("clipboard copy failed", "error", err)
	}
}

func (m *Model) handleInputFieldKey(msg tea.KeyMsg) {
	if m.history.IsVisible() {
		m.handleHistoryPopupKey(msg)
		return
	}

	if msg.Type == tea.KeyEsc {
		if m.helpVisible {
			m.helpVisible = false
			return
		}
		if m.snippets.IsVisible() {
			m.snippets.Close()
			return
		}
		if m.autocomp.Visible() {
			m.autocomp.Hide()
		}
		m.editor.Mode = editor.Normal
		return
	}

	if m.editor.Mode.Kind == editor.ModeInsert && m.autocomp.Visible() {
		switch msg.Type {
		case tea.KeyDown:
			m.autocomp.SelectNext()
			return
		case tea.KeyUp:
			m.autocomp.SelectPrevious()
			return
		case tea.KeyTab, tea.KeyEnter:
			m.acceptSuggestion()
			return
		}
	}

	if m.editor.Mode.Kind == editor.ModeInsert {
		switch msg.String() {
		case "ctrl+p":
			if entry, ok := m.history.CyclePrevious(); ok {
				m.replaceQueryWith(entry)
			}
			return
		case "ctrl+n":
			if entry, ok := m.history.CycleNext(); ok {
				m.replaceQueryWith(entry)
			} else {
				m.replaceQueryWith("")
			}
			return
		case "ctrl+r":
			m.openHistoryPopup()
			return
		case "up":
			m.openHistoryPopup()
			return
		}
	}

	before := m.editor.Buffer.Text()
	outcome := m.editor.HandleKey(msg)
	if outcome.ContentChanged {
		if m.editor.Buffer.Text() != before {
			m.braces.Rebuild(m.Query())
		}
		if outcome.ExecuteNow {
			m.executeQuery()
		} else {
			m.debouncer.Schedule()
		}
		m.updateAutocomplete()
		m.updateTooltip()
	}
	if outcome.Yanked != "" {
		m.copyToClipboard(outcome.Yanked)
	}
	if outcome.HelpToggled {
		m.helpVisible = !m.helpVisible
	}
}

func (m *Model) acceptSuggestion() {
	current, ok := m.autocomp.Current()
	if !ok {
		return
	}
	query := m.Query()
	cursor := m.editor.Buffer.Cursor()
	cls := autocomplete.ClassifyContext(query, cursor, m.braces)
	result := autocomplete.InsertSuggestion(query, cursor, cls, current)
	m.replaceQueryWith(result.Text)
	m.editor.Buffer.SetCursor(result.Cursor)
	m.autocomp.Hide()
}

func (m *Model) replaceQueryWith(text string) {
	m.editor.Buffer.DeleteLineByHead()
	m.editor.Buffer.DeleteLineByEnd()
	for _, r := range text {
		m.editor.Buffer.InsertRune(r)
	}
	m.braces.Rebuild(m.Query())
	m.executeQuery()
}

func (m *Model) openHistoryPopup() {
	if m.history.TotalCount() == 0 {
		return
	}
	m.history.Open(m.Query())
	m.autocomp.Hide()
}

func (m *Model) handleHistoryPopupKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.history.Close()
	case tea.KeyUp, tea.KeyCtrlP:
		m.history.SelectPrevious()
	case tea.KeyDown, tea.KeyCtrlN:
		m.history.SelectNext()
	case tea.KeyEnter:
		if entry, ok := m.history.Selected(); ok {
			m.history.Close()
			m.replaceQueryWith(entry)
		}
	case tea.KeyBackspace:
		q := m.history.SearchQuery()
		if q != "" {
			m.history.SetSearch(q[:len(q)-1])
		}
	case tea.KeyRunes:
		m.history.SetSearch(m.history.SearchQuery() + string(msg.Runes))
	}
}

// handleResultsPaneKey implements the scrolling bindings for the
// Results pane (§4.5's focus-dependent bindings), with vertical
// scrolling delegated to bubbles/viewport and horizontal scrolling
// (h/l, 0/$, H/L) tracked separately since viewport has no native
// horizontal scroll.
func (m *Model) handleResultsPaneKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.resultsViewport.LineDown(1)
	case "k", "up":
		m.resultsViewport.LineUp(1)
	case "ctrl+d", "pgdown":
		m.resultsViewport.HalfViewDown()
	case "ctrl+u", "pgup":
		m.resultsViewport.HalfViewUp()
	case "g", "home":
		m.resultsViewport.GotoTop()
	case "G", "end":
		m.resultsViewport.GotoBottom()
	case "/":
		// Search overlay is a stub (internal/search); this reserves the
		// binding so real find-in-results has a slot to slot into.
	case "y":
		m.copyToClipboard(m.Result())
	case "i", "tab":
		m.focus = FocusInputField
	}
}

// autocompleteSuggestions reads the cached query result (never the
// document being re-parsed) and the precomputed field-name index,
// per §4.3's "reads cached result" data flow.
func autocompleteSuggestions(m *Model, query string, cursor int) []autocomplete.Suggestion {
	if m.braces.IsStale(query) {
		m.braces.Rebuild(query)
	}
	var original jsonvalue.Value = m.query.InputJSON
	return autocomplete.GetSuggestions(
		query,
		cursor,
		m.query.ResultParsed(),
		m.query.ResultType(),
		original,
		m.query.AllFieldNames(),
		m.braces,
	)
}
