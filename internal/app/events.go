// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jiq/internal/ai"
)

// tickInterval matches §4.5's 100ms terminal poll timeout: the loop
// wakes this often even with no key input, so the debouncer and the
// worker's response channel are serviced promptly.
const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case tickMsg:
		m.runDebouncerIfDue()
		if m.query.PollResponse() {
			m.refreshResultsView()
		}
		ai.PollResponseChannel(m.ai)
		return m, tickCmd()

	case tea.KeyMsg:
		if msg.Paste {
			m.handlePaste(string(msg.Runes))
			return m, nil
		}
		m.handleKeyEvent(msg)
		if m.shouldQuit {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	headerHeight := 4
	viewportHeight := msg.Height - headerHeight
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if !m.ready {
		m.resultsViewport = newResultsViewport(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.resultsViewport.Width = msg.Width
		m.resultsViewport.Height = viewportHeight
	}
	m.resultsViewport.SetContent(m.Result())
}

// refreshResultsView pushes the latest query result into the results
// viewport once a fresh response has been applied.
func (m *Model) refreshResultsView() {
	if m.ready {
		m.resultsViewport.SetContent(m.Result())
	}
}

func (m *Model) runDebouncerIfDue() {
	if !m.debouncer.ShouldExecute() {
		return
	}
	m.executeQuery()
	m.debouncer.MarkExecuted()
}

// executeQuery submits the current input line to the query worker and
// records it in history, mirroring execute_query_with_auto_show.
func (m *Model) executeQuery() {
	q := m.Query()
	m.query.ExecuteAsync(q)
	m.history.Record(q)
}

// handlePaste inserts pasted text verbatim, rebuilds the brace
// tracker, executes immediately (no debounce), and refreshes
// autocomplete/tooltip — exactly the original's handle_paste_event.
func (m *Model) handlePaste(text string) {
	for _, r := range text {
		m.editor.Buffer.InsertRune(r)
	}
	m.braces.Rebuild(m.Query())
	m.executeQuery()
	m.updateAutocomplete()
	m.updateTooltip()
}

func (m *Model) updateAutocomplete() {
	query := m.Query()
	cursor := m.editor.Buffer.Cursor()
	if cursor > len(query) {
		cursor = len(query)
	}
	items := autocompleteSuggestions(m, query, cursor)
	if len(items) == 0 {
		m.autocomp.Hide()
		return
	}
	m.autocomp.SetItems(items)
}

func (m *Model) updateTooltip() {
	m.tooltip.Update(m.Query(), m.editor.Buffer.Cursor())
}
