// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiq/internal/autocomplete"
	"jiq/internal/clipboard"
	"jiq/internal/editor"
	"jiq/internal/history"
	"jiq/internal/logging"
	"jiq/internal/snippets"
)

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

// newTestModel builds a Model whose history/snippets are replaced with
// in-memory state after New, so tests never write under $HOME (New
// itself still reads the default history and snippets files).
func newTestModel(t *testing.T, input any) *Model {
	t.Helper()
	m := New(Options{
		Input:  input,
		Logger: logging.New(logging.Config{Disabled: true}),
	})
	m.history = history.NewState(history.OpenPath(""))
	m.snippets = snippets.NewStateWithoutPersistence()
	t.Cleanup(m.Close)
	return m
}

func typeRunes(m *Model, s string) {
	for _, r := range s {
		m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingEntersQueryText(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{"name":"Alice"}`))
	typeRunes(m, ".name")
	assert.Equal(t, ".name", m.Query())
}

func TestTabTogglesFocusWhenNoModalOpen(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	assert.Equal(t, FocusInputField, m.focus)

	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusResultsPane, m.focus)

	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusInputField, m.focus)
}

func TestCtrlCRequestsQuitWithNoOutput(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.ShouldQuit())
	assert.Equal(t, OutputNone, m.OutputMode())
}

func TestEnterRequestsQuitWithResultsOutput(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.ShouldQuit())
	assert.Equal(t, OutputResults, m.OutputMode())
}

func TestF1TogglesHelpThenClosesOverOpenOverlays(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.helpVisible)

	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyF1})
	assert.False(t, m.helpVisible)
}

func TestCtrlSOpensSnippetPopup(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.snippets.IsVisible())
}

func TestEscClosesAutocompleteBeforeReturningToNormalMode(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	m.autocomp.SetItems([]autocomplete.Suggestion{{Text: "map", Kind: autocomplete.KindFunction}})
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.autocomp.Visible())
	assert.Equal(t, editor.Normal, m.editor.Mode)
}

func TestYankInOperatorModeCopiesLineToClipboard(t *testing.T) {
	m := newTestModel(t, decodeJSON(t, `{}`))
	m.clipboardBackend = clipboard.BackendOSC52
	typeRunes(m, "abc")
	m.editor.Mode = editor.Normal
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m.handleKeyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Equal(t, editor.Normal, m.editor.Mode)
}
