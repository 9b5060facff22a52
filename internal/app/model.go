// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package app wires the query worker, autocomplete engine, modal
// editor, clipboard, snippets, history, and tooltip into a single
// bubbletea program: the event loop described in spec §4.5 (run the
// debouncer, poll the worker's response channel, poll a terminal
// event, dispatch it) expressed as a tea.Model driven by Init/Update/
// View plus a repeating tick.
package app

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"jiq/internal/ai"
	"jiq/internal/autocomplete"
	"jiq/internal/clipboard"
	"jiq/internal/editor"
	"jiq/internal/history"
	"jiq/internal/jsonvalue"
	"jiq/internal/logging"
	"jiq/internal/query"
	"jiq/internal/search"
	"jiq/internal/snippets"
	"jiq/internal/tooltip"
)

// Focus names which pane receives keys not claimed by a higher
// dispatch-priority layer.
type Focus int

const (
	FocusInputField Focus = iota
	FocusResultsPane
)

// OutputMode selects what Model.Query / Model.Result the caller (the
// cobra command, per §6) writes to stdout on a normal quit.
type OutputMode int

const (
	OutputNone OutputMode = iota
	OutputQuery
	OutputResults
)

// Model is the application's full bubbletea state.
type Model struct {
	query      *query.State
	editor     *editor.State
	autocomp   *autocomplete.State
	braces     *autocomplete.BraceTracker
	history    *history.State
	snippets   *snippets.State
	tooltip    *tooltip.State
	ai         *ai.Panel
	search     search.Overlay
	debouncer  Debouncer
	logger     *logging.Logger

	clipboardBackend clipboard.Backend

	focus      Focus
	shouldQuit bool
	outputMode OutputMode

	helpVisible bool

	resultsViewport viewport.Model
	width, height   int
	ready           bool
}

// Options configures a new Model.
type Options struct {
	Input            jsonvalue.Value
	ClipboardBackend clipboard.Backend
	Logger           *logging.Logger
}

// New constructs a Model bound to input, with its own query worker,
// history store, and snippet state, ready to run under tea.NewProgram.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	m := &Model{
		query:            query.NewState(opts.Input),
		editor:           editor.NewState(),
		autocomp:         &autocomplete.State{},
		braces:           &autocomplete.BraceTracker{},
		history:          history.NewState(history.Open()),
		snippets:         snippets.NewState(),
		tooltip:          tooltip.NewState(true),
		ai:               ai.NewPanel(),
		search:           search.NewStub(),
		clipboardBackend: opts.ClipboardBackend,
		logger:           logger,
		focus:            FocusInputField,
	}
	return m
}

// Init implements tea.Model: kick off the repeating tick that drives
// debounce expiry and worker-response polling (the first two steps of
// §4.5's event loop, which crossterm's blocking poll-with-timeout
// implements as a single call but bubbletea expresses as a message
// loop instead).
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Query returns the current text of the input line.
func (m *Model) Query() string { return m.editor.Buffer.Text() }

// ShouldQuit reports whether the program has requested exit.
func (m *Model) ShouldQuit() bool { return m.shouldQuit }

// OutputMode reports what (if anything) should be written to stdout
// after the program exits.
func (m *Model) OutputMode() OutputMode { return m.outputMode }

// Result returns the current query's formatted result; it is empty
// when the current query failed.
func (m *Model) Result() string {
	r := m.query.Result()
	return r.Formatted
}

// Close releases the query worker and logger resources.
func (m *Model) Close() {
	m.query.Close()
	m.logger.Close()
}
