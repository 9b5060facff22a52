// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snippets

import "fmt"

// State is the snippet popup's full interaction state: the saved
// snippets, the current Mode, search/selection, and the pending input
// fields for whichever create/edit/delete flow is active. It mirrors
// the original's SnippetState, trimmed to the CRUD+search+navigation
// surface the module layout calls out (full parity with every getter
// snippet_state.rs exposes for rendering is out of scope; the popup's
// text rendering lives in the app package, not here).
type State struct {
	path    string
	persist bool

	all      []Snippet
	matcher  Matcher
	search   string
	filtered []int

	visible  bool
	selected int
	hovered  int

	mode Mode

	pendingName        string
	pendingQuery       string
	pendingDescription string
	editTarget         int
}

// NewState loads snippets from the default path and returns a State
// ready for the browse popup.
func NewState() *State {
	return newStateAt(DefaultPath(), true)
}

// NewStateWithoutPersistence returns a State that never touches the
// filesystem, for tests and for --no-persist style embedding.
func NewStateWithoutPersistence() *State {
	return newStateAt("", false)
}

func newStateAt(path string, persist bool) *State {
	s := &State{path: path, persist: persist, matcher: NewMatcher(), hovered: -1}
	if persist {
		s.all = Load(path)
	}
	s.refreshFiltered()
	return s
}

// IsVisible reports whether the snippet popup is open.
func (s *State) IsVisible() bool { return s.visible }

// IsEditing reports whether the popup is in any mode other than
// plain browsing (create/edit/delete all count).
func (s *State) IsEditing() bool { return s.mode != ModeBrowse }

// Open shows the popup in browse mode.
func (s *State) Open() {
	s.visible = true
	s.mode = ModeBrowse
	s.search = ""
	s.selected = 0
	s.refreshFiltered()
}

// Close hides the popup and drops any in-progress edit.
func (s *State) Close() {
	s.visible = false
	s.mode = ModeBrowse
}

// Mode returns the popup's current interaction mode.
func (s *State) Mode() Mode { return s.mode }

// Snippets returns all saved snippets, persisted order.
func (s *State) Snippets() []Snippet { return append([]Snippet(nil), s.all...) }

// FilteredCount returns how many snippets match the current search.
func (s *State) FilteredCount() int { return len(s.filtered) }

// SelectedIndex returns the popup's highlighted row, an index into
// the filtered (not raw) list.
func (s *State) SelectedIndex() int { return s.selected }

// SelectedSnippet returns the snippet currently highlighted, if any.
func (s *State) SelectedSnippet() (Snippet, bool) {
	if s.selected < 0 || s.selected >= len(s.filtered) {
		return Snippet{}, false
	}
	return s.all[s.filtered[s.selected]], true
}

// FilteredSnippetAt returns the snippet at row i of the filtered list,
// for popup rendering.
func (s *State) FilteredSnippetAt(i int) (Snippet, bool) {
	if i < 0 || i >= len(s.filtered) {
		return Snippet{}, false
	}
	return s.all[s.filtered[i]], true
}

// SelectNext/SelectPrevious move the highlighted row, wrapping.
func (s *State) SelectNext() {
	if len(s.filtered) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.filtered)
}

func (s *State) SelectPrevious() {
	if len(s.filtered) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.filtered)) % len(s.filtered)
}

// SearchQuery returns the popup's current filter text.
func (s *State) SearchQuery() string { return s.search }

// SetSearchQuery updates the filter text and re-runs the matcher,
// exactly as on_search_input_changed does.
func (s *State) SetSearchQuery(query string) {
	s.search = query
	s.selected = 0
	s.refreshFiltered()
}

func (s *State) refreshFiltered() {
	s.filtered = s.matcher.Filter(s.search, s.all)
}

// EnterCreateMode switches to ModeCreate, seeding the pending query
// with currentQuery (the input field's contents at the moment the
// user asked to save it as a snippet).
func (s *State) EnterCreateMode(currentQuery string) {
	s.mode = ModeCreate
	s.pendingName = ""
	s.pendingQuery = currentQuery
	s.pendingDescription = ""
}

// CancelCreate abandons an in-progress create and returns to browse.
func (s *State) CancelCreate() {
	s.mode = ModeBrowse
}

// SetPendingName/SetPendingQuery/SetPendingDescription update the
// create/edit form fields as the user types.
func (s *State) SetPendingName(name string)               { s.pendingName = name }
func (s *State) SetPendingQuery(query string)              { s.pendingQuery = query }
func (s *State) SetPendingDescription(description string)  { s.pendingDescription = description }
func (s *State) PendingName() string                       { return s.pendingName }
func (s *State) PendingQuery() string                      { return s.pendingQuery }
func (s *State) PendingDescription() string                { return s.pendingDescription }

// SaveNewSnippet validates and prepends the pending fields as a new
// Snippet, persisting immediately. Names must be non-empty and unique;
// duplicates report an error rather than silently overwriting, since
// an accidental name collision while creating is almost always a
// mistake, not an intended replace (ModeEditName... is the explicit
// rename path).
func (s *State) SaveNewSnippet() error {
	name := s.pendingName
	if name == "" {
		return fmt.Errorf("snippet name cannot be empty")
	}
	for _, sn := range s.all {
		if sn.Name == name {
			return fmt.Errorf("a snippet named %q already exists", name)
		}
	}
	s.all = append([]Snippet{{Name: name, Query: s.pendingQuery, Description: s.pendingDescription}}, s.all...)
	s.mode = ModeBrowse
	s.refreshFiltered()
	return s.persistIfEnabled()
}

// EnterEditMode switches to editing the currently selected snippet's
// name, seeding the pending fields from it.
func (s *State) EnterEditMode() error {
	snippet, ok := s.SelectedSnippet()
	if !ok {
		return fmt.Errorf("no snippet selected")
	}
	s.editTarget = s.filtered[s.selected]
	s.pendingName = snippet.Name
	s.pendingQuery = snippet.Query
	s.pendingDescription = snippet.Description
	s.mode = ModeEditName
	return nil
}

// CancelEdit abandons an in-progress edit and returns to browse.
func (s *State) CancelEdit() { s.mode = ModeBrowse }

// UpdateSnippetName renames the edit target to pendingName, rejecting
// a collision with a different existing snippet.
func (s *State) UpdateSnippetName() error {
	if s.editTarget < 0 || s.editTarget >= len(s.all) {
		return fmt.Errorf("no snippet selected")
	}
	name := s.pendingName
	if name == "" {
		return fmt.Errorf("snippet name cannot be empty")
	}
	for i, sn := range s.all {
		if i != s.editTarget && sn.Name == name {
			return fmt.Errorf("a snippet named %q already exists", name)
		}
	}
	s.all[s.editTarget].Name = name
	s.mode = ModeBrowse
	s.refreshFiltered()
	return s.persistIfEnabled()
}

// UpdateSnippetQuery writes pendingQuery to the edit target.
func (s *State) UpdateSnippetQuery() error {
	if s.editTarget < 0 || s.editTarget >= len(s.all) {
		return fmt.Errorf("no snippet selected")
	}
	s.all[s.editTarget].Query = s.pendingQuery
	s.mode = ModeBrowse
	return s.persistIfEnabled()
}

// UpdateSnippetDescription writes pendingDescription to the edit target.
func (s *State) UpdateSnippetDescription() error {
	if s.editTarget < 0 || s.editTarget >= len(s.all) {
		return fmt.Errorf("no snippet selected")
	}
	s.all[s.editTarget].Description = s.pendingDescription
	s.mode = ModeBrowse
	return s.persistIfEnabled()
}

// EnterDeleteMode switches to delete confirmation for the selected
// snippet.
func (s *State) EnterDeleteMode() error {
	if _, ok := s.SelectedSnippet(); !ok {
		return fmt.Errorf("no snippet selected")
	}
	s.editTarget = s.filtered[s.selected]
	s.mode = ModeDeleteConfirm
	return nil
}

// CancelDelete abandons an in-progress delete and returns to browse.
func (s *State) CancelDelete() { s.mode = ModeBrowse }

// ConfirmDelete removes the delete target and persists.
func (s *State) ConfirmDelete() error {
	if s.editTarget < 0 || s.editTarget >= len(s.all) {
		return fmt.Errorf("no snippet selected")
	}
	s.all = append(s.all[:s.editTarget], s.all[s.editTarget+1:]...)
	if s.selected >= len(s.filtered)-1 && s.selected > 0 {
		s.selected--
	}
	s.mode = ModeBrowse
	s.refreshFiltered()
	return s.persistIfEnabled()
}

// Reload re-reads the backing file, picking up external edits (e.g. a
// snippets.toml hand-edited while jiq was running). WatchFile provides
// a matching fsnotify watch; the app package starts none and does not
// call Reload.
func (s *State) Reload() {
	if !s.persist {
		return
	}
	s.all = Load(s.path)
	s.refreshFiltered()
}

func (s *State) persistIfEnabled() error {
	if !s.persist {
		return nil
	}
	return Save(s.path, s.all)
}
