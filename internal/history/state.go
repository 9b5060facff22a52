// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package history

import "strings"

// State tracks cycling position and popup visibility over a Store,
// mirroring the App-level fields app_events.rs drives through
// cycle_previous/cycle_next/open/close/is_visible.
type State struct {
	store *Store

	// cycleIndex is the position Ctrl-P/Ctrl-N are currently at, -1
	// meaning "not cycling" (the input line is the user's own text,
	// not a recalled entry).
	cycleIndex int

	visible       bool
	popupQuery    string
	popupSelected int
	popupMatches  []int
}

// NewState wraps store in cycling/popup state, starting idle.
func NewState(store *Store) *State {
	return &State{store: store, cycleIndex: -1}
}

// TotalCount returns the number of entries available to cycle/search.
func (s *State) TotalCount() int { return s.store.Count() }

// Record appends query to the backing store and resets cycling, since
// a freshly executed query is the new "bottom" of history.
func (s *State) Record(query string) {
	s.store.Append(query)
	s.cycleIndex = -1
}

// CyclePrevious moves one entry further back in history (Ctrl-P),
// returning the entry text, or false once the oldest entry has
// already been reached.
func (s *State) CyclePrevious() (string, bool) {
	entries := s.store.Entries()
	if len(entries) == 0 {
		return "", false
	}
	if s.cycleIndex == -1 {
		s.cycleIndex = len(entries) - 1
	} else if s.cycleIndex > 0 {
		s.cycleIndex--
	} else {
		return "", false
	}
	return entries[s.cycleIndex], true
}

// CycleNext moves one entry forward (Ctrl-N). Moving forward past the
// newest recalled entry returns ("", false), which the caller (per the
// original's handle_input_field_key) treats as "clear the line and
// re-run the empty query" rather than leaving stale text in place.
func (s *State) CycleNext() (string, bool) {
	entries := s.store.Entries()
	if s.cycleIndex == -1 || len(entries) == 0 {
		return "", false
	}
	if s.cycleIndex < len(entries)-1 {
		s.cycleIndex++
		return entries[s.cycleIndex], true
	}
	s.cycleIndex = -1
	return "", false
}

// IsVisible reports whether the recall popup is open.
func (s *State) IsVisible() bool { return s.visible }

// Open shows the popup, seeding the search box with initialQuery (the
// query currently on the input line), so the list opens filtered by
// that text; an empty initialQuery shows every entry.
func (s *State) Open(initialQuery string) {
	s.visible = true
	s.popupQuery = initialQuery
	s.popupSelected = 0
	s.refreshMatches()
}

// Close hides the popup without changing the input line.
func (s *State) Close() { s.visible = false }

// SetSearch updates the popup's filter text and re-runs the match.
func (s *State) SetSearch(query string) {
	s.popupQuery = query
	s.popupSelected = 0
	s.refreshMatches()
}

// SearchQuery returns the popup's current filter text.
func (s *State) SearchQuery() string { return s.popupQuery }

// Matches returns the indices into Entries() currently visible in the
// popup, most-recent first.
func (s *State) Matches() []int { return append([]int(nil), s.popupMatches...) }

// EntryAt returns the entry text at a raw index (as returned by
// Matches), for popup rendering.
func (s *State) EntryAt(idx int) (string, bool) {
	entries := s.store.Entries()
	if idx < 0 || idx >= len(entries) {
		return "", false
	}
	return entries[idx], true
}

// SelectNext/SelectPrevious move the popup's highlighted row.
func (s *State) SelectNext() {
	if len(s.popupMatches) == 0 {
		return
	}
	s.popupSelected = (s.popupSelected + 1) % len(s.popupMatches)
}

func (s *State) SelectPrevious() {
	if len(s.popupMatches) == 0 {
		return
	}
	s.popupSelected = (s.popupSelected - 1 + len(s.popupMatches)) % len(s.popupMatches)
}

// SelectedIndex returns the popup's highlighted row, an index into
// Matches(), for popup rendering.
func (s *State) SelectedIndex() int { return s.popupSelected }

// Selected returns the entry text currently highlighted in the popup.
func (s *State) Selected() (string, bool) {
	if s.popupSelected < 0 || s.popupSelected >= len(s.popupMatches) {
		return "", false
	}
	entries := s.store.Entries()
	idx := s.popupMatches[s.popupSelected]
	if idx < 0 || idx >= len(entries) {
		return "", false
	}
	return entries[idx], true
}

// refreshMatches recomputes popupMatches by substring containment
// against popupQuery, newest entries first, matching the original's
// Ctrl-R popup behavior of surfacing recent matches at the top.
func (s *State) refreshMatches() {
	entries := s.store.Entries()
	s.popupMatches = s.popupMatches[:0]
	needle := strings.ToLower(s.popupQuery)
	for i := len(entries) - 1; i >= 0; i-- {
		if needle == "" || strings.Contains(strings.ToLower(entries[i]), needle) {
			s.popupMatches = append(s.popupMatches, i)
		}
	}
}
