// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package snippets implements named, reusable jq queries: CRUD over a
// TOML-backed store, fuzzy-ish name search for the picker popup, and
// a Reload/WatchFile pair for picking up a snippets.toml hand-edited
// outside jiq (the app package does not wire them, so such edits take
// effect at the next start).
package snippets

// Snippet is one saved query, serialized verbatim as a TOML table in
// the `[[snippets]]` array, mirroring the original's Snippet struct
// and its derive(Serialize, Deserialize).
type Snippet struct {
	Name        string `toml:"name"`
	Query       string `toml:"query"`
	Description string `toml:"description,omitempty"`
}

// Mode is the snippet popup's current interaction mode, ported from
// the original's SnippetMode enum (browse/create/edit/delete, each
// with its own pending-input fields tracked by State).
type Mode int

const (
	ModeBrowse Mode = iota
	ModeCreate
	ModeEditName
	ModeEditQuery
	ModeEditDescription
	ModeDeleteConfirm
)
