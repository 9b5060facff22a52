// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import "strings"

// EntryContext classifies whether the cursor sits inside code
// processing the output of to_entries/with_entries (§4.3.2 item 5).
type EntryContext int

const (
	EntryNone EntryContext = iota
	// EntryDirect: the cursor path refers to an entry object directly;
	// `key` and `value` should be injected into the suggestion list.
	EntryDirect
	// EntryOpaqueValue: the query navigated into `.value` and piped
	// through further transformations whose output type is unknown;
	// fall back to all_field_names.
	EntryOpaqueValue
)

// detectEntryContext inspects beforeCursor for an unclosed
// to_entries/with_entries(...) scope and classifies the cursor's
// position relative to it.
func detectEntryContext(beforeCursor string) EntryContext {
	if idx := findUnclosedWithEntries(beforeCursor); idx != -1 {
		return classifyEntryPath(beforeCursor[idx:])
	}
	if idx := findToEntriesOutsideStrings(beforeCursor); idx != -1 {
		return classifyEntryPath(beforeCursor[idx:])
	}
	return EntryNone
}

func findToEntriesOutsideStrings(s string) int {
	if !containsPatternOutsideStrings(s, "to_entries") {
		return -1
	}
	idx := strings.LastIndex(s, "to_entries")
	return idx + len("to_entries")
}

// findUnclosedWithEntries locates a `with_entries(` call whose closing
// paren has not yet been typed, returning the offset just after the
// opening paren, or -1.
func findUnclosedWithEntries(s string) int {
	idx := strings.LastIndex(s, "with_entries(")
	if idx == -1 {
		return -1
	}
	openPos := idx + len("with_entries(")
	depth := 1
	st := newScanState()
	for i := openPos; i < len(s); i++ {
		r := rune(s[i])
		if st.consume(r) {
			continue
		}
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return -1 // closed before the cursor: not unclosed.
			}
		}
	}
	return openPos
}

// classifyEntryPath inspects the text after the to_entries/
// with_entries boundary to decide whether the cursor still refers to
// the bare entry object (Direct), has navigated into `.value` and kept
// going (OpaqueValue), or is working with `.key` only (also Direct,
// since `key`/`value` remain meaningful completions at that point).
func classifyEntryPath(afterEntry string) EntryContext {
	trimmed := strings.TrimLeft(afterEntry, " \t")
	if valueIdx := findValueAccessOutsideStrings(trimmed); valueIdx != -1 {
		rest := trimmed[valueIdx+len(".value"):]
		if strings.TrimSpace(rest) == "" {
			return EntryDirect
		}
		return EntryOpaqueValue
	}
	return EntryDirect
}

// findValueAccessOutsideStrings locates the literal ".value" outside
// any string literal, returning its starting offset or -1.
func findValueAccessOutsideStrings(s string) int {
	if !containsPatternOutsideStrings(s, ".value") {
		return -1
	}
	return strings.Index(s, ".value")
}

// entrySuggestions builds the `key`/`value` injections for
// EntryDirect, with a leading dot applied per the caller's context.
func entrySuggestions(needsLeadingDot bool) []Suggestion {
	dot := ""
	if needsLeadingDot {
		dot = "."
	}
	return []Suggestion{
		{Text: dot + "key", Kind: KindField},
		{Text: dot + "value", Kind: KindField},
	}
}

// injectEntryFieldSuggestions prepends key/value suggestions to
// existing, removing any duplicate the result analyzer may have
// already produced (same Text).
func injectEntryFieldSuggestions(existing []Suggestion, needsLeadingDot bool) []Suggestion {
	injected := entrySuggestions(needsLeadingDot)
	seen := make(map[string]struct{}, len(injected))
	out := make([]Suggestion, 0, len(existing)+len(injected))
	for _, s := range injected {
		seen[s.Text] = struct{}{}
		out = append(out, s)
	}
	for _, s := range existing {
		if _, dup := seen[s.Text]; dup {
			continue
		}
		out = append(out, s)
	}
	return out
}
