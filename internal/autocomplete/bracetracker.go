// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

// BraceKind is the kind of an open delimiter tracked by BraceTracker.
type BraceKind int

const (
	BraceCurly BraceKind = iota
	BraceSquare
	BraceParen
)

type openBrace struct {
	pos  int
	kind BraceKind
}

// BraceTracker stores the stack of open-delimiter positions produced
// by a single left-to-right scan of a query string that respects
// string-literal escaping (§3). It is rebuilt on every content change.
type BraceTracker struct {
	openBraces []openBrace
	snapshot   string
}

// Rebuild rescans query and replaces the tracker's state. Grounded on
// original_source/src/autocomplete/brace_tracker.rs's rebuild, using
// scanState (scan_state.rs's escape/quote-aware scanner) to skip over
// string literals.
func (b *BraceTracker) Rebuild(query string) {
	b.snapshot = query
	b.openBraces = b.openBraces[:0]

	st := newScanState()
	for i, r := range query {
		if st.consume(r) {
			continue
		}
		switch r {
		case '(':
			b.openBraces = append(b.openBraces, openBrace{i, BraceParen})
		case '[':
			b.openBraces = append(b.openBraces, openBrace{i, BraceSquare})
		case '{':
			b.openBraces = append(b.openBraces, openBrace{i, BraceCurly})
		case ')', ']', '}':
			if len(b.openBraces) > 0 {
				b.openBraces = b.openBraces[:len(b.openBraces)-1]
			}
		}
	}
}

// IsStale reports whether the tracker's snapshot no longer matches the
// current query text, meaning it must be rebuilt before use.
func (b *BraceTracker) IsStale(currentQuery string) bool {
	return b.snapshot != currentQuery
}

// ContextAt returns the kind and position of the innermost enclosing
// open delimiter at position pos (scanning the stack in reverse for
// the first brace_pos < pos), and false if pos is at top level.
func (b *BraceTracker) ContextAt(pos int) (BraceKind, int, bool) {
	for i := len(b.openBraces) - 1; i >= 0; i-- {
		if b.openBraces[i].pos < pos {
			return b.openBraces[i].kind, b.openBraces[i].pos, true
		}
	}
	return 0, 0, false
}

// IsInObject reports whether pos is inside an open curly-brace
// literal: is_in_object(p) <=> context_at(p) == Curly (§8 invariant).
func (b *BraceTracker) IsInObject(pos int) bool {
	kind, _, ok := b.ContextAt(pos)
	return ok && kind == BraceCurly
}

// BraceInfo is the richer result returned by InnermostBraceInfo: the
// enclosing delimiter's kind and the position just after it (the start
// of its interior), or ok=false at top level.
type BraceInfo struct {
	Kind       BraceKind
	InteriorAt int
}

// InnermostBraceInfo is a self-designed extension (not present in the
// retrieved original_source/ brace_tracker.rs, only called from
// context.rs with no definition anywhere in the pack): it returns both
// the kind and interior-start offset of the innermost enclosing open
// delimiter at pos, used by the expression-boundary search in
// FieldContext path navigation (§4.3.2 item 2).
func (b *BraceTracker) InnermostBraceInfo(pos int) (BraceInfo, bool) {
	kind, openPos, ok := b.ContextAt(pos)
	if !ok {
		return BraceInfo{}, false
	}
	return BraceInfo{Kind: kind, InteriorAt: openPos + 1}, true
}

// elementContextFunctions is the set of builtins whose argument body is
// already iterating one element at a time (§4.3.2 item 4).
var elementContextFunctions = map[string]bool{
	"map": true, "select": true, "sort_by": true, "group_by": true,
	"unique_by": true, "min_by": true, "max_by": true, "any": true,
	"all": true, "first": true, "last": true, "walk": true,
	"with_entries": true,
}

// IsInElementContext is a self-designed extension grounded on §4.3.2
// item 4's suppression list: it reports whether pos sits inside the
// parentheses of a call to one of elementContextFunctions, by walking
// backward from the innermost enclosing '(' to find the identifier
// immediately preceding it (skipping whitespace).
func (b *BraceTracker) IsInElementContext(pos int) bool {
	kind, openPos, ok := b.ContextAt(pos)
	if !ok || kind != BraceParen {
		return false
	}
	name := identifierBefore(b.snapshot, openPos)
	return elementContextFunctions[name]
}

// IsInNonExecutingContext is a self-designed extension grounded on
// spec.md §4.3.2 item 3's definition: the cursor is inside an open but
// unclosed delimiter, meaning the enclosing expression has not finished
// being typed and the cached result cannot be trusted to reflect it.
func (b *BraceTracker) IsInNonExecutingContext(pos int) bool {
	_, _, ok := b.ContextAt(pos)
	return ok
}

// identifierBefore returns the bare identifier (run of letters,
// digits, underscore) ending immediately before pos, skipping any
// whitespace between the identifier and pos. Returns "" if none.
func identifierBefore(s string, pos int) string {
	i := pos
	for i > 0 && isSpaceByte(s[i-1]) {
		i--
	}
	end := i
	for i > 0 && isIdentByte(s[i-1]) {
		i--
	}
	if i == end {
		return ""
	}
	return s[i:end]
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
