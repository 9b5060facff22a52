// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

// scanState tracks whether a left-to-right scan is currently inside a
// string literal, and whether the previous character was a backslash
// escape, so scans over a query string can skip brace/quote characters
// that appear inside string literals. Grounded on
// original_source/src/autocomplete/scan_state.rs.
type scanState struct {
	inString bool
	escaped  bool
}

func newScanState() *scanState {
	return &scanState{}
}

// consume advances the scanner by one rune and reports whether that
// rune was "absorbed" (i.e. the caller should not interpret it as a
// structural character) because it is inside, or is, a string-literal
// delimiter.
func (s *scanState) consume(r rune) bool {
	if s.inString {
		if s.escaped {
			s.escaped = false
			return true
		}
		if r == '\\' {
			s.escaped = true
			return true
		}
		if r == '"' {
			s.inString = false
			return true
		}
		return true
	}
	if r == '"' {
		s.inString = true
		return true
	}
	return false
}

// InString reports whether the scanner is currently positioned inside
// an open (unterminated) string literal.
func (s *scanState) InString() bool {
	return s.inString
}

// containsCharOutsideStrings reports whether target appears anywhere
// in s outside of a string literal. Grounded on context.rs's
// contains_char_outside_strings.
func containsCharOutsideStrings(s string, target rune) bool {
	st := newScanState()
	for _, r := range s {
		if st.consume(r) {
			continue
		}
		if r == target {
			return true
		}
	}
	return false
}

// findCharOutsideStrings returns the first index of target outside
// any string literal, or -1.
func findCharOutsideStrings(s string, target rune) int {
	st := newScanState()
	for i, r := range s {
		if st.consume(r) {
			continue
		}
		if r == target {
			return i
		}
	}
	return -1
}

// lastIndexCharOutsideStrings returns the last index of target outside
// any string literal, or -1.
func lastIndexCharOutsideStrings(s string, target rune) int {
	st := newScanState()
	last := -1
	for i, r := range s {
		if st.consume(r) {
			continue
		}
		if r == target {
			last = i
		}
	}
	return last
}

// containsPatternOutsideStrings reports whether pattern appears in s
// outside of a string literal (naive substring scan that tracks quote
// state byte-by-byte; adequate for the short, ASCII-heavy patterns
// this is used for, e.g. "to_entries").
func containsPatternOutsideStrings(s, pattern string) bool {
	if pattern == "" {
		return true
	}
	st := newScanState()
	runes := []rune(s)
	patRunes := []rune(pattern)
	absorbed := make([]bool, len(runes))
	for i, r := range runes {
		absorbed[i] = st.consume(r)
	}
	for i := 0; i+len(patRunes) <= len(runes); i++ {
		if absorbed[i] {
			continue
		}
		match := true
		for j, pr := range patRunes {
			if runes[i+j] != pr {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
