// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tooltip detects the jq function or operator the cursor is
// currently positioned on or inside, and holds the enable/disable
// toggle and cached detection the app layer renders as a help popup.
package tooltip

import (
	"strings"

	"jiq/internal/autocomplete"
)

var operatorTokens = []string{"|=", "+=", "-=", "*=", "/=", "//=", "?//", "==", "!=", "<=", ">=", "and", "or", "not", "//", "?"}

// DetectFunctionAtCursor returns the jq function name the cursor is on
// or enclosed by, checked in two phases exactly as the original does:
// first whether the cursor sits directly on a function name, then
// (if not) whether it is inside an unmatched "(" that a function name
// immediately precedes.
func DetectFunctionAtCursor(query string, cursorPos int) (string, bool) {
	if query == "" {
		return "", false
	}
	runes := []rune(query)
	if cursorPos < 0 || cursorPos > len(runes) {
		return "", false
	}

	if name, ok := detectFunctionAtWord(runes, cursorPos); ok {
		return name, true
	}
	return findEnclosingFunction(runes, cursorPos)
}

func detectFunctionAtWord(runes []rune, cursorPos int) (string, bool) {
	start, end := wordBoundaries(runes, cursorPos)
	if start == end {
		return "", false
	}
	return lookupFunction(string(runes[start:end]))
}

func findEnclosingFunction(runes []rune, cursorPos int) (string, bool) {
	depth := 0
	scanStart := cursorPos
	if scanStart > len(runes) {
		scanStart = len(runes)
	}
	for i := scanStart - 1; i >= 0; i-- {
		switch runes[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth < 0 {
				if name, ok := functionBeforeParen(runes, i); ok {
					return name, true
				}
				depth = 0
			}
		}
	}
	return "", false
}

func functionBeforeParen(runes []rune, parenIdx int) (string, bool) {
	end := parenIdx
	for end > 0 && isIdentSpace(runes[end-1]) {
		end--
	}
	start := end
	for start > 0 && isIdentChar(runes[start-1]) {
		start--
	}
	if start == end {
		return "", false
	}
	return lookupFunction(string(runes[start:end]))
}

func lookupFunction(token string) (string, bool) {
	if fn, ok := autocomplete.FindFunction(token); ok {
		return fn.Name, true
	}
	return "", false
}

func wordBoundaries(runes []rune, pos int) (int, int) {
	if pos > len(runes) {
		pos = len(runes)
	}
	start := pos
	for start > 0 && isIdentChar(runes[start-1]) {
		start--
	}
	end := pos
	for end < len(runes) && isIdentChar(runes[end]) {
		end++
	}
	if start == end && pos > 0 && isIdentChar(runes[pos-1]) {
		start = pos - 1
		for start > 0 && isIdentChar(runes[start-1]) {
			start--
		}
		end = pos
	}
	return start, end
}

func isIdentChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isIdentSpace(r rune) bool { return r == ' ' || r == '\t' }

// DetectOperatorAtCursor returns the jq operator token adjacent to the
// cursor, checked only when DetectFunctionAtCursor found nothing
// (functions take priority, per the original's update_tooltip_from_app).
func DetectOperatorAtCursor(query string, cursorPos int) (string, bool) {
	runes := []rune(query)
	if cursorPos < 0 || cursorPos > len(runes) {
		return "", false
	}

	windowStart := cursorPos - 3
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := cursorPos + 3
	if windowEnd > len(runes) {
		windowEnd = len(runes)
	}
	window := string(runes[windowStart:windowEnd])

	var best string
	for _, op := range operatorTokens {
		if strings.Contains(window, op) && len(op) > len(best) {
			best = op
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
