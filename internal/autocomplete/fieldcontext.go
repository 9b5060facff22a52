// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import (
	"jiq/internal/jsonvalue"
)

var parenBoundaryChars = map[byte]bool{'|': true, ';': true}
var squareBoundaryChars = map[byte]bool{'|': true, ';': true, ',': true}
var curlyBoundaryChars = map[byte]bool{'|': true, ';': true, ',': true, ':': true}
var topLevelBoundaryChars = map[byte]bool{'|': true, ';': true}

// ExpressionBoundary is the result of narrowing the navigable path's
// start position within the innermost enclosing delimiter (§4.3.2
// item 2).
type ExpressionBoundary struct {
	PathStart  int
	WasPipe    bool
	HasBoundary bool
}

// findExpressionBoundary finds the start of the navigable path ending
// at pos: the position just after the innermost enclosing open
// delimiter (if any), further narrowed by the last boundary character
// appropriate to that delimiter kind.
func findExpressionBoundary(query string, pos int, bt *BraceTracker) ExpressionBoundary {
	interiorStart := 0
	boundaries := topLevelBoundaryChars

	if info, ok := bt.InnermostBraceInfo(pos); ok {
		interiorStart = info.InteriorAt
		switch info.Kind {
		case BraceParen:
			boundaries = parenBoundaryChars
		case BraceSquare:
			boundaries = squareBoundaryChars
		case BraceCurly:
			boundaries = curlyBoundaryChars
		}
	}

	segment := query[interiorStart:pos]
	lastIdx := -1
	st := newScanState()
	for i := 0; i < len(segment); i++ {
		if st.consume(rune(segment[i])) {
			continue
		}
		if boundaries[segment[i]] {
			lastIdx = i
		}
	}

	if lastIdx == -1 {
		return ExpressionBoundary{PathStart: interiorStart, HasBoundary: false}
	}
	return ExpressionBoundary{
		PathStart:   interiorStart + lastIdx + 1,
		WasPipe:     segment[lastIdx] == '|',
		HasBoundary: true,
	}
}

// needsLeadingDot implements §4.3.2 item 1.
func needsLeadingDot(query string, tokenStart int) bool {
	pos := skipTrailingWhitespace(query[:tokenStart], tokenStart)
	if pos == 0 {
		return true
	}
	before := query[pos-1]
	switch before {
	case '|', ';', ',', ':', '(', '[', '{':
		return true
	case '.':
		// Whitespace immediately preceding this dot means it starts a
		// fresh path rather than continuing one already begun.
		return pos-1 > 0 && isSpaceByte(query[pos-2])
	default:
		return false
	}
}

// isCursorAtLogicalEnd reports whether only whitespace follows pos.
func isCursorAtLogicalEnd(query string, pos int) bool {
	for i := pos; i < len(query); i++ {
		if query[i] != ' ' && query[i] != '\t' && query[i] != '\n' {
			return false
		}
	}
	return true
}

// fieldContextSuggestions implements §4.3.2's FieldContext case in
// full: leading-dot decision, expression-boundary path extraction,
// navigation-source selection, element/entry context handling, field
// analysis, and fallback.
func fieldContextSuggestions(
	query string,
	cursorPos int,
	cls Classification,
	resultParsed []jsonvalue.Value,
	resultType jsonvalue.ResultType,
	originalJSON jsonvalue.Value,
	allFieldNames []string,
	bt *BraceTracker,
) []Suggestion {
	dot := needsLeadingDot(query, cls.TokenStart)

	boundary := findExpressionBoundary(query, cls.TokenStart, bt)
	pathStr := query[boundary.PathStart:cls.TokenStart]

	atEnd := isCursorAtLogicalEnd(query, cursorPos)
	nonExecuting := bt.IsInNonExecutingContext(cursorPos)

	var source jsonvalue.Value
	haveSource := false
	switch {
	case atEnd && nonExecuting:
		source, haveSource = originalJSON, originalJSON != nil
	case !atEnd:
		source, haveSource = originalJSON, originalJSON != nil
	default:
		switch {
		case len(resultParsed) == 1:
			source, haveSource = resultParsed[0], true
		case len(resultParsed) > 1:
			source, haveSource = resultParsed, true
		default:
			// No successful query has produced a cached result yet
			// (fresh session): original JSON is the next best source.
			source, haveSource = originalJSON, originalJSON != nil
		}
	}

	suppressArrayBrackets := bt.IsInElementContext(cursorPos) || resultType == jsonvalue.ResultDestructuredObjects

	var suggestions []Suggestion
	if haveSource {
		segs := parsePath(pathStr)
		if navigated, ok := navigate(source, segs); ok {
			suggestions = analyzeValue(navigated, dot, suppressArrayBrackets)
		}
	}

	entry := detectEntryContext(query[:cls.TokenStart])
	switch entry {
	case EntryDirect:
		suggestions = injectEntryFieldSuggestions(suggestions, dot)
	case EntryOpaqueValue:
		suggestions = allFieldNameSuggestions(allFieldNames, dot)
	}

	if suggestions == nil {
		suggestions = allFieldNameSuggestions(allFieldNames, dot)
	}

	return filterByPartial(suggestions, cls.Partial)
}

func allFieldNameSuggestions(names []string, dot bool) []Suggestion {
	prefix := ""
	if dot {
		prefix = "."
	}
	out := make([]Suggestion, 0, len(names))
	for _, n := range names {
		out = append(out, Suggestion{Text: formatFieldName(prefix, n), Kind: KindField})
	}
	return out
}
