// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import (
	"strings"

	"jiq/internal/jsonvalue"
)

func isDelimiter(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '|', ';', '(', ')', '[', ']', '{', '}', ',':
		return true
	default:
		return false
	}
}

// skipTrailingWhitespace walks left from pos over spaces/tabs/newlines.
func skipTrailingWhitespace(s string, pos int) int {
	for pos > 0 && (s[pos-1] == ' ' || s[pos-1] == '\t' || s[pos-1] == '\n') {
		pos--
	}
	return pos
}

// extractPartialToken walks left from the cursor until a delimiter,
// returning the partial token and the offset where it starts
// (§4.3.1 step 2).
func extractPartialToken(beforeCursor string) (partial string, start int) {
	i := len(beforeCursor)
	for i > 0 && !isDelimiter(beforeCursor[i-1]) {
		i--
	}
	return beforeCursor[i:], i
}

// Classification is the result of context classification: the
// context, the partial token text to filter by, and the offset in the
// query where the partial token (or trigger character driving an
// insertion) begins.
type Classification struct {
	Context    Context
	Partial    string
	TokenStart int
}

// ClassifyContext implements §4.3.1's context classifier.
func ClassifyContext(query string, cursorPos int, bt *BraceTracker) Classification {
	beforeCursor := query[:cursorPos]

	if len(beforeCursor) > 0 && beforeCursor[len(beforeCursor)-1] == '.' {
		return Classification{Context: ContextField, Partial: "", TokenStart: cursorPos}
	}

	token, start := extractPartialToken(beforeCursor)

	if strings.HasPrefix(token, "$") && !isInVariableDefinitionContext(query, start) {
		return Classification{Context: ContextVariable, Partial: token, TokenStart: start}
	}

	if strings.HasPrefix(token, ".") {
		partial := token
		if idx := strings.LastIndex(token, "."); idx != -1 {
			partial = token[idx+1:]
		}
		return Classification{Context: ContextField, Partial: partial, TokenStart: start}
	}

	if strings.HasPrefix(token, "?") {
		if strings.HasPrefix(token, "?.") {
			return Classification{Context: ContextField, Partial: token[2:], TokenStart: start}
		}
		if token == "?" {
			return Classification{Context: ContextFunction, Partial: "", TokenStart: start}
		}
	}

	beforeTokenPos := skipTrailingWhitespace(beforeCursor, start)
	var beforeTokenChar byte
	if beforeTokenPos > 0 {
		beforeTokenChar = beforeCursor[beforeTokenPos-1]
	}

	if beforeTokenChar == '.' || beforeTokenChar == '?' {
		return Classification{Context: ContextField, Partial: token, TokenStart: start}
	}

	if (beforeTokenChar == '{' || beforeTokenChar == ',') && bt.IsInObject(beforeTokenPos) {
		return Classification{Context: ContextObjectKey, Partial: token, TokenStart: start}
	}

	return Classification{Context: ContextFunction, Partial: token, TokenStart: start}
}

// GetSuggestions is the top-level entry point for §4.3: given the
// query, cursor position, cached/original JSON and precomputed field
// names, it produces the ranked, filtered suggestion list.
func GetSuggestions(
	query string,
	cursorPos int,
	resultParsed []jsonvalue.Value,
	resultType jsonvalue.ResultType,
	originalJSON jsonvalue.Value,
	allFieldNames []string,
	bt *BraceTracker,
) []Suggestion {
	cls := ClassifyContext(query, cursorPos, bt)

	switch cls.Context {
	case ContextFunction:
		return FilterBuiltins(cls.Partial)
	case ContextVariable:
		return filterByPartialCaseSensitive(VariableSuggestions(query), cls.Partial)
	case ContextObjectKey:
		if cls.Partial == "" {
			return nil
		}
		return filterByPartial(objectKeySuggestions(resultParsed), cls.Partial)
	case ContextField:
		return fieldContextSuggestions(query, cursorPos, cls, resultParsed, resultType, originalJSON, allFieldNames, bt)
	default:
		return nil
	}
}

// objectKeySuggestions proposes field names drawn from the cached
// result's parsed form (§4.3.2 ObjectKeyContext).
func objectKeySuggestions(resultParsed []jsonvalue.Value) []Suggestion {
	if len(resultParsed) != 1 {
		return nil
	}
	obj, ok := resultParsed[0].(map[string]any)
	if !ok {
		return nil
	}
	return objectFieldSuggestions(obj, "")
}

// filterByPartial keeps suggestions whose text contains partial,
// case-insensitively, preserving order (§4.3.2 step 9).
func filterByPartial(items []Suggestion, partial string) []Suggestion {
	if partial == "" {
		return items
	}
	lower := strings.ToLower(partial)
	var out []Suggestion
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Text), lower) {
			out = append(out, it)
		}
	}
	return out
}

// filterByPartialCaseSensitive filters variables case-sensitively
// (jq variables are case-sensitive, §4.3.2 VariableContext).
func filterByPartialCaseSensitive(items []Suggestion, partial string) []Suggestion {
	if partial == "" {
		return items
	}
	var out []Suggestion
	for _, it := range items {
		if strings.Contains(it.Text, partial) {
			out = append(out, it)
		}
	}
	return out
}
