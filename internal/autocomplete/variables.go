// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import (
	"strings"
)

// isWordChar reports whether r participates in an identifier-like
// token (variable names and the "as"/"label" keyword check).
func isWordChar(r byte) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isAfterDefinitionKeyword reports whether the word ending at pos in
// query is immediately preceded (modulo whitespace) by the whole word
// "as" or "label" (§4.3.1: variable-definition contexts).
func isAfterDefinitionKeyword(query string, pos int) bool {
	i := pos
	for i > 0 && query[i-1] == ' ' {
		i--
	}
	end := i
	for i > 0 && isWordChar(query[i-1]) {
		i--
	}
	word := query[i:end]
	if word != "as" && word != "label" {
		return false
	}
	// Must be a whole word: not itself preceded by an identifier char.
	return i == 0 || !isWordChar(query[i-1])
}

// hasUnclosedAsDestructure reports whether before_cursor contains an
// "as [" or "as {" destructuring pattern that has not yet closed,
// i.e. we are still inside the pattern's brackets.
func hasUnclosedAsDestructure(beforeCursor string) bool {
	idx := strings.LastIndex(beforeCursor, "as ")
	if idx == -1 {
		idx = strings.LastIndex(beforeCursor, "as[")
		if idx == -1 {
			idx = strings.LastIndex(beforeCursor, "as{")
		}
	}
	if idx == -1 {
		return false
	}
	rest := beforeCursor[idx+2:]
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" || (rest[0] != '[' && rest[0] != '{') {
		return false
	}
	depth := 0
	opened := false
	st := newScanState()
	for _, r := range rest {
		if st.consume(r) {
			continue
		}
		switch r {
		case '[', '{':
			depth++
			opened = true
		case ']', '}':
			depth--
		}
	}
	return opened && depth > 0
}

// isInVariableDefinitionContext reports whether the partial token at
// pos is itself defining a variable (so it must NOT be classified as a
// VariableContext reference): true when preceded by "as"/"label" or
// inside an unclosed destructuring pattern.
func isInVariableDefinitionContext(query string, pos int) bool {
	return isAfterDefinitionKeyword(query, pos) || hasUnclosedAsDestructure(query[:pos])
}

// extractVariableDefinitions scans the full query (not just
// before_cursor, per §4.3.2 VariableContext) for `$ident` occurrences
// that are definitions: following "as"/"label", or inside a
// destructuring pattern.
func extractVariableDefinitions(query string) []string {
	var names []string
	seen := make(map[string]struct{})
	st := newScanState()
	runes := []rune(query)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if st.consume(r) {
			continue
		}
		if r != '$' {
			continue
		}
		j := i + 1
		for j < len(runes) && isWordChar(byte(runes[j])) {
			j++
		}
		if j == i+1 {
			continue
		}
		name := "$" + string(runes[i+1:j])
		prefix := string(runes[:i])
		if isVariableDefinitionSite(prefix) {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
		i = j - 1
	}
	return names
}

// isVariableDefinitionSite reports whether a `$name` appearing right
// after prefix is a binding site: prefix ends (modulo whitespace) in
// the whole word "as"/"label", or in one of "(", "[", ",".
func isVariableDefinitionSite(prefix string) bool {
	trimmed := strings.TrimRight(prefix, " \t")
	if endsInWholeWord(trimmed, "as") || endsInWholeWord(trimmed, "label") {
		return true
	}
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	return last == '[' || last == ',' || last == '('
}

// endsInWholeWord reports whether trimmed ends exactly in word, not as
// a suffix of a longer identifier.
func endsInWholeWord(trimmed, word string) bool {
	if !strings.HasSuffix(trimmed, word) {
		return false
	}
	before := len(trimmed) - len(word)
	return before == 0 || !isWordChar(trimmed[before-1])
}

// BuiltinVariables are always available regardless of scan results.
var builtinVariables = []string{"$ENV", "$__loc__"}

// VariableSuggestions returns the VariableContext suggestion list:
// every `$name` definition found in query, plus the two builtins.
func VariableSuggestions(query string) []Suggestion {
	names := extractVariableDefinitions(query)
	out := make([]Suggestion, 0, len(names)+len(builtinVariables))
	seen := make(map[string]struct{}, len(names)+len(builtinVariables))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, Suggestion{Text: n, Kind: KindVariable})
	}
	for _, n := range builtinVariables {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, Suggestion{Text: n, Kind: KindVariable})
	}
	return out
}
