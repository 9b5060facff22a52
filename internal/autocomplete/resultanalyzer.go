// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import (
	"regexp"
	"sort"
	"strings"

	"jiq/internal/jsonvalue"
)

var simpleIdentifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isSimpleJqIdentifier reports whether name can be accessed as `.name`
// without quoting, per the jq manual's identifier rule: no leading
// digit, letters/digits/underscore only. Grounded on
// original_source/src/autocomplete/result_analyzer.rs.
func isSimpleJqIdentifier(name string) bool {
	return name != "" && simpleIdentifierRe.MatchString(name)
}

// formatFieldName renders a field access for name, quoting it as
// ."weird-key" when it is not a simple identifier. prefix is the
// leading-dot form to use for simple identifiers, e.g. "." or ".[].".
func formatFieldName(prefix, name string) string {
	if isSimpleJqIdentifier(name) {
		return prefix + name
	}
	return strings.TrimSuffix(prefix, ".") + `."` + name + `"`
}

// analyzeValue produces field suggestions for a navigated JSON value.
// needsLeadingDot controls whether emitted text is prefixed with `.`;
// suppressArrayBrackets corresponds to element-context suppression
// (§4.3.2 item 4): when true, an array value yields bare `.field`
// suggestions instead of `.[].field`, and no `.[]` pattern is emitted.
func analyzeValue(v jsonvalue.Value, needsLeadingDot, suppressArrayBrackets bool) []Suggestion {
	dot := ""
	if needsLeadingDot {
		dot = "."
	}

	switch val := v.(type) {
	case map[string]any:
		return objectFieldSuggestions(val, dot)
	case []any:
		return arrayFieldSuggestions(val, dot, suppressArrayBrackets)
	default:
		return nil
	}
}

// objectFieldSuggestions emits one suggestion per key. encoding/json
// decodes objects into a plain Go map, which has no stable iteration
// order (unlike serde_json's insertion-preserving Value), so keys are
// sorted for deterministic output rather than reproducing source order.
func objectFieldSuggestions(obj map[string]any, dot string) []Suggestion {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Suggestion, 0, len(obj))
	for _, key := range keys {
		ft := jsonvalue.DetectType(obj[key])
		out = append(out, Suggestion{
			Text:      formatFieldName(dot, key),
			Kind:      KindField,
			FieldType: &ft,
		})
	}
	return out
}

func arrayFieldSuggestions(arr []any, dot string, suppressArrayBrackets bool) []Suggestion {
	if len(arr) == 0 {
		return nil
	}

	var out []Suggestion
	arrayPrefix := dot + "[]."
	if suppressArrayBrackets {
		arrayPrefix = dot
	} else {
		out = append(out, Suggestion{Text: dot + "[]", Kind: KindPattern})
	}

	for _, field := range SelectArrayFieldsForSuggestions(arr) {
		out = append(out, Suggestion{
			Text:      formatFieldName(arrayPrefix, field.Key),
			Kind:      KindField,
			FieldType: &field.Type,
		})
	}
	return out
}

// ArrayField pairs a discovered array-element key with its inferred
// type, as returned by the array-key enrichment strategies.
type ArrayField struct {
	Key  string
	Type jsonvalue.TypedField
}
