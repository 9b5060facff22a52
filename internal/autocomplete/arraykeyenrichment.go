// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import (
	"os"
	"sort"
	"strconv"

	"jiq/internal/jsonvalue"
)

// ArrayKeyEnrichmentMode selects how array-of-objects field
// suggestions are derived (§9 Open Question 1, resolved by keeping
// both variants distinct as in original_source/).
type ArrayKeyEnrichmentMode int

const (
	// ModeFirstObject infers keys from the first object element only.
	ModeFirstObject ArrayKeyEnrichmentMode = iota
	// ModeScanAhead unions keys across the object elements among the
	// first N array elements.
	ModeScanAhead
)

const arrayKeyScanAheadEnv = "JIQ_AUTOCOMPLETE_ARRAY_SCAN_AHEAD"

// ModeFromEnv resolves the enrichment mode from JIQ_AUTOCOMPLETE_ARRAY_SCAN_AHEAD
// (§6, §9 Design Notes: "the one legitimate global... read once per
// suggestion generation; do not cache across a session").
func ModeFromEnv() (ArrayKeyEnrichmentMode, int) {
	if n, ok := scanAheadSizeFromEnv(); ok {
		return ModeScanAhead, n
	}
	return ModeFirstObject, 0
}

func scanAheadSizeFromEnv() (int, bool) {
	raw, ok := os.LookupEnv(arrayKeyScanAheadEnv)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// SelectArrayFieldsForSuggestions returns the fields used for array
// suggestions, dispatching on the current environment-resolved mode.
func SelectArrayFieldsForSuggestions(array []any) []ArrayField {
	mode, n := ModeFromEnv()
	switch mode {
	case ModeScanAhead:
		return selectUniqueFieldsInPrefix(array, n)
	default:
		return selectFirstObjectFields(array)
	}
}

func selectFirstObjectFields(array []any) []ArrayField {
	if len(array) == 0 {
		return nil
	}
	obj, ok := array[0].(map[string]any)
	if !ok {
		return nil
	}
	return sortedFields(obj)
}

func selectUniqueFieldsInPrefix(array []any, scanSize int) []ArrayField {
	seen := make(map[string]struct{})
	var fields []ArrayField

	limit := scanSize
	if limit > len(array) {
		limit = len(array)
	}
	for i := 0; i < limit; i++ {
		obj, ok := array[i].(map[string]any)
		if !ok {
			continue
		}
		for _, f := range sortedFields(obj) {
			if _, dup := seen[f.Key]; dup {
				continue
			}
			seen[f.Key] = struct{}{}
			fields = append(fields, f)
		}
	}

	if len(fields) == 0 {
		return selectFirstObjectFields(array)
	}
	return fields
}

func sortedFields(obj map[string]any) []ArrayField {
	names := make([]string, 0, len(obj))
	for k := range obj {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]ArrayField, 0, len(obj))
	for _, k := range names {
		out = append(out, ArrayField{Key: k, Type: jsonvalue.DetectType(obj[k])})
	}
	return out
}
