// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package jsonvalue holds the JSON value representation shared by the
// query engine and the autocomplete engine, plus the coarse type
// classification used to decide how a value should drive suggestions.
package jsonvalue

import "sort"

// Value is the decoded form of a JSON document. Go's encoding/json
// decodes arbitrary JSON into one of: nil, bool, float64, string,
// []any, map[string]any. Value is simply that shape by convention;
// there is no separate wrapper type because every consumer already
// type-switches on these cases.
type Value = any

// FieldType is a coarse type tag attached to a suggested field, used to
// annotate completions in the results pane.
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldNull
	FieldBoolean
	FieldNumber
	FieldString
	FieldObject
	FieldArray
	FieldArrayOf // wraps an inner FieldType discovered from the first element
)

// TypedField pairs a FieldType with the inner type when FieldType is
// FieldArrayOf; zero value (FieldUnknown) otherwise.
type TypedField struct {
	Type  FieldType
	Inner *TypedField
}

// DetectType classifies a decoded JSON value for suggestion annotation.
// Mirrors the recursive classification used in the original tool's
// array-key enrichment and result-analysis passes: arrays derive their
// element type from the first element only.
func DetectType(v Value) TypedField {
	switch val := v.(type) {
	case nil:
		return TypedField{Type: FieldNull}
	case bool:
		return TypedField{Type: FieldBoolean}
	case float64:
		return TypedField{Type: FieldNumber}
	case string:
		return TypedField{Type: FieldString}
	case []any:
		if len(val) == 0 {
			return TypedField{Type: FieldArray}
		}
		inner := DetectType(val[0])
		return TypedField{Type: FieldArrayOf, Inner: &inner}
	case map[string]any:
		return TypedField{Type: FieldObject}
	default:
		return TypedField{Type: FieldUnknown}
	}
}

// ResultType is the coarse classification assigned to a successful
// query result for consumption by the autocomplete engine.
type ResultType int

const (
	ResultNull ResultType = iota
	ResultScalar
	ResultObject
	ResultArray
	ResultArrayOfObjects
	// ResultDestructuredObjects marks a stream of independently-emitted
	// objects (e.g. the output of `.xs[]`), distinct from an array of
	// objects because re-wrapping it in `.[]` would be a type error.
	ResultDestructuredObjects
)

// ClassifyValues classifies a completed jq evaluation. values holds
// every value emitted by the program; streamed indicates the jq
// program's top-level shape emitted more than one top-level value
// (e.g. `.xs[]`) as opposed to a single array or object value.
func ClassifyValues(values []Value, streamed bool) ResultType {
	if len(values) == 0 {
		return ResultNull
	}
	if streamed {
		allObjects := true
		for _, v := range values {
			if _, ok := v.(map[string]any); !ok {
				allObjects = false
				break
			}
		}
		if allObjects {
			return ResultDestructuredObjects
		}
		if len(values) == 1 {
			return classifySingle(values[0])
		}
		return ResultScalar
	}
	if len(values) == 1 {
		return classifySingle(values[0])
	}
	return ResultScalar
}

func classifySingle(v Value) ResultType {
	switch val := v.(type) {
	case nil:
		return ResultNull
	case map[string]any:
		return ResultObject
	case []any:
		if len(val) == 0 {
			return ResultArray
		}
		for _, item := range val {
			if _, ok := item.(map[string]any); !ok {
				return ResultArray
			}
		}
		return ResultArrayOfObjects
	default:
		return ResultScalar
	}
}

// IsDegenerate reports whether a classified result is uninformative
// enough that it must not overwrite a cached "last successful" result:
// a single null, a stream of only nulls, or an empty stream.
func IsDegenerate(values []Value, resultType ResultType) bool {
	if len(values) == 0 {
		return true
	}
	if resultType == ResultNull {
		return true
	}
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}

// AllFieldNames walks an entire decoded document and returns the set
// of every object key observed anywhere within it, sorted for
// deterministic iteration. Computed once per session at load time.
func AllFieldNames(root Value) []string {
	seen := make(map[string]struct{})
	collectFieldNames(root, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectFieldNames(v Value, seen map[string]struct{}) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			seen[k] = struct{}{}
			collectFieldNames(child, seen)
		}
	case []any:
		for _, child := range val {
			collectFieldNames(child, seen)
		}
	}
}
