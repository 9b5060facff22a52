// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package autocomplete

import "strings"

// Function describes one jq builtin for the static catalogue consulted
// by FunctionContext (§4.3.2) and the tooltip panel (§3.4).
type Function struct {
	Name        string
	Signature   string
	Description string
	NeedsParens bool
}

// functionCatalogue is the ≈100-entry builtin table described in
// §4.3.2: jq functions, keywords, format directives, operators, and
// common patterns. Ordering is preserved on purpose so that, for equal
// prefix matches, more commonly used functions surface first.
var functionCatalogue = []Function{
	{"map", "map(f)", "apply f to every element", true},
	{"select", "select(f)", "keep values for which f is true", true},
	{"sort_by", "sort_by(f)", "sort by the result of f", true},
	{"group_by", "group_by(f)", "group elements with equal f into arrays", true},
	{"unique_by", "unique_by(f)", "keep first element per distinct f", true},
	{"min_by", "min_by(f)", "element minimizing f", true},
	{"max_by", "max_by(f)", "element maximizing f", true},
	{"limit", "limit(n; f)", "first n outputs of f", true},
	{"nth", "nth(n; f)", "nth output of f", true},
	{"range", "range(from; upto; by)", "generate a range of numbers", true},
	{"until", "until(cond; update)", "repeat update until cond holds", true},
	{"while", "while(cond; update)", "repeat update while cond holds", true},
	{"repeat", "repeat(f)", "repeat f indefinitely, emitting each value", true},
	{"recurse", "recurse(f)", "apply f repeatedly, collecting every value", true},
	{"walk", "walk(f)", "apply f bottom-up to every value", true},
	{"with_entries", "with_entries(f)", "to_entries | map(f) | from_entries", true},
	{"has", "has(key)", "true if object/array has key", true},
	{"in", "in(xs)", "true if input is a key of xs", true},
	{"del", "del(f)", "delete the paths produced by f", true},
	{"getpath", "getpath(path)", "value at path, or null", true},
	{"setpath", "setpath(path; value)", "set value at path", true},
	{"delpaths", "delpaths(paths)", "delete a list of paths", true},
	{"paths", "paths", "all paths to every leaf and node", false},
	{"leaf_paths", "leaf_paths", "all paths to scalar leaves", false},
	{"split", "split(sep)", "split a string on sep", true},
	{"splits", "splits(re)", "split a string on a regex", true},
	{"join", "join(sep)", "join an array of strings with sep", true},
	{"ltrimstr", "ltrimstr(s)", "strip s from the left if present", true},
	{"rtrimstr", "rtrimstr(s)", "strip s from the right if present", true},
	{"startswith", "startswith(s)", "true if the string starts with s", true},
	{"endswith", "endswith(s)", "true if the string ends with s", true},
	{"test", "test(re; flags)", "true if the string matches re", true},
	{"match", "match(re; flags)", "regex match objects", true},
	{"capture", "capture(re; flags)", "named capture groups as an object", true},
	{"scan", "scan(re; flags)", "all non-overlapping regex matches", true},
	{"sub", "sub(re; str)", "replace the first regex match", true},
	{"gsub", "gsub(re; str)", "replace all regex matches", true},
	{"ascii_downcase", "ascii_downcase", "ASCII-fold a string to lowercase", false},
	{"ascii_upcase", "ascii_upcase", "ASCII-fold a string to uppercase", false},
	{"contains", "contains(x)", "true if input contains x", true},
	{"inside", "inside(x)", "true if input is contained in x", true},
	{"index", "index(s)", "first index of s", true},
	{"rindex", "rindex(s)", "last index of s", true},
	{"indices", "indices(s)", "all indices of s", true},
	{"strftime", "strftime(fmt)", "format a broken-down time", true},
	{"strptime", "strptime(fmt)", "parse a string into broken-down time", true},
	{"fromdate", "fromdate", "parse an ISO-8601 date string", false},
	{"todate", "todate", "format a timestamp as an ISO-8601 string", false},
	{"fromdateiso8601", "fromdateiso8601", "parse an ISO-8601 date string to a timestamp", false},
	{"todateiso8601", "todateiso8601", "format a timestamp as ISO-8601", false},
	{"now", "now", "the current time as a UNIX timestamp", false},
	{"keys", "keys", "object keys, or array indices, sorted", false},
	{"keys_unsorted", "keys_unsorted", "object keys in original order", false},
	{"values", "values", "input unless it is null", false},
	{"sort", "sort", "sort an array", false},
	{"reverse", "reverse", "reverse an array or string", false},
	{"unique", "unique", "remove duplicate elements", false},
	{"flatten", "flatten", "flatten nested arrays", false},
	{"flatten_depth", "flatten(depth)", "flatten nested arrays up to depth", true},
	{"add", "add", "sum/concatenate all elements", false},
	{"length", "length", "length of a string, array, object, or number", false},
	{"utf8bytelength", "utf8bytelength", "number of bytes in a UTF-8 string", false},
	{"first", "first", "first element (or first(f) for first output)", false},
	{"last", "last", "last element (or last(f) for last output)", false},
	{"min", "min", "minimum element", false},
	{"max", "max", "maximum element", false},
	{"transpose", "transpose", "transpose an array of arrays", false},
	{"to_entries", "to_entries", "convert an object to [{key,value}]", false},
	{"from_entries", "from_entries", "convert [{key,value}] to an object", false},
	{"type", "type", "the type name of the input", false},
	{"tostring", "tostring", "convert to a string", false},
	{"tonumber", "tonumber", "convert to a number", false},
	{"arrays", "arrays", "input unless it is not an array", false},
	{"objects", "objects", "input unless it is not an object", false},
	{"iterables", "iterables", "input unless it is not iterable", false},
	{"booleans", "booleans", "input unless it is not a boolean", false},
	{"numbers", "numbers", "input unless it is not a number", false},
	{"strings", "strings", "input unless it is not a string", false},
	{"nulls", "nulls", "input unless it is not null", false},
	{"scalars", "scalars", "input unless it is an array or object", false},
	{"floor", "floor", "round down", false},
	{"ceil", "ceil", "round up", false},
	{"round", "round", "round to nearest", false},
	{"sqrt", "sqrt", "square root", false},
	{"pow", "pow(x; y)", "x to the power of y", true},
	{"log", "log", "natural logarithm", false},
	{"exp", "exp", "e to the power of the input", false},
	{"abs", "abs", "absolute value", false},
	{"empty", "empty", "produce no output", false},
	{"error", "error(msg)", "raise an error", true},
	{"not", "not", "boolean negation", false},
	{"any", "any(f)", "true if any output of f is true", true},
	{"all", "all(f)", "true if all outputs of f are true", true},
	{"env", "env", "environment variables as an object", false},
	{"input", "input", "read the next input value", false},
	{"inputs", "inputs", "read all remaining input values", false},
	{"debug", "debug", "print the input to stderr, unchanged", false},
	{"ascii", "ascii", "convert a codepoint to a one-character string", false},
	{"explode", "explode", "string to array of codepoints", false},
	{"implode", "implode", "array of codepoints to string", false},
	{"ltrimstr", "ltrimstr(s)", "strip s from the left if present", true},
	{"splits", "splits(re; flags)", "split a string on a regex", true},
	{"tojson", "tojson", "serialize the input to a JSON string", false},
	{"fromjson", "fromjson", "parse a JSON string", false},
	{"input_line_number", "input_line_number", "current input line number", false},
	{"$__prog_name", "$__prog_name", "the program's invocation name", false},
}

// patternSuggestions covers the common non-identifier patterns (§4.3.2
// FunctionContext: "common patterns like .[], .., .[0], .[-1]").
var patternSuggestions = []Suggestion{
	{Text: ".[]", Kind: KindPattern, Description: "iterate over all elements"},
	{Text: "..", Kind: KindPattern, Description: "recursively descend into all values"},
	{Text: ".[0]", Kind: KindPattern, Description: "first element"},
	{Text: ".[-1]", Kind: KindPattern, Description: "last element"},
}

// operatorSuggestions covers jq's non-alphanumeric operators.
var operatorSuggestions = []Suggestion{
	{Text: "|", Kind: KindOperator, Description: "pipe output into the next filter"},
	{Text: "//", Kind: KindOperator, Description: "alternative operator: fall back on null/error"},
	{Text: "and", Kind: KindOperator, Description: "boolean and"},
	{Text: "or", Kind: KindOperator, Description: "boolean or"},
	{Text: "|=", Kind: KindOperator, Description: "update assignment"},
	{Text: "+=", Kind: KindOperator, Description: "add and assign"},
	{Text: "-=", Kind: KindOperator, Description: "subtract and assign"},
	{Text: "*=", Kind: KindOperator, Description: "multiply and assign"},
	{Text: "/=", Kind: KindOperator, Description: "divide and assign"},
	{Text: "//=", Kind: KindOperator, Description: "alternative-assign"},
}

// formatSuggestions covers jq's @-prefixed format directives.
var formatSuggestions = []Suggestion{
	{Text: "@json", Kind: KindOperator, Description: "encode as a JSON string"},
	{Text: "@uri", Kind: KindOperator, Description: "percent-encode for a URI"},
	{Text: "@csv", Kind: KindOperator, Description: "encode as a CSV row"},
	{Text: "@tsv", Kind: KindOperator, Description: "encode as a TSV row"},
	{Text: "@html", Kind: KindOperator, Description: "HTML-escape"},
	{Text: "@base64", Kind: KindOperator, Description: "base64-encode"},
	{Text: "@base64d", Kind: KindOperator, Description: "base64-decode"},
	{Text: "@sh", Kind: KindOperator, Description: "shell-quote"},
}

// keywordSuggestions covers jq's reserved words.
var keywordSuggestions = []Suggestion{
	{Text: "if", Kind: KindOperator, Description: "conditional"},
	{Text: "then", Kind: KindOperator, Description: "conditional branch"},
	{Text: "elif", Kind: KindOperator, Description: "conditional branch"},
	{Text: "else", Kind: KindOperator, Description: "conditional branch"},
	{Text: "end", Kind: KindOperator, Description: "end a block"},
	{Text: "as", Kind: KindOperator, Description: "bind the input to a pattern"},
	{Text: "reduce", Kind: KindOperator, Description: "fold over a stream"},
	{Text: "foreach", Kind: KindOperator, Description: "fold over a stream, emitting each step"},
	{Text: "label", Kind: KindOperator, Description: "label a block for break"},
	{Text: "try", Kind: KindOperator, Description: "catch errors from a filter"},
	{Text: "catch", Kind: KindOperator, Description: "error handler for try"},
	{Text: "import", Kind: KindOperator, Description: "import a module"},
}

// builtins is the full flat catalogue consulted by FunctionContext:
// functions + patterns + operators + formats + keywords, in that order.
var builtins = buildBuiltins()

func buildBuiltins() []Suggestion {
	out := make([]Suggestion, 0, len(functionCatalogue)+len(patternSuggestions)+len(operatorSuggestions)+len(formatSuggestions)+len(keywordSuggestions)+2)
	for _, f := range functionCatalogue {
		out = append(out, Suggestion{
			Text:        f.Name,
			Kind:        KindFunction,
			Signature:   f.Signature,
			Description: f.Description,
			NeedsParens: f.NeedsParens,
		})
	}
	out = append(out, patternSuggestions...)
	out = append(out, operatorSuggestions...)
	out = append(out, formatSuggestions...)
	out = append(out, keywordSuggestions...)
	out = append(out, Suggestion{Text: "$ENV", Kind: KindVariable, Description: "environment variables"})
	out = append(out, Suggestion{Text: "$__loc__", Kind: KindVariable, Description: "source location"})
	return out
}

// FilterBuiltins filters the static catalogue by case-insensitive
// prefix match on prefix. An empty prefix returns no suggestions,
// avoiding dumping the entire catalogue (§4.3.2).
func FilterBuiltins(prefix string) []Suggestion {
	if prefix == "" {
		return nil
	}
	lowerPrefix := strings.ToLower(prefix)
	var out []Suggestion
	for _, s := range builtins {
		if strings.HasPrefix(strings.ToLower(s.Text), lowerPrefix) {
			out = append(out, s)
		}
	}
	return out
}

// FindFunction looks up a builtin function by exact name, used by the
// tooltip's function detector (§3.4).
func FindFunction(name string) (Function, bool) {
	for _, f := range functionCatalogue {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}
