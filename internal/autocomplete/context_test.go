package autocomplete

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestClassifyContextFunctionContext(t *testing.T) {
	var bt BraceTracker
	bt.Rebuild("ma")
	cls := ClassifyContext("ma", 2, &bt)
	assert.Equal(t, ContextFunction, cls.Context)
	assert.Equal(t, "ma", cls.Partial)
}

func TestClassifyContextFieldContextTrailingDot(t *testing.T) {
	var bt BraceTracker
	bt.Rebuild(".")
	cls := ClassifyContext(".", 1, &bt)
	assert.Equal(t, ContextField, cls.Context)
	assert.Equal(t, "", cls.Partial)
}

func TestClassifyContextFieldContextNestedPath(t *testing.T) {
	var bt BraceTracker
	q := ".services[].c"
	bt.Rebuild(q)
	cls := ClassifyContext(q, len(q), &bt)
	assert.Equal(t, ContextField, cls.Context)
	assert.Equal(t, "c", cls.Partial)
}

func TestClassifyContextObjectKeyContext(t *testing.T) {
	var bt BraceTracker
	q := "{na"
	bt.Rebuild(q)
	cls := ClassifyContext(q, len(q), &bt)
	assert.Equal(t, ContextObjectKey, cls.Context)
	assert.Equal(t, "na", cls.Partial)
}

func TestClassifyContextVariableContext(t *testing.T) {
	var bt BraceTracker
	q := ". as $item | reduce .[] as $x (0; $"
	bt.Rebuild(q)
	cls := ClassifyContext(q, len(q), &bt)
	assert.Equal(t, ContextVariable, cls.Context)
}

// Scenario 1 from §8: nested iterator completion.
func TestScenarioNestedIteratorCompletion(t *testing.T) {
	root := mustDecode(t, `{"services":[{"caps":[{"base":0,"weight":1}]}]}`)
	names := []string{"services", "caps", "base", "weight"}

	var bt BraceTracker
	q := ".services[].c"
	bt.Rebuild(q)
	cls := ClassifyContext(q, len(q), &bt)
	require.Equal(t, ContextField, cls.Context)

	suggestions := fieldContextSuggestions(q, len(q), cls, nil, 0, root, names, &bt)
	var texts []string
	for _, s := range suggestions {
		texts = append(texts, s.Text)
	}
	assert.Contains(t, texts, "caps")
}

// Scenario 2 from §8: object key completion.
func TestScenarioObjectKeyCompletion(t *testing.T) {
	resultParsed := []any{mustDecode(t, `{"name":"Alice","age":30}`)}
	var bt BraceTracker
	q := "{na"
	bt.Rebuild(q)

	suggestions := GetSuggestions(q, len(q), resultParsed, 0, nil, nil, &bt)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "name", suggestions[0].Text)
}

// Scenario 3 from §8: variable completion.
func TestScenarioVariableCompletion(t *testing.T) {
	q := ". as $item | reduce .[] as $x (0; $"
	var bt BraceTracker
	bt.Rebuild(q)

	suggestions := GetSuggestions(q, len(q), nil, 0, nil, nil, &bt)
	var texts []string
	for _, s := range suggestions {
		texts = append(texts, s.Text)
	}
	assert.Contains(t, texts, "$item")
	assert.Contains(t, texts, "$x")
	assert.Contains(t, texts, "$ENV")
	assert.Contains(t, texts, "$__loc__")
}

// Scenario 5 from §8: fallback on opaque value navigation.
func TestScenarioFallbackOpaqueValue(t *testing.T) {
	names := []string{"x", "p", "q"}
	var bt BraceTracker
	q := `to_entries | map(.value | tostring) | .[0].`
	bt.Rebuild(q)
	cls := ClassifyContext(q, len(q), &bt)
	require.Equal(t, ContextField, cls.Context)

	suggestions := fieldContextSuggestions(q, len(q), cls, nil, 0, nil, names, &bt)
	var texts []string
	for _, s := range suggestions {
		texts = append(texts, s.Text)
	}
	assert.ElementsMatch(t, []string{"x", "p", "q"}, texts)
}

func TestFilterBuiltinsEmptyPartialReturnsEmpty(t *testing.T) {
	assert.Empty(t, FilterBuiltins(""))
}

func TestFilterBuiltinsPrefixMatch(t *testing.T) {
	got := FilterBuiltins("sel")
	require.NotEmpty(t, got)
	assert.Equal(t, "select", got[0].Text)
}
