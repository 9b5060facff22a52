package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDetectType(t *testing.T) {
	assert.Equal(t, FieldNull, DetectType(nil).Type)
	assert.Equal(t, FieldBoolean, DetectType(true).Type)
	assert.Equal(t, FieldNumber, DetectType(float64(1)).Type)
	assert.Equal(t, FieldString, DetectType("x").Type)
	assert.Equal(t, FieldObject, DetectType(map[string]any{}).Type)

	arr := DetectType([]any{"a", "b"})
	require.Equal(t, FieldArrayOf, arr.Type)
	assert.Equal(t, FieldString, arr.Inner.Type)

	assert.Equal(t, FieldArray, DetectType([]any{}).Type)
}

func TestClassifyValuesArrayOfObjects(t *testing.T) {
	v := decode(t, `[{"a":1},{"b":2}]`)
	got := ClassifyValues([]Value{v}, false)
	assert.Equal(t, ResultArrayOfObjects, got)
}

func TestClassifyValuesArrayMixed(t *testing.T) {
	v := decode(t, `[{"a":1},2]`)
	got := ClassifyValues([]Value{v}, false)
	assert.Equal(t, ResultArray, got)
}

func TestClassifyValuesDestructured(t *testing.T) {
	v1 := decode(t, `{"a":1}`)
	v2 := decode(t, `{"b":2}`)
	got := ClassifyValues([]Value{v1, v2}, true)
	assert.Equal(t, ResultDestructuredObjects, got)
}

func TestClassifyValuesNull(t *testing.T) {
	assert.Equal(t, ResultNull, ClassifyValues(nil, false))
	assert.Equal(t, ResultNull, ClassifyValues([]Value{nil}, false))
}

func TestIsDegenerate(t *testing.T) {
	assert.True(t, IsDegenerate(nil, ResultNull))
	assert.True(t, IsDegenerate([]Value{nil, nil}, ResultScalar))
	assert.False(t, IsDegenerate([]Value{float64(1)}, ResultScalar))
}

func TestAllFieldNames(t *testing.T) {
	v := decode(t, `{"services":[{"caps":[{"base":0,"weight":1}]}]}`)
	names := AllFieldNames(v)
	assert.ElementsMatch(t, []string{"services", "caps", "base", "weight"}, names)
}
