package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSyncSuccess(t *testing.T) {
	input := decodeJSON(t, `{"name":"Alice"}`)
	s := NewState(input)
	defer s.Close()

	s.ExecuteSync(".name")

	require.True(t, s.Result().IsOK())
	assert.Contains(t, s.Result().Formatted, "Alice")
	query, ok := s.LastSuccessfulResult()
	assert.True(t, ok)
	assert.Contains(t, query, "Alice")
	assert.Equal(t, ".name", s.BaseQueryForSuggestions())
}

func TestExecuteSyncDegenerateDoesNotOverwriteCache(t *testing.T) {
	input := decodeJSON(t, `{"name":"Alice"}`)
	s := NewState(input)
	defer s.Close()

	s.ExecuteSync(".name")
	require.Contains(t, s.Result().Formatted, "Alice")

	s.ExecuteSync(".missing")
	assert.True(t, s.Result().IsOK())
	assert.Equal(t, "null", s.Result().Formatted)

	cached, ok := s.LastSuccessfulResult()
	require.True(t, ok)
	assert.Contains(t, cached, "Alice")
	assert.Equal(t, ".name", s.BaseQueryForSuggestions())
}

func TestExecuteSyncErrorDoesNotTouchCache(t *testing.T) {
	input := decodeJSON(t, `{"name":"Alice"}`)
	s := NewState(input)
	defer s.Close()

	s.ExecuteSync(".name")
	s.ExecuteSync(".[")

	require.True(t, s.Result().IsErr())
	cached, ok := s.LastSuccessfulResult()
	require.True(t, ok)
	assert.Contains(t, cached, "Alice")
}

func TestAllFieldNamesComputedOnce(t *testing.T) {
	input := decodeJSON(t, `{"services":[{"caps":[{"base":0,"weight":1}]}]}`)
	s := NewState(input)
	defer s.Close()

	assert.ElementsMatch(t, []string{"services", "caps", "base", "weight"}, s.AllFieldNames())
}

func TestExecuteAsyncDiscardsStaleResponses(t *testing.T) {
	input := decodeJSON(t, `{"abc":1}`)
	s := NewState(input)
	defer s.Close()

	s.ExecuteAsync(".a")
	s.ExecuteAsync(".ab")
	s.ExecuteAsync(".abc")

	deadline := time.After(2 * time.Second)
	for {
		if s.PollResponse() {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for the current response")
		case <-time.After(time.Millisecond):
		}
	}

	assert.Equal(t, ".abc", s.CurrentQuery())
	assert.True(t, s.Result().IsOK())
}
