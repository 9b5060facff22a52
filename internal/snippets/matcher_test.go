package snippets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherFilterEmptyQueryReturnsAllInOrder(t *testing.T) {
	snippets := []Snippet{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	got := NewMatcher().Filter("", snippets)
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestMatcherFilterRanksExactAndPrefixAboveSubstring(t *testing.T) {
	snippets := []Snippet{
		{Name: "has-user-in-middle"},
		{Name: "user"},
		{Name: "user-active"},
	}
	got := NewMatcher().Filter("user", snippets)
	assert.Equal(t, []int{1, 2, 0}, got)
}

func TestMatcherFilterExcludesNonMatchingTerm(t *testing.T) {
	snippets := []Snippet{{Name: "users"}, {Name: "posts"}}
	got := NewMatcher().Filter("users extra", snippets)
	assert.Empty(t, got)
}
