// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snippets

import "strings"

// Matcher filters and ranks snippets by name against a space-separated
// search query, one term scored independently against each name (a
// snippet must match every term to appear at all), the same contract
// as the original's SkimMatcherV2-based SnippetMatcher.filter.
//
// No fuzzy-matching library appears anywhere in the retrieved pack
// (fuzzy_matcher/skim has no Go equivalent among the example repos'
// dependencies), so this substitutes a prefix/substring scorer: an
// exact prefix match scores highest, a substring match scores by how
// early it starts, and no match excludes the snippet from the term.
type Matcher struct{}

// NewMatcher returns a ready-to-use Matcher; it carries no state.
func NewMatcher() Matcher { return Matcher{} }

// Filter returns indices into snippets whose names match every
// whitespace-separated term in query, ordered best match first. An
// empty query returns every index in its original order.
func (Matcher) Filter(query string, snippets []Snippet) []int {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		indices := make([]int, len(snippets))
		for i := range snippets {
			indices[i] = i
		}
		return indices
	}

	type scored struct {
		index int
		score int
	}
	var matches []scored
	for i, s := range snippets {
		total := 0
		name := strings.ToLower(s.Name)
		ok := true
		for _, term := range terms {
			score, termOK := scoreTerm(name, strings.ToLower(term))
			if !termOK {
				ok = false
				break
			}
			total += score
		}
		if ok {
			matches = append(matches, scored{index: i, score: total})
		}
	}

	for i := 1; i < len(matches); i++ {
		j := i
		for j > 0 && matches[j-1].score < matches[j].score {
			matches[j-1], matches[j] = matches[j], matches[j-1]
			j--
		}
	}

	result := make([]int, len(matches))
	for i, m := range matches {
		result[i] = m.index
	}
	return result
}

// scoreTerm reports whether term appears in name and, if so, a score
// that rewards an exact match highest, a prefix match next, and an
// interior substring match lowest (scaled by how early it starts).
func scoreTerm(name, term string) (int, bool) {
	if term == "" {
		return 0, true
	}
	if name == term {
		return 300, true
	}
	if strings.HasPrefix(name, term) {
		return 200, true
	}
	idx := strings.Index(name, term)
	if idx < 0 {
		return 0, false
	}
	return 100 - idx, true
}
