// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"strings"
	"sync"

	"jiq/internal/jsonvalue"
)

// Result is the outcome of the current query: exactly one of a
// formatted success string or an error message.
type Result struct {
	Formatted string
	Err       string
}

func (r Result) IsOK() bool  { return r.Err == "" }
func (r Result) IsErr() bool { return r.Err != "" }

// State bridges the UI and the Worker, holding "the freshest
// meaningful view of query results" (§4.2).
type State struct {
	mu sync.Mutex

	InputJSON jsonvalue.Value

	currentQuery string
	result       Result
	resultParsed []jsonvalue.Value
	resultType   jsonvalue.ResultType

	lastSuccessfulResult string
	baseQueryForSuggest  string
	baseTypeForSuggest   jsonvalue.ResultType
	hasLastSuccessful    bool

	cachedLineCount     int
	cachedMaxLineWidth  int

	allFieldNames []string

	requestCh   chan Request
	responseCh  chan Response
	worker      *Worker
	nextID      uint64
	currentID   uint64
	inFlightTok *CancelToken
}

// NewState constructs a Query State for a freshly loaded document and
// spawns its worker. all_field_names is computed once here, per §3.
func NewState(input jsonvalue.Value) *State {
	requestCh := make(chan Request)
	responseCh := make(chan Response)
	s := &State{
		InputJSON:     input,
		allFieldNames: jsonvalue.AllFieldNames(input),
		requestCh:     requestCh,
		responseCh:    responseCh,
	}
	s.worker = Spawn(input, requestCh, responseCh)
	return s
}

// Close shuts the worker goroutine down.
func (s *State) Close() {
	close(s.requestCh)
}

func (s *State) AllFieldNames() []string { return s.allFieldNames }

func (s *State) CurrentQuery() string { return s.currentQuery }

func (s *State) Result() Result { return s.result }

func (s *State) ResultParsed() []jsonvalue.Value { return s.resultParsed }

func (s *State) ResultType() jsonvalue.ResultType { return s.resultType }

func (s *State) LastSuccessfulResult() (string, bool) {
	return s.lastSuccessfulResult, s.hasLastSuccessful
}

func (s *State) BaseQueryForSuggestions() string { return s.baseQueryForSuggest }

func (s *State) BaseTypeForSuggestions() jsonvalue.ResultType { return s.baseTypeForSuggest }

func (s *State) CachedLineCount() int { return s.cachedLineCount }

func (s *State) CachedMaxLineWidth() int { return s.cachedMaxLineWidth }

// ExecuteAsync cancels any in-flight request, mints a new request id,
// and submits the query to the worker without blocking the caller.
func (s *State) ExecuteAsync(queryText string) {
	s.mu.Lock()
	if s.inFlightTok != nil {
		s.inFlightTok.Cancel()
	}
	s.nextID++
	id := s.nextID
	s.currentQuery = queryText
	tok := NewCancelToken()
	s.inFlightTok = tok
	s.mu.Unlock()

	go func() {
		s.requestCh <- Request{Query: queryText, RequestID: id, CancelToken: tok}
	}()
}

// PollResponse drains the response channel without blocking, applying
// the freshest response whose RequestID equals the current one. Stale
// responses (superseded by a later ExecuteAsync) are discarded.
func (s *State) PollResponse() (applied bool) {
	for {
		select {
		case resp := <-s.responseCh:
			s.apply(resp)
			applied = applied || s.isCurrent(resp.RequestID)
		default:
			return applied
		}
	}
}

func (s *State) isCurrent(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id == s.nextID
}

// ExecuteSync runs the same evaluation synchronously, for deterministic
// test paths (§4.1).
func (s *State) ExecuteSync(queryText string) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.currentQuery = queryText
	s.mu.Unlock()

	w := &Worker{input: s.InputJSON}
	resp := w.handle(Request{Query: queryText, RequestID: id})
	s.apply(resp)
}

func (s *State) apply(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.RequestID != s.nextID {
		// Stale: superseded by a later ExecuteAsync/ExecuteSync call.
		return
	}

	switch resp.Kind {
	case KindCancelled:
		return
	case KindError:
		s.result = Result{Err: resp.Message}
		return
	case KindSuccess:
		s.result = Result{Formatted: resp.Formatted}
		s.resultParsed = resp.Parsed
		s.resultType = resp.ResultType
		s.cachedLineCount = strings.Count(resp.Formatted, "\n") + boolToInt(resp.Formatted != "")
		s.cachedMaxLineWidth = maxLineWidth(resp.Formatted)

		if !jsonvalue.IsDegenerate(resp.Parsed, resp.ResultType) {
			s.lastSuccessfulResult = resp.Formatted
			s.hasLastSuccessful = true
			s.baseQueryForSuggest = resp.Query
			s.baseTypeForSuggest = resp.ResultType
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func maxLineWidth(s string) int {
	max := 0
	for _, line := range strings.Split(s, "\n") {
		if len(line) > max {
			max = len(line)
		}
	}
	return max
}
