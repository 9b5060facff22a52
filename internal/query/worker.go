// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"jiq/internal/jsonvalue"
)

// Worker owns a single background goroutine bound to one root JSON
// value. It consumes Requests from requestCh in FIFO order and emits
// Responses on responseCh. There is exactly one worker per session
// (§5: "Worker thread (one per session)").
type Worker struct {
	input      jsonvalue.Value
	requestCh  chan Request
	responseCh chan Response
	done       chan struct{}
}

// Spawn starts a worker bound to input and returns immediately. The
// caller owns requestCh and responseCh and is responsible for closing
// requestCh to let the worker goroutine exit.
func Spawn(input jsonvalue.Value, requestCh chan Request, responseCh chan Response) *Worker {
	w := &Worker{
		input:      input,
		requestCh:  requestCh,
		responseCh: responseCh,
		done:       make(chan struct{}),
	}
	go w.run()
	return w
}

// Done is closed once the worker goroutine has returned (requestCh
// closed and drained).
func (w *Worker) Done() <-chan struct{} { return w.done }

func (w *Worker) run() {
	defer close(w.done)
	for req := range w.requestCh {
		w.responseCh <- w.handle(req)
	}
}

func (w *Worker) handle(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{
				Kind:      KindError,
				RequestID: req.RequestID,
				Query:     req.Query,
				Message:   "internal",
			}
		}
	}()

	if req.CancelToken != nil && req.CancelToken.Cancelled() {
		return Response{Kind: KindCancelled, RequestID: req.RequestID, Query: req.Query}
	}

	parsedQuery, err := gojq.Parse(req.Query)
	if err != nil {
		return Response{
			Kind:      KindError,
			RequestID: req.RequestID,
			Query:     req.Query,
			Message:   formatQueryError(err),
		}
	}

	code, err := gojq.Compile(parsedQuery)
	if err != nil {
		return Response{
			Kind:      KindError,
			RequestID: req.RequestID,
			Query:     req.Query,
			Message:   formatQueryError(err),
		}
	}

	var values []jsonvalue.Value
	streamed := isStreamingQuery(req.Query)
	iter := code.Run(w.input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return Response{
				Kind:      KindError,
				RequestID: req.RequestID,
				Query:     req.Query,
				Message:   formatQueryError(err),
			}
		}
		values = append(values, v)
	}

	resultType := jsonvalue.ClassifyValues(values, streamed)

	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = formatPretty(v)
	}

	return Response{
		Kind:       KindSuccess,
		RequestID:  req.RequestID,
		Query:      req.Query,
		Formatted:  strings.Join(lines, "\n"),
		Parsed:     values,
		ResultType: resultType,
	}
}

// isStreamingQuery is a cheap syntactic heuristic distinguishing a
// top-level iterator pipeline (".xs[]", "to_entries[]"), which emits
// independent objects, from an expression whose single top-level value
// happens to be an array or object. Mirrors the distinction the
// original tool draws between an "array of objects" result and a
// "destructured objects" result: the source of truth is whether jq's
// evaluation produced more than one top-level emission, which we infer
// here by looking for a trailing unbracketed `[]` / `.[]` outside of
// any enclosing parens at the top pipeline stage.
func isStreamingQuery(q string) bool {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return false
	}
	segments := splitTopLevelPipe(trimmed)
	last := strings.TrimSpace(segments[len(segments)-1])
	return strings.HasSuffix(last, "[]") || strings.HasSuffix(last, "[]?")
}

// splitTopLevelPipe splits on `|` at paren/bracket/brace depth 0,
// ignoring pipes inside string literals.
func splitTopLevelPipe(q string) []string {
	var segments []string
	depth := 0
	inString := false
	escaped := false
	start := 0
	for i, r := range q {
		if inString {
			if escaped {
				escaped = false
			} else if r == '\\' {
				escaped = true
			} else if r == '"' {
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '|':
			if depth == 0 {
				segments = append(segments, q[start:i])
				start = i + 1
			}
		}
	}
	segments = append(segments, q[start:])
	return segments
}

func formatQueryError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}
	return err.Error()
}
