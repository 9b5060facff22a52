// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package query implements the background jq evaluation worker and the
// query state that bridges it to the UI: a single worker goroutine runs
// one jq program at a time against an immutable input document, while
// the UI cancels superseded requests and filters stale responses by
// request id.
package query

import (
	"sync/atomic"

	"jiq/internal/jsonvalue"
)

// CancelToken is a shared flag a producer sets to tell the worker a
// request is superseded. The worker only consults it before starting
// work on a request; it never interrupts jq mid-evaluation.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a fresh, unset token.
func NewCancelToken() *CancelToken { return &CancelToken{} }

// Cancel marks the token cancelled.
func (t *CancelToken) Cancel() { t.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool { return t.cancelled.Load() }

// Request is a single query submission.
type Request struct {
	Query       string
	RequestID   uint64
	CancelToken *CancelToken
}

// Response is one of Success, Error, or Cancelled, discriminated by Kind.
type ResponseKind int

const (
	KindSuccess ResponseKind = iota
	KindError
	KindCancelled
)

type Response struct {
	Kind      ResponseKind
	RequestID uint64
	Query     string

	// Success fields.
	Formatted  string
	Parsed     []jsonvalue.Value
	ResultType jsonvalue.ResultType

	// Error fields.
	Message string
}
