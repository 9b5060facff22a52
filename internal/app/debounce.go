// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import "time"

// debounceDelay is how long a content-changing keystroke waits before
// the query actually runs. Short enough that typing feels live, long
// enough that a fast typist doesn't re-run jq on every single
// keystroke of a multi-character edit.
const debounceDelay = 120 * time.Millisecond

// Debouncer implements schedule_execution()/should_execute(): every
// content-changing keystroke pushes the due time forward; the app's
// tick loop checks ShouldExecute on each tick and, once due, runs the
// query and calls MarkExecuted.
type Debouncer struct {
	pending bool
	dueAt   time.Time
}

// Schedule arms the debouncer to fire debounceDelay from now,
// overwriting any previously scheduled (not-yet-fired) execution —
// each keystroke resets the clock rather than queuing multiple runs.
func (d *Debouncer) Schedule() {
	d.pending = true
	d.dueAt = time.Now().Add(debounceDelay)
}

// ShouldExecute reports whether a scheduled execution's timer has
// expired.
func (d *Debouncer) ShouldExecute() bool {
	return d.pending && !time.Now().Before(d.dueAt)
}

// MarkExecuted clears the pending execution after the app has run it.
func (d *Debouncer) MarkExecuted() {
	d.pending = false
}
