// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package clipboard copies yanked query/result text out of jiq via one
// of three backends: the host system clipboard, an OSC 52 terminal
// escape sequence (for SSH/tmux sessions with no system clipboard
// access), or Auto, which tries System first and falls back to OSC 52.
package clipboard

import "fmt"

// Backend selects which copy implementation Copy uses.
type Backend int

const (
	// BackendSystem uses the host OS clipboard.
	BackendSystem Backend = iota
	// BackendOSC52 writes an OSC 52 escape sequence to stdout.
	BackendOSC52
	// BackendAuto tries BackendSystem, falling back to BackendOSC52.
	BackendAuto
)

// ParseBackend maps a config/flag value to a Backend, defaulting to
// Auto for an unrecognized or empty string.
func ParseBackend(s string) Backend {
	switch s {
	case "system":
		return BackendSystem
	case "osc52":
		return BackendOSC52
	default:
		return BackendAuto
	}
}

// Error distinguishes why a copy failed, mirroring the original's
// ClipboardError enum.
type Error struct {
	reason string
}

func (e *Error) Error() string { return e.reason }

// ErrSystemUnavailable is returned when no system clipboard is
// reachable (headless session, missing xclip/xsel/pbcopy, etc.).
var ErrSystemUnavailable = &Error{reason: "system clipboard unavailable"}

// errWrite builds the error returned when the backend was reachable
// but the write itself failed.
func errWrite(cause error) error {
	return &Error{reason: fmt.Sprintf("clipboard write failed: %v", cause)}
}

// Copy writes text to the clipboard using the given backend.
func Copy(text string, backend Backend) error {
	switch backend {
	case BackendSystem:
		return copySystem(text)
	case BackendOSC52:
		return copyOSC52(text)
	default:
		if err := copySystem(text); err != nil {
			return copyOSC52(text)
		}
		return nil
	}
}
