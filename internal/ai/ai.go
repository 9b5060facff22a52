// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ai defines the AI-assist panel toggled by Ctrl-A. Like
// search, it is a thin stub: no ai/ directory exists anywhere in
// original_source/'s retrieved files, and the spec names it as an
// external collaborator. The panel renders a placeholder and never
// spawns a worker; PollResponseChannel preserves the event loop's
// shape (the loop still polls an AI response channel every tick,
// matching §4.5 step 2) without anything ever populating it.
package ai

// Panel is the AI-assist panel's visibility/toggle state.
type Panel struct {
	visible bool
}

// NewPanel returns a Panel starting hidden.
func NewPanel() *Panel { return &Panel{} }

// Toggle flips the panel's visibility (Ctrl-A).
func (p *Panel) Toggle() { p.visible = !p.visible }

// Visible reports whether the panel should render.
func (p *Panel) Visible() bool { return p.visible }

// Placeholder is the text rendered in place of a real response.
func (p *Panel) Placeholder() string {
	return "AI assist is not available in this build."
}

// PollResponseChannel is a no-op standing in for a real background
// worker's response poll, called from the same event-loop tick that
// polls the query worker so the loop's shape doesn't change if AI
// support is added later.
func PollResponseChannel(*Panel) {}
