// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"jiq/internal/autocomplete"
)

var (
	modeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	focusedBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	unfocusedBorder = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("238"))

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("212"))

	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)
)

func newResultsViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch {
	case m.helpVisible:
		b.WriteString(m.renderHelp())
	case m.snippets.IsVisible():
		b.WriteString(m.renderSnippetPopup())
	case m.history.IsVisible():
		b.WriteString(m.renderHistoryPopup())
	default:
		border := unfocusedBorder
		if m.focus == FocusResultsPane {
			border = focusedBorder
		}
		b.WriteString(border.Width(m.width - 2).Render(m.resultsViewport.View()))
	}

	if m.ai.Visible() {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.ai.Placeholder()))
	}

	if m.autocomp.Visible() && m.focus == FocusInputField {
		b.WriteString("\n")
		b.WriteString(m.renderAutocomplete())
	}

	if tip := m.renderTooltip(); tip != "" {
		b.WriteString("\n")
		b.WriteString(tip)
	}

	return b.String()
}

func (m *Model) renderHeader() string {
	mode := m.editor.Mode.Display()
	focusLabel := "INPUT"
	if m.focus == FocusResultsPane {
		focusLabel = "RESULTS"
	}

	border := unfocusedBorder
	if m.focus == FocusInputField {
		border = focusedBorder
	}

	line := inputStyle.Render(m.Query())
	inputBox := border.Width(m.width - 2).Render(line)

	status := fmt.Sprintf("%s  %s", modeStyle.Render(mode), dimStyle.Render(focusLabel))

	result := m.query.Result()
	if result.IsErr() {
		status += "  " + errorStyle.Render(result.Err)
	}

	return status + "\n" + inputBox
}

func (m *Model) renderHelp() string {
	lines := []string{
		"Ctrl-C  quit without output",
		"Enter   quit, print results",
		"Shift-Enter  quit, print query",
		"Tab     switch focus (input / results)",
		"Ctrl-S  snippets",
		"Ctrl-R  history search (Insert mode)",
		"Ctrl-P / Ctrl-N  cycle history",
		"Ctrl-A  toggle AI panel",
		"y / yy  yank (Normal mode)",
		"F1 / ?  toggle this help",
	}
	return popupStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderAutocomplete() string {
	var lines []string
	for i, item := range m.autocomp.Items {
		line := item.Text
		if item.Signature != "" {
			line += "  " + dimStyle.Render(item.Signature)
		}
		if i == m.autocomp.Selected {
			line = selectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return popupStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTooltip() string {
	if !m.tooltip.ShouldShow() {
		return ""
	}
	switch {
	case m.tooltip.HasFunction():
		fn, ok := autocomplete.FindFunction(m.tooltip.CurrentFunction)
		if !ok {
			return ""
		}
		return tooltipStyle.Render(fn.Signature + "  " + fn.Description)
	case m.tooltip.HasOperator():
		return tooltipStyle.Render(m.tooltip.CurrentOperator)
	default:
		return ""
	}
}

func (m *Model) renderSnippetPopup() string {
	var lines []string
	lines = append(lines, "Snippets: "+m.snippets.SearchQuery())
	for i := 0; i < m.snippets.FilteredCount(); i++ {
		snip, ok := m.snippets.FilteredSnippetAt(i)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s  %s", snip.Name, dimStyle.Render(snip.Query))
		if i == m.snippets.SelectedIndex() {
			line = selectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return popupStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHistoryPopup() string {
	var lines []string
	lines = append(lines, "History: "+m.history.SearchQuery())
	for i, idx := range m.history.Matches() {
		entry, ok := m.history.EntryAt(idx)
		if !ok {
			continue
		}
		line := entry
		if i == m.history.SelectedIndex() {
			line = selectedItemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return popupStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}
