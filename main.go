// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"jiq/internal/app"
	"jiq/internal/clipboard"
	"jiq/internal/jsonvalue"
	"jiq/internal/logging"
)

var (
	outputQuery   bool
	outputResults bool
	clipboardFlag string
)

var rootCmd = &cobra.Command{
	Use:   "jiq [OPTIONS] [FILE]",
	Short: "Interactive terminal JSON explorer driven by jq queries",
	Long: `jiq loads a JSON document, from FILE or standard input, and lets you
build a jq query against it live, with autocomplete, a modal vi-style
editor, and snippet/history recall.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJIQ,
}

func main() {
	rootCmd.Flags().BoolVar(&outputQuery, "output-query", false, "print the last query to stdout on exit")
	rootCmd.Flags().BoolVar(&outputResults, "output-results", false, "print the last result to stdout on exit")
	rootCmd.Flags().StringVar(&clipboardFlag, "clipboard", "auto", "clipboard backend: system, osc52, or auto")

	if err := rootCmd.Execute(); err != nil {
		// Execute already printed cobra's usage message; §6 maps any
		// flag/argument problem it catches to exit code 2.
		os.Exit(2)
	}
}

func runJIQ(cmd *cobra.Command, args []string) error {
	level, ok := logging.ParseLevel(os.Getenv("JIQ_LOG_LEVEL"))
	logger := logging.New(logging.Config{Level: level, Disabled: !ok})
	defer logger.Close()

	input, err := loadInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jiq: %v\n", err)
		os.Exit(1)
	}

	model := app.New(app.Options{
		Input:            input,
		ClipboardBackend: clipboard.ParseBackend(clipboardFlag),
		Logger:           logger,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running jiq: %w", err)
	}

	switch {
	case model.OutputMode() == app.OutputQuery:
		fmt.Println(model.Query())
	case model.OutputMode() == app.OutputResults:
		fmt.Print(model.Result())
	case outputQuery:
		fmt.Println(model.Query())
	case outputResults:
		fmt.Print(model.Result())
	}

	return nil
}

// loadInput resolves the document from a FILE argument, or else from
// stdin when it is not a terminal, so a bare `jiq` with no piped input
// and no FILE fails fast instead of blocking on a read that will never
// produce data.
func loadInput(args []string) (jsonvalue.Value, error) {
	var raw []byte
	var err error

	switch {
	case len(args) == 1:
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	default:
		return nil, fmt.Errorf("no FILE given and stdin is a terminal; pipe JSON in or pass a FILE argument")
	}

	var value jsonvalue.Value
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return value, nil
}
