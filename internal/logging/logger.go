// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for jiq, built on the
// standard library's slog package the same way the teacher's
// pkg/logging does: a small wrapper that picks destinations and level,
// and defers formatting to slog's handlers.
//
// Unlike the teacher's CLI tools, jiq owns the terminal's alternate
// screen for the whole session, so stderr is not a usable destination
// once the program starts drawing: the default here is file-only,
// writing to ~/.cache/jiq/jiq.log, with stderr added only when
// Config.Quiet is set, for pre-bubbletea diagnostics (flag parsing
// errors, missing input).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level mirrors slog's severity ordering without exposing slog in
// every caller's import list.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps JIQ_LOG_LEVEL's string values to a Level. ok is false
// for an empty or unrecognized string, telling the caller to disable
// file logging entirely rather than default to some level, per §1's
// "leaves no trace unless asked" behavior.
func ParseLevel(s string) (level Level, ok bool) {
	switch s {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger. The zero value logs Debug+ (LevelDebug
// is the zero Level) to a file under the default cache directory in
// JSON.
type Config struct {
	// Level is the minimum level written.
	Level Level
	// LogDir overrides the default log directory. Supports a leading
	// "~" for home-directory expansion.
	LogDir string
	// Quiet additionally echoes to stderr, for use before the
	// bubbletea program takes over the terminal.
	Quiet bool
	// Disabled skips opening the log file (and any stderr fallback)
	// entirely, discarding every record. Set when JIQ_LOG_LEVEL is
	// unset, so a default run of jiq leaves nothing behind.
	Disabled bool
}

// Logger wraps an slog.Logger bound to a single log file.
type Logger struct {
	slog *slog.Logger
	file *os.File
	mu   sync.Mutex
}

// New creates a Logger per config, creating the log directory if
// needed. File errors are not fatal: logging silently degrades to
// stderr-only so a permissions problem on ~/.cache never blocks the
// query explorer from starting.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	logger := &Logger{}

	if config.Disabled {
		logger.slog = slog.New(slog.NewTextHandler(io.Discard, opts))
		return logger
	}

	var handlers []slog.Handler

	dir := config.LogDir
	if dir == "" {
		dir = defaultLogDir()
	}
	dir = expandPath(dir)

	if dir != "" {
		if err := os.MkdirAll(dir, 0750); err == nil {
			path := filepath.Join(dir, "jiq.log")
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640); err == nil {
				logger.file = f
				handlers = append(handlers, slog.NewJSONHandler(f, opts))
			}
		}
	}

	if config.Quiet || len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
	}

	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = &multiHandler{handlers: handlers}
	}

	logger.slog = slog.New(handler)
	return logger
}

// Default returns a Logger with default settings (file-only, Info
// level, ~/.cache/jiq/jiq.log).
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a child Logger that includes the given attributes on
// every subsequent call.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), file: l.file}
}

// Close flushes and closes the underlying log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return err
	}
	return l.file.Close()
}

// multiHandler fans a record out to every handler that wants it,
// ported from the teacher's pkg/logging so stderr can be added
// alongside the file handler without slog.Logger.With duplicating
// attribute plumbing by hand.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "jiq")
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// fmtDuration is used by callers timing query execution for debug logs.
func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000.0)
}

// FormatDuration exposes fmtDuration for callers outside the package.
func FormatDuration(d time.Duration) string { return fmtDuration(d) }
