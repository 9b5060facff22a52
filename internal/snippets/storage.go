// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snippets

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	configDirName    = "jiq"
	snippetsFileName = "snippets.toml"
)

// snippetsFile is the on-disk TOML shape: a single top-level array of
// tables, matching the original's SnippetsFile wrapper struct exactly
// so existing snippets.toml files written by the Rust original parse
// unchanged.
type snippetsFile struct {
	Snippets []Snippet `toml:"snippets"`
}

// DefaultPath returns ~/.config/jiq/snippets.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", configDirName, snippetsFileName)
}

// Load reads and parses the snippets file at path. A missing or
// malformed file yields an empty slice rather than an error: snippets
// are optional convenience state, not something a parse failure
// should block the query explorer from starting over.
func Load(path string) []Snippet {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ParseTOML(data)
}

// ParseTOML decodes raw TOML bytes into a snippet slice, exposed
// separately for testing without touching the filesystem.
func ParseTOML(data []byte) []Snippet {
	var file snippetsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil
	}
	return file.Snippets
}

// Save writes snippets to path as pretty-printed TOML, creating the
// parent directory if needed.
func Save(path string, snippets []Snippet) error {
	if path == "" {
		return os.ErrInvalid
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}
	data, err := SerializeTOML(snippets)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0640)
}

// SerializeTOML encodes snippets the same way Save would write them,
// exposed for testing.
func SerializeTOML(snippets []Snippet) ([]byte, error) {
	if snippets == nil {
		snippets = []Snippet{}
	}
	return toml.Marshal(snippetsFile{Snippets: snippets})
}
