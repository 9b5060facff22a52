// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"encoding/json"

	"jiq/internal/jsonvalue"
)

// formatPretty renders a single emitted value the way jq's default
// pretty-printer does: two-space indentation, object keys in the order
// encoding/json emits them (Go maps have no stable order, but gojq's
// output values for JSON objects come back as map[string]any and jq
// itself does not promise key order in non-compact mode either).
func formatPretty(v jsonvalue.Value) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Scalars that MarshalIndent rejects (shouldn't happen for
		// values gojq emits) fall back to a best-effort string form.
		return formatScalarFallback(v)
	}
	return string(b)
}

func formatScalarFallback(v jsonvalue.Value) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
