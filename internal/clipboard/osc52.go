// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package clipboard

import (
	"encoding/base64"
	"fmt"
	"os"
)

// EncodeOSC52 builds the OSC 52 escape sequence terminal emulators
// interpret as "set the system clipboard to this text":
//
//	\x1b]52;c;{base64}\x07
//
// "c" selects the clipboard (as opposed to "p", primary selection).
// Exposed for testing, matching the original's encode_osc52.
func EncodeOSC52(text string) string {
	return fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
}

// copyOSC52 writes the escape sequence directly to stdout; terminal
// emulators with OSC 52 support (most modern ones, including over SSH
// and inside tmux with passthrough configured) pick it up regardless
// of whether the process itself has clipboard access.
func copyOSC52(text string) error {
	if _, err := os.Stdout.WriteString(EncodeOSC52(text)); err != nil {
		return errWrite(err)
	}
	return nil
}
