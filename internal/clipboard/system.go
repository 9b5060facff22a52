// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package clipboard

import "github.com/atotto/clipboard"

// copySystem writes text to the host OS clipboard via atotto/clipboard
// (X11/Wayland on Linux through xclip/xsel/wl-clipboard, pbcopy on
// macOS, the Win32 clipboard API on Windows), standing in for the
// original's use of the arboard crate.
func copySystem(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return ErrSystemUnavailable
	}
	return nil
}
