// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package editor

// ExecuteCharSearch moves the cursor to target per the classic vi f/F/t/T
// rules: Find lands on the character itself, Till lands one short of it
// (just before it going forward, just after it going backward). Reports
// whether an occurrence was found.
func ExecuteCharSearch(b *Buffer, target rune, dir SearchDirection, st SearchType) bool {
	b.breakCoalescing()
	switch dir {
	case SearchForward:
		for i := b.cursor + 1; i < len(b.text); i++ {
			if b.text[i] != target {
				continue
			}
			if st == SearchFind {
				b.cursor = i
			} else {
				b.cursor = i - 1
			}
			return true
		}
	case SearchBackward:
		for i := b.cursor - 1; i >= 0; i-- {
			if b.text[i] != target {
				continue
			}
			if st == SearchFind {
				b.cursor = i
			} else {
				b.cursor = i + 1
			}
			return true
		}
	}
	return false
}
