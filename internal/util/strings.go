// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared string helpers.
package util

import (
	"fmt"
	"strings"
)

// Truncate cuts s to at most max bytes. Generated names are ASCII, so byte
// and rune lengths agree.
func Truncate(s string, max int) string {
	if max < 0 {
		return ""
	}
	if len(s) > max {
		return s[:max]
	}
	return s
}

// Plural formats a count with the word in singular or plural form.
// For example: Plural(1, "file") returns "1 file", Plural(3, "file") returns
// "3 files".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	switch {
	case strings.HasSuffix(word, "y") && !strings.HasSuffix(word, "ey"):
		word = strings.TrimSuffix(word, "y") + "ies"
	case strings.HasSuffix(word, "s"):
		word += "es"
	default:
		word += "s"
	}
	return fmt.Sprintf("%d %s", n, word)
}
