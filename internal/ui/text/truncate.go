// Package text holds the width-aware string helpers the panels render with.
// Widths are display columns and ignore ANSI escape codes.
package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate cuts s to maxWidth columns, ending in "…" when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// WrapText wraps s at word boundaries to width columns and returns the
// lines. Newlines in s are kept. A word wider than width is split so no
// text is lost.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// PadRight pads s with spaces to width. Wider strings are returned as is.
func PadRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
