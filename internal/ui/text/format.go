package text

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// RelativeTime formats t as "<1m ago", "3m ago", "1h ago", or
// "Jan 02 15:04" past a day.
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "<1m ago"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 02 15:04")
	}
}

// Plural returns "1 session", "3 sessions".
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Checkbox renders a checked flag as "[x]" or "[ ]".
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// Plain makes server text safe to print as-is: escape sequences are
// removed, tabs become spaces and carriage returns are dropped.
func Plain(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\t", "    ")
}
