// Package border draws the rounded panels every view is framed in.
package border

import "strings"

// RenderPanel frames content in a width x height box with title on the
// top edge and, when focused, keybind hints on the bottom edge. Content is
// cropped or padded to fill the inner area exactly.
func RenderPanel(title, content string, keybinds []Keybind, width, height int, focused bool) string {
	if height < 2 || width < 2 {
		return ""
	}
	innerH := height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	parts := []string{RenderBorderTop(title, width, focused)}
	if innerH > 0 {
		parts = append(parts, RenderBorderSides(strings.Join(lines, "\n"), width, focused))
	}
	parts = append(parts, RenderBorderBottom(keybinds, width, focused))
	return strings.Join(parts, "\n")
}
