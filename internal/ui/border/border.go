package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

func lineStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	}
	return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
}

// edge renders left + " " + label + " " + fill + right, or a plain bar
// when label is empty. Fill absorbs whatever width the label leaves.
func edge(left, right, label string, width int, bs lipgloss.Style) string {
	inner := width - 2
	if label == "" {
		return bs.Render(left + strings.Repeat(horizBar, inner) + right)
	}
	fill := inner - 3 - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}
	return bs.Render(left+horizBar+" ") + label + bs.Render(" "+strings.Repeat(horizBar, fill)+right)
}

// RenderBorderTop renders: ╭─ Title ────────────╮
func RenderBorderTop(title string, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	label := ""
	if title != "" {
		if focused {
			label = styles.TitleStyle.Render(title)
		} else {
			label = styles.TextSecondaryStyle.Bold(true).Render(title)
		}
	}
	return edge(cornerTL, cornerTR, label, width, lineStyle(focused))
}

// RenderBorderBottom renders ╰─ [r]un  [F]orce ──╯ when focused and
// keybinds are given. Keybinds that do not fit are dropped from the end.
func RenderBorderBottom(keybinds []Keybind, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := lineStyle(focused)
	if !focused || len(keybinds) == 0 {
		return edge(cornerBL, cornerBR, "", width, bs)
	}

	budget := width - 2 - 3
	var parts []string
	used := 0
	for _, kb := range keybinds {
		rendered := RenderKeybind(kb)
		w := lipgloss.Width(rendered)
		if len(parts) > 0 {
			w += 2
		}
		if used+w > budget {
			break
		}
		parts = append(parts, rendered)
		used += w
	}
	if len(parts) == 0 {
		return edge(cornerBL, cornerBR, "", width, bs)
	}
	return edge(cornerBL, cornerBR, strings.Join(parts, "  "), width, bs)
}

// RenderBorderSides wraps each content line in │ … │, cropping or padding
// it to width-2 columns. Widths are ANSI-aware.
func RenderBorderSides(content string, width int, focused bool) string {
	if width < 2 {
		return content
	}
	bs := lineStyle(focused)
	bar := bs.Render(vertBar)
	inner := width - 2
	crop := lipgloss.NewStyle().MaxWidth(inner)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > inner {
			line = crop.Render(line)
		}
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		lines[i] = bar + line + bar
	}
	return strings.Join(lines, "\n")
}
