package border

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/ui/styles"
)

// Keybind is one hint in a panel's bottom border, rendered as [r]un.
type Keybind struct {
	Key   string
	Label string
}

func RenderKeybind(kb Keybind) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}

// KeybindWidth is the display width of a rendered keybind.
func KeybindWidth(kb Keybind) int {
	return lipgloss.Width("[" + kb.Key + "]" + kb.Label)
}
