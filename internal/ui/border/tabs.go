package border

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/ui/styles"
)

// RenderTabBar renders one row of numbered tabs, " 1 Control  2 Live Logs ",
// with the active tab highlighted. The row is padded or cropped to width.
func RenderTabBar(tabs []string, active, width int, right string) string {
	var parts []string
	for i, name := range tabs {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == active {
			parts = append(parts, styles.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.TabInactiveStyle.Render(label))
		}
	}
	left := strings.Join(parts, styles.TextDimStyle.Render("│"))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}
