package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  48,
		height: 30,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Navigation") + "\n")
	b.WriteString(kv("1-4", "Switch tab") + "\n")
	b.WriteString(kv("Tab", "Next tab") + "\n")
	b.WriteString(kv("j/k", "Move up/down") + "\n")
	b.WriteString(kv("h/l", "Switch list or pane") + "\n")
	b.WriteString(kv("G/gg", "Jump to bottom/top") + "\n")
	b.WriteString(kv("/", "Filter or search") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Control") + "\n")
	b.WriteString(kv("space", "Toggle entry") + "\n")
	b.WriteString(kv("a/A", "Select all/none") + "\n")
	b.WriteString(kv("r", "Run selection") + "\n")
	b.WriteString(kv("F", "Force run") + "\n")
	b.WriteString(kv("e", "Edit list") + "\n")
	b.WriteString(kv("d", "Delete entry") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Logs & Monitoring") + "\n")
	b.WriteString(kv("G", "Follow live log") + "\n")
	b.WriteString(kv("y", "Yank session link") + "\n")
	b.WriteString(kv("enter", "Open log file") + "\n")
	b.WriteString(kv("r", "Refresh log list") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit") + "\n")
	b.WriteString(kv("Esc", "Close modal"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}
