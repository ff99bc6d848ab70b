package panels

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

// ConfirmModal asks a yes/no question. Action is handed back in
// ConfirmedMsg when the answer is yes.
type ConfirmModal struct {
	prompt string
	action any
	width  int
}

func NewConfirmModal(prompt string, action any) *ConfirmModal {
	return &ConfirmModal{
		prompt: prompt,
		action: action,
		width:  max(min(lipgloss.Width(prompt)+6, 72), 40),
	}
}

func (m *ConfirmModal) Action() any { return m.action }

func (m *ConfirmModal) Update(msg tea.Msg) (*ConfirmModal, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		action := m.action
		return nil, func() tea.Msg { return ConfirmedMsg{Action: action} }
	case "n", "N", "esc", "q":
		return nil, func() tea.Msg { return CloseModalMsg{} }
	}
	return m, nil
}

func (m *ConfirmModal) View() string {
	lines := text.WrapText(m.prompt, m.width-4)
	body := ""
	for _, l := range lines {
		body += " " + styles.TextPrimaryStyle.Render(l) + "\n"
	}
	kb := []border.Keybind{
		{Key: "y", Label: "es"},
		{Key: "n", Label: "o"},
	}
	return border.RenderPanel("Confirm", body, kb, m.width, len(lines)+3, true)
}
