package panels

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/coupontop/internal/ui/border"
)

// EditorModal edits one list as raw text, one entry per line.
type EditorModal struct {
	list    List
	input   textarea.Model
	width   int
	height  int
	screenW int
	screenH int
}

func NewEditorModal(list List, raw string, screenW, screenH int) *EditorModal {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	if list == ListUIDs {
		ta.Placeholder = "1234567 #main account"
	} else {
		ta.Placeholder = "SPRING24"
	}
	ta.SetValue(raw)
	ta.Focus()

	m := &EditorModal{list: list, input: ta}
	m.SetSize(screenW, screenH)
	return m
}

func (m *EditorModal) SetSize(screenW, screenH int) {
	m.screenW = screenW
	m.screenH = screenH
	m.width = max(screenW*80/100, 40)
	m.height = max(screenH*80/100, 10)
	m.input.SetWidth(m.width - 2)
	m.input.SetHeight(max(m.height-2, 3))
}

func (m *EditorModal) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *EditorModal) List() List { return m.list }

func (m *EditorModal) Value() string { return m.input.Value() }

func (m *EditorModal) Update(msg tea.Msg) (*EditorModal, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			return nil, func() tea.Msg { return CloseModalMsg{} }
		case "ctrl+s":
			list, content := m.list, m.input.Value()
			return nil, func() tea.Msg { return SaveListMsg{List: list, Content: content} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModal) View() string {
	title := "Edit " + m.list.String()
	if m.list == ListUIDs {
		title += " (uid #comment)"
	}
	kb := []border.Keybind{
		{Key: "^S", Label: " save"},
		{Key: "Esc", Label: " cancel"},
	}
	return border.RenderPanel(title, m.input.View(), kb, m.width, m.height, true)
}
