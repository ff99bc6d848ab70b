package panels

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/monitor"
	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

const (
	cardMinWidth = 36
	cardHeight   = 5
)

// MonitorPanel draws the session grid from the latest accepted poll.
type MonitorPanel struct {
	hubURL  string
	tracker monitor.Tracker
	entries []api.SessionEntry
	lastErr error
	grid    monitor.Grid
	showAll bool
	updated time.Time

	// previewWidth caps the log preview, 0 for the card width.
	previewWidth int

	selected int
	rowOff   int
	gTap     DoubleTap

	width   int
	height  int
	focused bool
}

func NewMonitorPanel(hubURL string) MonitorPanel {
	return MonitorPanel{
		hubURL: hubURL,
		grid:   monitor.Grid{Placeholder: "Waiting for first poll..."},
		gTap:   NewDoubleTap(gTapIDCards),
	}
}

func (m *MonitorPanel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clamp()
}

func (m *MonitorPanel) SetFocused(f bool) { m.focused = f }

func (m *MonitorPanel) SetPreviewWidth(w int) { m.previewWidth = w }

func (m MonitorPanel) Grid() monitor.Grid { return m.grid }

// ActiveCount is the number of sessions not yet Finished or Error in the
// last good poll.
func (m MonitorPanel) ActiveCount() int {
	if m.lastErr != nil {
		return 0
	}
	return len(monitor.Build(m.entries, m.hubURL).Cards)
}

// SelectedCard returns the card under the cursor.
func (m MonitorPanel) SelectedCard() (monitor.Card, bool) {
	if m.selected < 0 || m.selected >= len(m.grid.Cards) {
		return monitor.Card{}, false
	}
	return m.grid.Cards[m.selected], true
}

func (m MonitorPanel) Update(msg tea.Msg) (MonitorPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		if !m.tracker.Accept(msg.Update) {
			return m, nil
		}
		m.entries = msg.Update.Entries
		m.lastErr = msg.Update.Err
		m.updated = time.Now()
		m.rebuild()
		return m, nil
	case GTimerExpiredMsg:
		m.gTap.HandleExpiry(msg)
		return m, nil
	case tea.KeyMsg:
		cols := m.columns()
		switch msg.String() {
		case "j", "down":
			if m.selected+cols < len(m.grid.Cards) {
				m.selected += cols
			}
		case "k", "up":
			if m.selected-cols >= 0 {
				m.selected -= cols
			}
		case "l", "right":
			if m.selected < len(m.grid.Cards)-1 {
				m.selected++
			}
		case "h", "left":
			if m.selected > 0 {
				m.selected--
			}
		case "G":
			m.selected = max(len(m.grid.Cards)-1, 0)
		case "g":
			fired, cmd := m.gTap.Check()
			if fired {
				m.selected = 0
				m.clamp()
			}
			return m, cmd
		case "a":
			m.showAll = !m.showAll
			m.rebuild()
		case "y":
			if c, ok := m.SelectedCard(); ok && c.Link != "" {
				link := c.Link
				return m, func() tea.Msg { return YankMsg{Text: link} }
			}
		}
		m.clamp()
	}
	return m, nil
}

func (m *MonitorPanel) rebuild() {
	var key string
	if c, ok := m.SelectedCard(); ok {
		key = c.Key
	}

	switch {
	case m.lastErr != nil:
		m.grid = monitor.ErrorGrid(m.lastErr)
	case m.showAll:
		m.grid = monitor.BuildAll(m.entries, m.hubURL)
	default:
		m.grid = monitor.Build(m.entries, m.hubURL)
	}

	for i, c := range m.grid.Cards {
		if c.Key == key {
			m.selected = i
			break
		}
	}
	m.clamp()
}

func (m MonitorPanel) columns() int {
	return max((m.width-2)/cardMinWidth, 1)
}

func (m MonitorPanel) visibleRows() int {
	return max((m.height-2)/cardHeight, 1)
}

func (m *MonitorPanel) clamp() {
	if m.selected >= len(m.grid.Cards) {
		m.selected = len(m.grid.Cards) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	row := m.selected / m.columns()
	if row < m.rowOff {
		m.rowOff = row
	}
	if vis := m.visibleRows(); row >= m.rowOff+vis {
		m.rowOff = row - vis + 1
	}
}

func (m MonitorPanel) View() string {
	title := "Monitoring"
	if m.showAll {
		title += styles.TextDimStyle.Render(" (all)")
	}
	if !m.updated.IsZero() {
		title += styles.TextDimStyle.Render(" updated " + m.updated.Format("15:04:05"))
	}

	var keybinds []border.Keybind
	if m.focused {
		keybinds = []border.Keybind{
			{Key: "y", Label: "ank link"},
			{Key: "a", Label: "ll"},
		}
	}

	return border.RenderPanel(title, m.renderGrid(), keybinds, m.width, m.height, m.focused)
}

func (m MonitorPanel) renderGrid() string {
	if len(m.grid.Cards) == 0 {
		style := styles.TextDimStyle
		if m.lastErr != nil {
			style = lipgloss.NewStyle().Foreground(styles.StatusError)
		}
		return style.Render(m.grid.Placeholder)
	}

	cols := m.columns()
	cardW := max((m.width-2)/cols, 10)

	var rows []string
	start := m.rowOff * cols
	end := min(start+m.visibleRows()*cols, len(m.grid.Cards))
	for i := start; i < end; i += cols {
		var cells []string
		for j := i; j < min(i+cols, end); j++ {
			cells = append(cells, m.renderCard(m.grid.Cards[j], cardW, j == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	if end < len(m.grid.Cards) {
		rows = append(rows, styles.TextDimStyle.Render(fmt.Sprintf("  ▼ %d more", len(m.grid.Cards)-end)))
	}
	return strings.Join(rows, "\n")
}

// renderCard draws one session: title and badge, the log preview, and the
// grid link for running sessions.
func (m MonitorPanel) renderCard(c monitor.Card, width int, cursor bool) string {
	innerW := max(width-4, 1)

	badge := styles.BadgeStyle(styles.BadgeColor(c.Badge)).Render(c.Status)
	titleW := max(innerW-lipgloss.Width(badge)-1, 1)
	head := styles.TitleStyle.Render(text.Truncate(c.Title, titleW))
	gap := max(innerW-lipgloss.Width(head)-lipgloss.Width(badge), 1)
	head += strings.Repeat(" ", gap) + badge

	previewW := innerW
	if m.previewWidth > 0 {
		previewW = min(previewW, m.previewWidth)
	}
	preview := styles.TextSecondaryStyle.Render(text.Truncate(text.Plain(c.Preview), previewW))

	link := styles.TextDimStyle.Render("no live session")
	if c.Link != "" {
		link = lipgloss.NewStyle().Foreground(styles.StatusInfo).Underline(true).
			Render(text.Truncate(c.Link, innerW))
	}

	borderColor := lipgloss.TerminalColor(styles.BorderUnfocused)
	if cursor && m.focused {
		borderColor = styles.BorderFocused
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Padding(0, 1)
	return box.Render(head + "\n" + preview + "\n" + link)
}
