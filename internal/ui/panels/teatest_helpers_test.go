package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

func wrapControl(c *ControlPanel) tea.Model {
	return panelAdapter{
		view: func() string { return c.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := c.Update(msg)
			*c = next
			return cmd
		},
	}
}

func wrapLiveLog(l *LiveLog) tea.Model {
	return panelAdapter{
		view: func() string { return l.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := l.Update(msg)
			*l = next
			return cmd
		},
	}
}

func wrapMonitor(m *MonitorPanel) tea.Model {
	return panelAdapter{
		view: func() string { return m.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := m.Update(msg)
			*m = next
			return cmd
		},
	}
}

func wrapLogBrowser(b *LogBrowser) tea.Model {
	return panelAdapter{
		view: func() string { return b.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := b.Update(msg)
			*b = next
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

// keyMsg builds a key press. Named keys are used for enter, esc, space
// and tab; anything else is sent as runes.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and returns its message, or nil.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
