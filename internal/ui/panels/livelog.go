package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/stream"
	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

const msgWaitingForLogs = "Waiting for log output..."

var liveMarkers = stream.Markers{
	UID:    func(s string) string { return styles.UIDStyle.Render(s) },
	Thread: func(s string) string { return styles.ThreadStyle.Render(s) },
}

// LiveLog shows the shared stream history. It follows the tail until the
// operator scrolls up; G resumes following.
type LiveLog struct {
	viewport viewport.Model
	history  *stream.History
	seen     int

	state    stream.State
	stateErr error

	width       int
	height      int
	follow      bool
	focused     bool
	scrollSpeed int
	gTap        DoubleTap

	searching    bool
	searchInput  textinput.Model
	searchQuery  string
	matchIndices []int
	currentMatch int
}

func NewLiveLog(history *stream.History) LiveLog {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	return LiveLog{
		viewport:    viewport.New(0, 0),
		history:     history,
		follow:      true,
		scrollSpeed: 3,
		searchInput: ti,
		gTap:        NewDoubleTap(gTapIDLiveLog),
	}
}

func (l LiveLog) Following() bool { return l.follow }

func (l LiveLog) State() stream.State { return l.state }

// ConsumesKeys reports whether search input or navigation owns the keys.
func (l LiveLog) ConsumesKeys() bool {
	return l.searching || l.searchQuery != ""
}

func (l *LiveLog) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.resizeViewport()
	l.refreshContent()
}

func (l *LiveLog) SetFocused(f bool) { l.focused = f }

func (l *LiveLog) SetScrollSpeed(speed int) {
	if speed > 0 {
		l.scrollSpeed = speed
	}
}

func (l LiveLog) Update(msg tea.Msg) (LiveLog, tea.Cmd) {
	switch msg := msg.(type) {
	case StreamUpdatedMsg:
		if l.history == nil || l.history.TotalWritten() == l.seen {
			return l, nil
		}
		if l.searchQuery != "" {
			l.recomputeMatches()
		}
		l.refreshContent()
		return l, nil
	case StreamStateMsg:
		l.state = msg.State
		l.stateErr = msg.Err
		return l, nil
	case GTimerExpiredMsg:
		l.gTap.HandleExpiry(msg)
		return l, nil
	case tea.KeyMsg:
		if l.searching {
			return l.updateSearch(msg)
		}
		if l.searchQuery != "" {
			switch msg.String() {
			case "n":
				l.nextMatch()
				return l, nil
			case "N":
				l.prevMatch()
				return l, nil
			case "esc":
				l.clearSearch()
				return l, nil
			}
		}

		switch msg.String() {
		case "G":
			l.follow = true
			l.viewport.GotoBottom()
			return l, nil
		case "g":
			fired, cmd := l.gTap.Check()
			l.follow = false
			if fired {
				l.viewport.GotoTop()
			}
			return l, cmd
		case "/":
			l.searching = true
			l.follow = false
			l.searchInput.SetValue(l.searchQuery)
			l.resizeViewport()
			return l, l.searchInput.Focus()
		case "j", "down":
			l.scrollBy(l.step())
			return l, nil
		case "k", "up":
			l.scrollBy(-l.step())
			return l, nil
		case "ctrl+d":
			l.scrollBy(l.viewport.Height / 2)
			return l, nil
		case "ctrl+u":
			l.scrollBy(-l.viewport.Height / 2)
			return l, nil
		case "c":
			if l.history != nil {
				l.history.Reset()
				l.seen = 0
				l.refreshContent()
			}
			return l, nil
		}
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd
}

func (l LiveLog) step() int {
	return max(l.scrollSpeed, 1)
}

// scrollBy moves the viewport. Reaching the bottom by scrolling down turns
// follow back on.
func (l *LiveLog) scrollBy(delta int) {
	l.viewport.SetYOffset(max(l.viewport.YOffset+delta, 0))
	l.follow = delta > 0 && l.viewport.AtBottom()
}

func (l *LiveLog) updateSearch(msg tea.KeyMsg) (LiveLog, tea.Cmd) {
	switch msg.String() {
	case "esc":
		l.clearSearch()
		return *l, nil
	case "enter":
		l.searching = false
		l.searchQuery = l.searchInput.Value()
		l.searchInput.Blur()
		l.resizeViewport()
		l.recomputeMatches()
		l.jumpToMatch()
		l.refreshContent()
		return *l, nil
	}

	var cmd tea.Cmd
	l.searchInput, cmd = l.searchInput.Update(msg)
	l.searchQuery = l.searchInput.Value()
	l.recomputeMatches()
	l.refreshContent()
	return *l, cmd
}

func (l *LiveLog) clearSearch() {
	l.searching = false
	l.searchQuery = ""
	l.matchIndices = nil
	l.currentMatch = 0
	l.searchInput.Blur()
	l.resizeViewport()
	l.refreshContent()
}

func (l *LiveLog) recomputeMatches() {
	l.matchIndices = nil
	l.currentMatch = 0
	if l.searchQuery == "" || l.history == nil {
		return
	}
	query := strings.ToLower(l.searchQuery)
	for i, line := range l.history.Lines() {
		if strings.Contains(strings.ToLower(line), query) {
			l.matchIndices = append(l.matchIndices, i)
		}
	}
}

func (l *LiveLog) nextMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch + 1) % len(l.matchIndices)
	l.jumpToMatch()
	l.refreshContent()
}

func (l *LiveLog) prevMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.currentMatch = (l.currentMatch - 1 + len(l.matchIndices)) % len(l.matchIndices)
	l.jumpToMatch()
	l.refreshContent()
}

func (l *LiveLog) jumpToMatch() {
	if len(l.matchIndices) == 0 {
		return
	}
	l.follow = false
	l.viewport.SetYOffset(l.matchIndices[l.currentMatch])
}

func (l *LiveLog) resizeViewport() {
	innerH := l.height - 2
	if l.searching || l.searchQuery != "" {
		innerH--
	}
	l.viewport.Width = max(l.width-2, 0)
	l.viewport.Height = max(innerH, 0)
}

func (l *LiveLog) refreshContent() {
	offset := l.viewport.YOffset
	l.viewport.SetContent(l.renderContent())
	if l.follow {
		l.viewport.GotoBottom()
	} else {
		l.viewport.SetYOffset(offset)
	}
}

func (l *LiveLog) renderContent() string {
	if l.history == nil {
		return styles.TextDimStyle.Render(msgWaitingForLogs)
	}
	l.seen = l.history.TotalWritten()
	lines := l.history.Lines()
	if len(lines) == 0 {
		return styles.TextDimStyle.Render(msgWaitingForLogs)
	}

	current := -1
	if len(l.matchIndices) > 0 {
		current = l.matchIndices[l.currentMatch]
	}
	matched := make(map[int]bool, len(l.matchIndices))
	for _, i := range l.matchIndices {
		matched[i] = true
	}

	width := l.viewport.Width
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		line = text.Plain(line)
		if width > 0 {
			line = text.Truncate(line, width)
		}
		switch {
		case i == current:
			out = append(out, styles.SearchHighlightStyle.Render(line))
		case matched[i]:
			out = append(out, lipgloss.NewStyle().Underline(true).Render(line))
		default:
			out = append(out, stream.Highlight(line, liveMarkers))
		}
	}
	return strings.Join(out, "\n")
}

func (l LiveLog) title() string {
	var state string
	switch l.state {
	case stream.StateConnected:
		state = lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render("● live")
	case stream.StateDisconnected:
		state = lipgloss.NewStyle().Foreground(styles.StatusError).Render("○ reconnecting")
	default:
		state = lipgloss.NewStyle().Foreground(styles.StatusPending).Render("◌ connecting")
	}
	title := "Live Logs " + state
	if !l.follow {
		title += styles.TextDimStyle.Render(" (paused)")
	}
	return title
}

func (l LiveLog) View() string {
	var keybinds []border.Keybind
	if l.focused {
		keybinds = []border.Keybind{
			{Key: "G", Label: " follow"},
			{Key: "g", Label: "g top"},
			{Key: "/", Label: "search"},
			{Key: "c", Label: "lear"},
		}
	}

	content := l.viewport.View()
	if l.searching {
		content += "\n" + l.searchInput.View()
	} else if l.searchQuery != "" {
		var status string
		if len(l.matchIndices) == 0 {
			status = styles.TextDimStyle.Render("  No matches")
		} else {
			status = styles.TextSecondaryStyle.Render(
				fmt.Sprintf("  Match %d/%d", l.currentMatch+1, len(l.matchIndices)),
			) + styles.TextDimStyle.Render(" (n/N navigate, Esc clear)")
		}
		content += "\n" + status
	}

	return border.RenderPanel(l.title(), content, keybinds, l.width, l.height, l.focused)
}
