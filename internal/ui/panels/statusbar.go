package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/stream"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	server     string
	stream     stream.State
	sessions   int
	busy       bool
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(server string) StatusBar {
	return StatusBar{server: server}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "coupontop " + Version
	if s.busy {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		appName = lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame) + " " + appName
	}
	left := " " + styles.TextSecondaryStyle.Render(appName)

	if s.server != "" {
		left += sep + styles.TextDimStyle.Render(s.server)
	}

	var streamStr string
	switch s.stream {
	case stream.StateConnected:
		streamStr = lipgloss.NewStyle().Foreground(styles.StatusSuccess).Render("stream live")
	case stream.StateDisconnected:
		streamStr = lipgloss.NewStyle().Foreground(styles.StatusError).Render("stream down")
	default:
		streamStr = lipgloss.NewStyle().Foreground(styles.StatusPending).Render("stream connecting")
	}
	left += sep + streamStr

	left += sep + lipgloss.NewStyle().Foreground(styles.StatusRunning).
		Render(text.Plural(s.sessions, "active session"))

	if s.FlashActive() {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		left += sep + lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" "+s.flash)
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

// FlashActive reports whether a flash is set and not yet expired.
func (s StatusBar) FlashActive() bool {
	return s.flash != "" && time.Now().Before(s.flashUntil)
}

func (s StatusBar) Flash() (string, FlashLevel) {
	return s.flash, s.flashLevel
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

func (s *StatusBar) SetStreamState(st stream.State) { s.stream = st }

func (s *StatusBar) SetSessions(n int) { s.sessions = n }

// SetBusy shows the spinner while a request is in flight.
func (s *StatusBar) SetBusy(b bool) { s.busy = b }

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
