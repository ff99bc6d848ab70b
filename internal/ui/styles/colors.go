package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/monitor"
)

// Semantic colors: AdaptiveColor{Light, Dark}
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	StatusInfo    = lipgloss.AdaptiveColor{Light: "#0598bc", Dark: "#2ac3de"}

	SelectedRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}
	Checked       = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}

	HighlightUID    = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bb9af7"}
	HighlightThread = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}

	TabActiveBg = lipgloss.AdaptiveColor{Light: "#c8d8f0", Dark: "#283457"}
)

// BadgeColor returns the color of a monitoring badge.
func BadgeColor(b monitor.Badge) lipgloss.AdaptiveColor {
	switch b {
	case monitor.BadgePrimary:
		return StatusRunning
	case monitor.BadgeSecondary:
		return StatusPending
	case monitor.BadgeSuccess:
		return StatusSuccess
	case monitor.BadgeDanger:
		return StatusError
	default:
		return StatusInfo
	}
}
