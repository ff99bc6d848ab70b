package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle   = lipgloss.NewStyle().Background(SelectedRowBg)
	CheckedStyle       = lipgloss.NewStyle().Foreground(Checked).Bold(true)

	// Search highlight: yellow background, black text for matches
	SearchHighlightStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("11")).
				Foreground(lipgloss.Color("0"))

	UIDStyle    = lipgloss.NewStyle().Foreground(HighlightUID).Bold(true)
	ThreadStyle = lipgloss.NewStyle().Foreground(HighlightThread)

	TabActiveStyle   = lipgloss.NewStyle().Foreground(TitleText).Background(TabActiveBg).Bold(true).Padding(0, 1)
	TabInactiveStyle = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 1)
)

// ApplyTheme forces the light or dark palette. "default" keeps terminal
// background detection.
func ApplyTheme(name string) {
	switch name {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// BadgeStyle renders a status badge.
func BadgeStyle(c lipgloss.AdaptiveColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
