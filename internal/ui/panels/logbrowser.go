package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/logbrowser"
	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

// Log browser panes, left column top to bottom, then the content pane.
const (
	paneLogs = iota
	paneCouponLogs
	paneContent
	paneCount
)

// LogBrowser lists archived application and coupon logs and shows the
// selected file.
type LogBrowser struct {
	browser *logbrowser.Browser
	lists   [2]itemList
	content viewport.Model
	gTap    DoubleTap
	pane    int

	listWidth    int
	contentWidth int
	logsHeight   int
	couponHeight int
	height       int
	focused      bool
}

func NewLogBrowser() LogBrowser {
	return LogBrowser{
		browser: logbrowser.New(),
		lists:   [2]itemList{newItemList(gTapIDLogFiles), newItemList(gTapIDCouponFiles)},
		content: viewport.New(0, 0),
		gTap:    NewDoubleTap(gTapIDContent),
	}
}

// SetSize lays out the two file lists stacked in listW and the content
// pane in contentW.
func (b *LogBrowser) SetSize(listW, contentW, logsH, couponH int) {
	b.listWidth = listW
	b.contentWidth = contentW
	b.logsHeight = logsH
	b.couponHeight = couponH
	b.height = logsH + couponH
	b.lists[paneLogs].SetHeight(logsH - 2)
	b.lists[paneCouponLogs].SetHeight(couponH - 2)
	b.content.Width = max(contentW-2, 0)
	b.content.Height = max(b.height-2, 0)
	b.refreshContent()
}

func (b *LogBrowser) SetFocused(f bool) { b.focused = f }

func (b LogBrowser) ConsumesKeys() bool {
	return b.pane != paneContent && b.lists[b.pane].Filtering()
}

func (b LogBrowser) Browser() *logbrowser.Browser { return b.browser }

func (b LogBrowser) Update(msg tea.Msg) (LogBrowser, tea.Cmd) {
	switch msg := msg.(type) {
	case LogListingMsg:
		if msg.Err != nil {
			b.browser.ApplyListingError(msg.Err)
		} else {
			b.browser.ApplyListing(msg.Listing)
		}
		for i, c := range logbrowser.Categories {
			b.lists[i].SetLabels(b.browser.Panel(c).Files)
		}
		return b, nil
	case LogContentMsg:
		var applied bool
		if msg.Err != nil {
			applied = b.browser.ApplyContentError(msg.Token, msg.Err)
		} else {
			applied = b.browser.ApplyContent(msg.Token, msg.Content)
		}
		if applied {
			b.refreshContent()
			b.content.GotoTop()
		}
		return b, nil
	case GTimerExpiredMsg:
		for i := range b.lists {
			b.lists[i].Update(msg)
		}
		b.gTap.HandleExpiry(msg)
		return b, nil
	case tea.KeyMsg:
		if b.pane != paneContent {
			if handled, cmd := b.lists[b.pane].Update(msg); handled {
				return b, cmd
			}
		}

		switch msg.String() {
		case "l", "right":
			b.pane = min(b.pane+1, paneCount-1)
			return b, nil
		case "h", "left":
			b.pane = max(b.pane-1, 0)
			return b, nil
		case "r":
			return b, func() tea.Msg { return RefreshLogsMsg{} }
		case "enter":
			if b.pane == paneContent {
				return b, nil
			}
			file, ok := b.lists[b.pane].Current()
			if !ok {
				return b, nil
			}
			req := b.browser.Select(logbrowser.Categories[b.pane], file)
			b.refreshContent()
			return b, func() tea.Msg { return LogContentRequestMsg{Request: req} }
		}

		if b.pane == paneContent {
			return b.updateContent(msg)
		}
	}
	return b, nil
}

func (b LogBrowser) updateContent(msg tea.KeyMsg) (LogBrowser, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		b.content.SetYOffset(b.content.YOffset + 1)
	case "k", "up":
		b.content.SetYOffset(max(b.content.YOffset-1, 0))
	case "G":
		b.content.GotoBottom()
	case "g":
		fired, cmd := b.gTap.Check()
		if fired {
			b.content.GotoTop()
		}
		return b, cmd
	default:
		var cmd tea.Cmd
		b.content, cmd = b.content.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *LogBrowser) refreshContent() {
	body := text.Plain(b.browser.Body)
	if b.content.Width > 0 {
		var lines []string
		for _, line := range strings.Split(body, "\n") {
			lines = append(lines, text.WrapText(line, b.content.Width)...)
		}
		body = strings.Join(lines, "\n")
	}
	b.content.SetContent(body)
}

func (b LogBrowser) View() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		b.renderList(paneLogs, b.logsHeight),
		b.renderList(paneCouponLogs, b.couponHeight),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, b.renderContent())
}

func (b LogBrowser) renderList(pane, height int) string {
	cat := logbrowser.Categories[pane]
	p := b.browser.Panel(cat)
	focused := b.focused && b.pane == pane
	innerW := max(b.listWidth-2, 0)

	var keybinds []border.Keybind
	if focused {
		keybinds = []border.Keybind{
			{Key: "enter", Label: " open"},
			{Key: "r", Label: "efresh"},
		}
	}

	empty := styles.TextDimStyle.Render(p.Placeholder)
	if p.Placeholder == logbrowser.MsgListError {
		empty = lipgloss.NewStyle().Foreground(styles.StatusError).Render(p.Placeholder)
	}
	content := b.lists[pane].Render(empty, func(idx int, cursor bool) string {
		name := p.Files[idx]
		marker := "  "
		if b.browser.IsActive(cat, name) {
			marker = "▸ "
		}
		line := text.Truncate(marker+name, innerW)
		switch {
		case cursor && focused:
			return styles.SelectedRowStyle.Width(innerW).Render(line)
		case b.browser.IsActive(cat, name):
			return styles.TitleStyle.Render(line)
		default:
			return styles.TextPrimaryStyle.Render(line)
		}
	})
	return border.RenderPanel(cat.Title(), content, keybinds, b.listWidth, height, focused)
}

func (b LogBrowser) renderContent() string {
	focused := b.focused && b.pane == paneContent
	title := "Log Content"
	if b.browser.Filename != "" {
		title += ": " + b.browser.Filename
	}

	var keybinds []border.Keybind
	if focused {
		keybinds = []border.Keybind{
			{Key: "G", Label: "bottom"},
			{Key: "g", Label: "g top"},
		}
	}

	content := b.content.View()
	if b.browser.Body == logbrowser.MsgContentError {
		content = lipgloss.NewStyle().Foreground(styles.StatusError).Render(b.browser.Body)
	}
	return border.RenderPanel(title, content, keybinds, b.contentWidth, b.height, focused)
}
