package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/coupontop/internal/ui/styles"
)

// itemList is a scrollable cursor over labelled rows with an optional
// "/" filter. Panels own one per list and render rows themselves.
type itemList struct {
	labels   []string
	filtered []int
	selected int
	offset   int
	height   int

	filterActive bool
	filterText   string
	filterInput  textinput.Model
	gTap         DoubleTap
}

func newItemList(tapID int) itemList {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 64
	return itemList{filterInput: ti, gTap: NewDoubleTap(tapID)}
}

// SetLabels replaces the rows, keeping the cursor on the same label when
// it still exists.
func (l *itemList) SetLabels(labels []string) {
	current, ok := l.Current()
	l.labels = labels
	l.applyFilter()
	if ok {
		for i, idx := range l.filtered {
			if l.labels[idx] == current {
				l.selected = i
				break
			}
		}
	}
	l.clamp()
}

func (l *itemList) SetHeight(h int) {
	l.height = h
	l.clamp()
}

// Current returns the label under the cursor.
func (l itemList) Current() (string, bool) {
	idx, ok := l.CurrentIndex()
	if !ok {
		return "", false
	}
	return l.labels[idx], true
}

// CurrentIndex returns the index into the full label list.
func (l itemList) CurrentIndex() (int, bool) {
	if len(l.filtered) == 0 || l.selected >= len(l.filtered) {
		return 0, false
	}
	return l.filtered[l.selected], true
}

func (l itemList) Len() int { return len(l.filtered) }

func (l itemList) Filtering() bool { return l.filterActive }

// Update handles navigation keys. It reports whether the key was consumed.
func (l *itemList) Update(msg tea.Msg) (bool, tea.Cmd) {
	if m, ok := msg.(GTimerExpiredMsg); ok {
		return l.gTap.HandleExpiry(m), nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	if l.filterActive {
		return true, l.updateFilter(key)
	}

	switch key.String() {
	case "/":
		l.filterActive = true
		return true, l.filterInput.Focus()
	case "j", "down":
		if l.selected < len(l.filtered)-1 {
			l.selected++
			l.scrollToSelection()
		}
	case "k", "up":
		if l.selected > 0 {
			l.selected--
			l.scrollToSelection()
		}
	case "G":
		l.selected = max(len(l.filtered)-1, 0)
		l.scrollToSelection()
	case "g":
		fired, cmd := l.gTap.Check()
		if fired {
			l.selected = 0
			l.scrollToSelection()
		}
		return true, cmd
	default:
		return false, nil
	}
	return true, nil
}

func (l *itemList) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			l.filterText = ""
			l.filterInput.SetValue("")
		}
		l.filterActive = false
		l.filterInput.Blur()
		l.applyFilter()
		l.clamp()
		return nil
	}

	var cmd tea.Cmd
	l.filterInput, cmd = l.filterInput.Update(msg)
	l.filterText = l.filterInput.Value()
	l.applyFilter()
	l.clamp()
	return cmd
}

func (l *itemList) applyFilter() {
	query := strings.ToLower(l.filterText)
	filtered := make([]int, 0, len(l.labels))
	for i, label := range l.labels {
		if query == "" || strings.Contains(strings.ToLower(label), query) {
			filtered = append(filtered, i)
		}
	}
	l.filtered = filtered
}

func (l *itemList) clamp() {
	if len(l.filtered) == 0 {
		l.selected = 0
		l.offset = 0
		return
	}
	if l.selected >= len(l.filtered) {
		l.selected = len(l.filtered) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.scrollToSelection()
}

func (l *itemList) scrollToSelection() {
	visible := l.visibleRows()
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+visible {
		l.offset = l.selected - visible + 1
	}
	l.offset = min(l.offset, max(len(l.filtered)-visible, 0))
	l.offset = max(l.offset, 0)
}

// visibleRows is the number of item rows that fit, after the filter bar
// and scroll indicators take their share.
func (l itemList) visibleRows() int {
	rows := l.height
	if l.filterActive || l.filterText != "" {
		rows--
	}
	if l.offset > 0 {
		rows--
	}
	if l.offset+rows < len(l.filtered) {
		rows--
	}
	return max(rows, 1)
}

// Render draws the visible rows. row renders one item given its index in
// the full label list and whether the cursor is on it.
func (l itemList) Render(empty string, row func(idx int, cursor bool) string) string {
	var b strings.Builder
	if l.filterActive || l.filterText != "" {
		b.WriteString("/ " + l.filterInput.View())
		if len(l.filtered) == 0 {
			b.WriteString("\n" + styles.TextDimStyle.Render("No matches."))
			return b.String()
		}
		b.WriteString("\n")
	}
	if len(l.filtered) == 0 {
		return empty
	}

	if l.offset > 0 {
		b.WriteString(styles.TextDimStyle.Render("  ▲") + "\n")
	}
	end := min(l.offset+l.visibleRows(), len(l.filtered))
	for i := l.offset; i < end; i++ {
		b.WriteString(row(l.filtered[i], i == l.selected))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(l.filtered) {
		b.WriteString("\n" + styles.TextDimStyle.Render("  ▼"))
	}
	return b.String()
}
