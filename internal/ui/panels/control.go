package panels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/control"
	"github.com/justinpbarnett/coupontop/internal/selection"
	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

// List names one of the two editable lists.
type List int

const (
	ListUIDs List = iota
	ListCoupons
)

func (l List) String() string {
	if l == ListCoupons {
		return "Coupons"
	}
	return "UIDs"
}

// ControlPanel is the run-control tab: a UID checklist beside a coupon
// checklist.
type ControlPanel struct {
	cat     *catalog.Catalog
	loadErr string

	uids    *selection.Group
	coupons *selection.Group
	lists   [2]itemList
	active  List

	leftWidth  int
	rightWidth int
	height     int
	focused    bool
}

func NewControlPanel() ControlPanel {
	return ControlPanel{
		cat:     &catalog.Catalog{},
		uids:    selection.New("uids", nil),
		coupons: selection.New("coupons", nil),
		lists:   [2]itemList{newItemList(gTapIDUIDs), newItemList(gTapIDCoupons)},
		focused: true,
	}
}

// SetCatalog swaps in freshly loaded lists. Checks on entries that still
// exist are kept.
func (c *ControlPanel) SetCatalog(cat *catalog.Catalog) {
	c.cat = cat
	c.loadErr = ""

	ids := cat.UIDIDs()
	c.uids.Replace(ids)
	labels := make([]string, len(cat.UIDs))
	for i, u := range cat.UIDs {
		labels[i] = u.Label()
	}
	c.lists[ListUIDs].SetLabels(labels)

	c.coupons.Replace(cat.Coupons)
	c.lists[ListCoupons].SetLabels(cat.Coupons)
}

func (c *ControlPanel) SetLoadError(err error) {
	c.loadErr = err.Error()
}

func (c *ControlPanel) SetSize(leftW, rightW, h int) {
	c.leftWidth = leftW
	c.rightWidth = rightW
	c.height = h
	for i := range c.lists {
		c.lists[i].SetHeight(h - 2)
	}
}

func (c *ControlPanel) SetFocused(f bool) { c.focused = f }

// ConsumesKeys reports whether a filter input is open.
func (c ControlPanel) ConsumesKeys() bool {
	return c.lists[c.active].Filtering()
}

func (c ControlPanel) Active() List { return c.active }

// SelectedUIDs returns the checked run keys in file order.
func (c ControlPanel) SelectedUIDs() []string { return c.uids.Selected() }

func (c ControlPanel) SelectedCoupons() []string { return c.coupons.Selected() }

func (c ControlPanel) group(l List) *selection.Group {
	if l == ListCoupons {
		return c.coupons
	}
	return c.uids
}

// currentItem returns the selection key and the delete value of the row
// under the cursor. For UIDs the key is the run key and the delete value
// is the bare uid.
func (c ControlPanel) currentItem() (key, value string, ok bool) {
	idx, ok := c.lists[c.active].CurrentIndex()
	if !ok {
		return "", "", false
	}
	if c.active == ListCoupons {
		name := c.cat.Coupons[idx]
		return name, name, true
	}
	u := c.cat.UIDs[idx]
	return u.ID, u.UID, true
}

func (c ControlPanel) Update(msg tea.Msg) (ControlPanel, tea.Cmd) {
	if m, ok := msg.(GTimerExpiredMsg); ok {
		for i := range c.lists {
			c.lists[i].Update(m)
		}
		return c, nil
	}

	if handled, cmd := c.lists[c.active].Update(msg); handled {
		return c, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "h", "left":
		c.active = ListUIDs
	case "l", "right":
		c.active = ListCoupons
	case " ", "x":
		if k, _, ok := c.currentItem(); ok {
			c.group(c.active).Toggle(k)
		}
	case "a":
		c.group(c.active).SelectAll()
	case "A":
		c.group(c.active).DeselectAll()
	case "r":
		return c, c.runCmd(control.KindRun)
	case "F":
		return c, c.runCmd(control.KindForceRun)
	case "e":
		list, raw := c.active, c.cat.UIDsRaw
		if list == ListCoupons {
			raw = c.cat.CouponsRaw
		}
		return c, func() tea.Msg { return EditListMsg{List: list, Raw: raw} }
	case "d":
		if _, value, ok := c.currentItem(); ok {
			list := c.active
			return c, func() tea.Msg { return DeleteItemMsg{List: list, Value: value} }
		}
	}
	return c, nil
}

func (c ControlPanel) runCmd(kind control.Kind) tea.Cmd {
	uids, coupons := c.uids.Selected(), c.coupons.Selected()
	return func() tea.Msg {
		return RunRequestMsg{Kind: kind, UIDs: uids, Coupons: coupons}
	}
}

func (c ControlPanel) View() string {
	left := c.renderList(ListUIDs, c.leftWidth)
	right := c.renderList(ListCoupons, c.rightWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (c ControlPanel) renderList(l List, width int) string {
	g := c.group(l)
	focused := c.focused && c.active == l
	title := fmt.Sprintf("%s (%d/%d selected)", l, g.CheckedCount(), g.Len())

	var keybinds []border.Keybind
	if focused {
		keybinds = []border.Keybind{
			{Key: "space", Label: " toggle"},
			{Key: "a", Label: "ll"},
			{Key: "A", Label: " none"},
			{Key: "r", Label: "un"},
			{Key: "F", Label: "orce"},
			{Key: "e", Label: "dit"},
			{Key: "d", Label: "elete"},
		}
	}

	innerW := max(width-2, 0)
	empty := "No " + l.String() + " found. Press e to add some."
	if c.loadErr != "" {
		empty = lipgloss.NewStyle().Foreground(styles.StatusError).Render(c.loadErr)
	}

	content := c.lists[l].Render(empty, func(idx int, cursor bool) string {
		var key, label string
		if l == ListCoupons {
			key, label = c.cat.Coupons[idx], c.cat.Coupons[idx]
		} else {
			u := c.cat.UIDs[idx]
			key, label = u.ID, u.Label()
		}
		checked := g.Checked(key)
		line := text.Truncate(text.Checkbox(checked)+" "+label, innerW)
		switch {
		case cursor && focused:
			return styles.SelectedRowStyle.Width(innerW).Render(line)
		case checked:
			return styles.CheckedStyle.Render(line)
		default:
			return styles.TextPrimaryStyle.Render(line)
		}
	})

	return border.RenderPanel(title, content, keybinds, width, c.height, focused)
}
