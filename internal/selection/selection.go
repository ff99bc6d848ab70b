// Package selection models a named multi-select checkbox group.
package selection

// Group is an ordered list of items with a checked flag per item. Items are
// unique; duplicates passed to New or Replace are collapsed.
type Group struct {
	name    string
	items   []string
	checked map[string]bool
}

func New(name string, items []string) *Group {
	g := &Group{name: name, checked: make(map[string]bool)}
	g.items = dedupe(items)
	return g
}

func (g *Group) Name() string { return g.name }
func (g *Group) Len() int     { return len(g.items) }

// Items returns a copy of the item list.
func (g *Group) Items() []string {
	out := make([]string, len(g.items))
	copy(out, g.items)
	return out
}

func (g *Group) Has(item string) bool {
	for _, it := range g.items {
		if it == item {
			return true
		}
	}
	return false
}

func (g *Group) Checked(item string) bool { return g.checked[item] }

// Toggle flips item. Unknown items are ignored.
func (g *Group) Toggle(item string) {
	if !g.Has(item) {
		return
	}
	g.checked[item] = !g.checked[item]
}

func (g *Group) Set(item string, checked bool) {
	if !g.Has(item) {
		return
	}
	if checked {
		g.checked[item] = true
	} else {
		delete(g.checked, item)
	}
}

func (g *Group) SelectAll() {
	for _, it := range g.items {
		g.checked[it] = true
	}
}

func (g *Group) DeselectAll() {
	g.checked = make(map[string]bool)
}

// Selected returns the checked items in list order. The slice is never nil
// so it encodes as a JSON array.
func (g *Group) Selected() []string {
	out := make([]string, 0, len(g.checked))
	for _, it := range g.items {
		if g.checked[it] {
			out = append(out, it)
		}
	}
	return out
}

func (g *Group) CheckedCount() int {
	n := 0
	for _, it := range g.items {
		if g.checked[it] {
			n++
		}
	}
	return n
}

// Replace swaps the item list, keeping checks on items that survive.
func (g *Group) Replace(items []string) {
	g.items = dedupe(items)
	kept := make(map[string]bool, len(g.checked))
	for _, it := range g.items {
		if g.checked[it] {
			kept[it] = true
		}
	}
	g.checked = kept
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
