// Package logbrowser is the view model for browsing archived log files.
package logbrowser

import (
	"github.com/justinpbarnett/coupontop/internal/api"
)

type Category string

const (
	CategoryLog    Category = "log"
	CategoryCoupon Category = "coupon"
)

// Categories lists the panels in display order.
var Categories = []Category{CategoryLog, CategoryCoupon}

func (c Category) Title() string {
	if c == CategoryCoupon {
		return "Coupon Logs"
	}
	return "Application Logs"
}

const (
	MsgNoLogs       = "No logs found."
	MsgListError    = "Error loading logs."
	MsgContentError = "Error loading log file."
	MsgPickFile     = "Select a log file to view its content."
	MsgLoading      = "Loading..."
)

// Panel is one category's list. Placeholder is set when Files is empty.
type Panel struct {
	Category    Category
	Files       []string
	Placeholder string
}

// Request asks for one file's content. Token identifies it when the
// response comes back.
type Request struct {
	Category Category
	File     string
	Token    uint64
}

// Browser holds the listing, the active entry and the content pane. It is
// not safe for concurrent use; the UI loop owns it.
type Browser struct {
	panels map[Category]*Panel

	activeCat  Category
	activeFile string

	token    uint64
	Filename string
	Body     string
}

func New() *Browser {
	b := &Browser{panels: make(map[Category]*Panel), Body: MsgPickFile}
	for _, c := range Categories {
		b.panels[c] = &Panel{Category: c, Placeholder: MsgLoading}
	}
	return b
}

func (b *Browser) Panel(c Category) Panel {
	if p, ok := b.panels[c]; ok {
		return *p
	}
	return Panel{Category: c, Placeholder: MsgNoLogs}
}

// ApplyListing fills both panels. File order is kept as the server sent it.
func (b *Browser) ApplyListing(l api.LogListing) {
	b.setPanel(CategoryLog, l.Logs)
	b.setPanel(CategoryCoupon, l.CouponLogs)
}

func (b *Browser) setPanel(c Category, files []string) {
	p := &Panel{Category: c, Files: append([]string(nil), files...)}
	if len(p.Files) == 0 {
		p.Placeholder = MsgNoLogs
	}
	b.panels[c] = p
}

// ApplyListingError puts the error placeholder in both panels.
func (b *Browser) ApplyListingError(error) {
	for _, c := range Categories {
		b.panels[c] = &Panel{Category: c, Placeholder: MsgListError}
	}
}

// Select makes (c, file) the only active entry and returns the request to
// issue for its content. Any earlier request becomes stale.
func (b *Browser) Select(c Category, file string) Request {
	b.activeCat = c
	b.activeFile = file
	b.token++
	b.Filename = file
	b.Body = MsgLoading
	return Request{Category: c, File: file, Token: b.token}
}

// Active returns the selected entry, if any.
func (b *Browser) Active() (Category, string, bool) {
	if b.activeFile == "" {
		return "", "", false
	}
	return b.activeCat, b.activeFile, true
}

func (b *Browser) IsActive(c Category, file string) bool {
	return b.activeFile != "" && b.activeCat == c && b.activeFile == file
}

// ApplyContent shows content if token belongs to the latest request. It
// reports whether the content was applied.
func (b *Browser) ApplyContent(token uint64, content api.LogContent) bool {
	if token != b.token {
		return false
	}
	b.Filename = content.Filename
	b.Body = content.Content
	return true
}

func (b *Browser) ApplyContentError(token uint64, _ error) bool {
	if token != b.token {
		return false
	}
	b.Body = MsgContentError
	return true
}
