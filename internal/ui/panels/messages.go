package panels

import (
	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/control"
	"github.com/justinpbarnett/coupontop/internal/logbrowser"
	"github.com/justinpbarnett/coupontop/internal/monitor"
	"github.com/justinpbarnett/coupontop/internal/stream"
)

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// YankMsg asks the app to copy Text to the clipboard.
type YankMsg struct {
	Text string
}

// CatalogLoadedMsg carries the UID and coupon lists read from disk.
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// RunRequestMsg is sent by the control panel when r or F is pressed.
type RunRequestMsg struct {
	Kind    control.Kind
	UIDs    []string
	Coupons []string
}

// EditListMsg opens the raw text editor for one list.
type EditListMsg struct {
	List List
	Raw  string
}

// SaveListMsg is sent by the editor on ctrl+s.
type SaveListMsg struct {
	List    List
	Content string
}

// DeleteItemMsg asks for confirmation before deleting one entry.
type DeleteItemMsg struct {
	List  List
	Value string
}

// ConfirmedMsg is sent by the confirm modal when the operator says yes.
type ConfirmedMsg struct {
	Action any
}

// ActionDoneMsg reports a finished run, save or delete.
type ActionDoneMsg struct {
	Outcome control.Outcome
	Err     error
}

// StreamUpdatedMsg means new lines are in the shared history.
type StreamUpdatedMsg struct{}

// StreamStateMsg reports a live log connection change.
type StreamStateMsg struct {
	State stream.State
	Err   error
}

// StatusMsg carries one /status poll result.
type StatusMsg struct {
	Update monitor.Update
}

// LogListingMsg carries the /api/logs result.
type LogListingMsg struct {
	Listing api.LogListing
	Err     error
}

// LogContentRequestMsg is sent by the browser panel when a file is opened.
type LogContentRequestMsg struct {
	Request logbrowser.Request
}

// LogContentMsg carries the /api/log-content result for one request.
type LogContentMsg struct {
	Token   uint64
	Content api.LogContent
	Err     error
}

// RefreshLogsMsg asks the app to reload the log listing.
type RefreshLogsMsg struct{}
