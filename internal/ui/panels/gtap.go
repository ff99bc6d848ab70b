package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg is sent when a "gg" double-tap window expires. ID
// identifies which panel's timer fired.
type GTimerExpiredMsg struct{ ID int }

const (
	gTapIDLiveLog = iota + 1
	gTapIDUIDs
	gTapIDCoupons
	gTapIDLogFiles
	gTapIDCouponFiles
	gTapIDContent
	gTapIDCards
)

// DoubleTap tracks state for the "gg" jump-to-top binding.
type DoubleTap struct {
	Pending bool
	id      int
}

func NewDoubleTap(id int) DoubleTap {
	return DoubleTap{id: id}
}

// Check handles a "g" press. It reports fired on the second tap and
// otherwise returns a timer cmd that closes the window.
func (dt *DoubleTap) Check() (fired bool, cmd tea.Cmd) {
	if dt.Pending {
		dt.Pending = false
		return true, nil
	}
	dt.Pending = true
	id := dt.id
	return false, tea.Tick(gTimeout, func(time.Time) tea.Msg {
		return GTimerExpiredMsg{ID: id}
	})
}

// HandleExpiry clears Pending when msg belongs to this panel.
func (dt *DoubleTap) HandleExpiry(msg GTimerExpiredMsg) bool {
	if msg.ID == dt.id {
		dt.Pending = false
		return true
	}
	return false
}
