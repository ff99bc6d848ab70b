package layout

// Layout holds the computed cell dimensions for every panel.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	TabBarWidth    int
	StatusBarWidth int

	// Body is everything between the tab bar and the status bar.
	BodyWidth  int
	BodyHeight int

	// Control tab: UID list | coupon list
	UIDListWidth    int
	CouponListWidth int

	// Log browser tab: two stacked file lists | content
	FileListWidth     int
	LogFileListHeight int
	CouponListHeight  int
	ContentWidth      int
}

const (
	MinWidth  = 80
	MinHeight = 20

	ControlLeftWeight = 0.50
	FileListWeight    = 0.30
)

// Calculate computes panel dimensions from terminal size. One row goes to
// the tab bar and one to the status bar. Returns TooSmall under the
// minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}
	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	l.TabBarWidth = termWidth
	l.StatusBarWidth = termWidth
	l.BodyWidth = termWidth
	l.BodyHeight = termHeight - 2

	l.UIDListWidth = int(float64(termWidth) * ControlLeftWeight)
	l.CouponListWidth = termWidth - l.UIDListWidth

	l.FileListWidth = int(float64(termWidth) * FileListWeight)
	l.ContentWidth = termWidth - l.FileListWidth
	l.LogFileListHeight = l.BodyHeight / 2
	l.CouponListHeight = l.BodyHeight - l.LogFileListHeight

	return l
}
