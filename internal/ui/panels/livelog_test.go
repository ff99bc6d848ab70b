package panels

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/justinpbarnett/coupontop/internal/stream"
)

func newTestLiveLog(lines ...string) (LiveLog, *stream.History) {
	h := stream.NewHistory(100)
	for _, l := range lines {
		h.Append(l)
	}
	l := NewLiveLog(h)
	l.SetSize(80, 10)
	return l, h
}

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("line %02d", i)
	}
	return out
}

func TestLiveLogWaitingPlaceholder(t *testing.T) {
	l, _ := newTestLiveLog()
	if !strings.Contains(l.View(), msgWaitingForLogs) {
		t.Error("expected waiting placeholder on empty history")
	}
}

func TestLiveLogFollowsTail(t *testing.T) {
	l, h := newTestLiveLog(numbered(30)...)
	h.Append("newest entry")
	l, _ = l.Update(StreamUpdatedMsg{})

	view := l.View()
	if !strings.Contains(view, "newest entry") {
		t.Error("expected newest line visible while following")
	}
	if strings.Contains(view, "line 00") {
		t.Error("expected oldest line scrolled out")
	}
}

func TestLiveLogScrollUpPausesFollow(t *testing.T) {
	l, h := newTestLiveLog(numbered(30)...)
	l, _ = l.Update(keyMsg("k"))
	if l.Following() {
		t.Fatal("expected follow off after scrolling up")
	}
	if !strings.Contains(l.View(), "(paused)") {
		t.Error("expected paused marker in title")
	}

	h.Append("arrived while paused")
	l, _ = l.Update(StreamUpdatedMsg{})
	if strings.Contains(l.View(), "arrived while paused") {
		t.Error("paused view should not jump to the new line")
	}

	l, _ = l.Update(keyMsg("G"))
	if !l.Following() {
		t.Fatal("expected G to resume follow")
	}
	if !strings.Contains(l.View(), "arrived while paused") {
		t.Error("expected new line after resuming")
	}
}

func TestLiveLogGGJumpsToTop(t *testing.T) {
	l, _ := newTestLiveLog(numbered(30)...)
	l, _ = l.Update(keyMsg("g"))
	l, _ = l.Update(keyMsg("g"))
	if !strings.Contains(l.View(), "line 00") {
		t.Error("expected first line after gg")
	}
}

func TestLiveLogHighlightsMarkers(t *testing.T) {
	l, _ := newTestLiveLog("[Thread-3] UID: 111_main applying SPRING24")
	view := l.View()
	if !strings.Contains(view, "[Thread-3]") || !strings.Contains(view, "UID: 111_main") {
		t.Errorf("expected markers kept in view, got %q", view)
	}
}

func TestLiveLogConnectionState(t *testing.T) {
	l, _ := newTestLiveLog()
	if !strings.Contains(l.View(), "connecting") {
		t.Error("expected connecting state initially")
	}
	l, _ = l.Update(StreamStateMsg{State: stream.StateConnected})
	if !strings.Contains(l.View(), "live") {
		t.Error("expected live state")
	}
	l, _ = l.Update(StreamStateMsg{State: stream.StateDisconnected})
	if !strings.Contains(l.View(), "reconnecting") {
		t.Error("expected reconnecting state")
	}
}

func TestLiveLogSearch(t *testing.T) {
	l, _ := newTestLiveLog(append(numbered(30), "needle here")...)
	l, _ = l.Update(keyMsg("/"))
	if !l.ConsumesKeys() {
		t.Fatal("expected search to consume keys")
	}
	for _, r := range "needle" {
		l, _ = l.Update(keyMsg(string(r)))
	}
	l, _ = l.Update(keyMsg("enter"))

	if !strings.Contains(l.View(), "Match 1/1") {
		t.Error("expected one match")
	}

	l, _ = l.Update(keyMsg("esc"))
	if l.ConsumesKeys() {
		t.Error("expected search cleared on esc")
	}
}

func TestLiveLogClear(t *testing.T) {
	l, h := newTestLiveLog(numbered(5)...)
	l, _ = l.Update(keyMsg("c"))
	if h.Len() != 0 {
		t.Errorf("expected history reset, got %d lines", h.Len())
	}
	if !strings.Contains(l.View(), msgWaitingForLogs) {
		t.Error("expected placeholder after clear")
	}
}

func TestLiveLogStripsEscapes(t *testing.T) {
	l, _ := newTestLiveLog("\x1b[31mred text\x1b[0m")
	if strings.Contains(l.View(), "\x1b[31m") {
		t.Error("expected server escape sequences stripped")
	}
}

func TestLiveLogRenders(t *testing.T) {
	l, h := newTestLiveLog()

	tm := teatest.NewTestModel(t, wrapLiveLog(&l), teatest.WithInitialTermSize(80, 10))
	h.Append("UID: 222_alt redeemed")
	tm.Send(StreamUpdatedMsg{})
	waitForContains(t, tm, "redeemed")
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
