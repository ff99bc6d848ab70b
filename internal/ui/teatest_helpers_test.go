package ui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/spf13/afero"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/config"
	"github.com/justinpbarnett/coupontop/internal/control"
	"github.com/justinpbarnett/coupontop/internal/ui/panels"
)

const waitDuration = 3 * time.Second

const (
	testUIDs    = "111 #main\n222 #alt\n333 #spare\n"
	testCoupons = "SPRING24\nWELCOME10\n"
)

// fakeBackend stands in for the backend client. Every call is recorded as
// "method:arg".
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	result  api.Result
	err     error
	listing api.LogListing
	content api.LogContent
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{result: api.Result{Status: api.StatusSuccess, Message: "OK"}}
}

func (f *fakeBackend) record(call string) (api.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.result, f.err
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Run(_ context.Context, req api.RunRequest) (api.Result, error) {
	return f.record("run")
}

func (f *fakeBackend) ForceRun(_ context.Context, req api.RunRequest) (api.Result, error) {
	return f.record("force_run")
}

func (f *fakeBackend) SaveUIDs(_ context.Context, content string) (api.Result, error) {
	return f.record("save_uids")
}

func (f *fakeBackend) SaveCoupons(_ context.Context, content string) (api.Result, error) {
	return f.record("save_coupons")
}

func (f *fakeBackend) DeleteCoupon(_ context.Context, name string) (api.Result, error) {
	return f.record("delete_coupon:" + name)
}

func (f *fakeBackend) DeleteUID(_ context.Context, uid string) (api.Result, error) {
	return f.record("delete_uid:" + uid)
}

func (f *fakeBackend) ListLogs(context.Context) (api.LogListing, error) {
	_, err := f.record("logs")
	return f.listing, err
}

func (f *fakeBackend) LogContent(_ context.Context, category, file string) (api.LogContent, error) {
	_, err := f.record("log_content:" + category + "/" + file)
	return f.content, err
}

var errBackendDown = errors.New("connection refused")

// newTestApp builds an App over an in-memory catalog and a fake backend,
// sized and with its Init messages applied.
func newTestApp(t *testing.T, fb *fakeBackend) (App, afero.Fs) {
	t.Helper()
	cfg := config.DefaultConfig()
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, cfg.Data.UIDsFile, []byte(testUIDs), 0o644)
	afero.WriteFile(fs, cfg.Data.CouponsFile, []byte(testCoupons), 0o644)

	ctl := &control.Controller{
		API:         fb,
		Fs:          fs,
		UIDsFile:    cfg.Data.UIDsFile,
		CouponsFile: cfg.Data.CouponsFile,
	}
	a := NewApp(context.Background(), Options{
		Config:     &cfg,
		Controller: ctl,
		Logs:       fb,
		Fs:         fs,
	})
	a = drive(a, tea.WindowSizeMsg{Width: 120, Height: 40})
	for _, msg := range collect(a.Init()) {
		a = drive(a, msg)
	}
	return a, fs
}

// drive feeds msg to the app, then every message its commands produce.
// Timers and quit are dropped.
func drive(a App, msg tea.Msg) App {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		next, cmd := a.Update(m)
		a = next.(App)
		queue = append(queue, collect(cmd)...)
	}
	return a
}

// collect runs cmd and returns what it produced within a short window.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		case nil, spinnerTickMsg, panels.ClearFlashMsg, panels.GTimerExpiredMsg, tea.QuitMsg:
			return nil
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		a = drive(a, keyMsg(k))
	}
	return a
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// appAdapter wraps the App so teatest skips Init, which would hit the
// fake backend from the program goroutine.
type appAdapter struct {
	app App
}

func (a *appAdapter) Init() tea.Cmd { return nil }

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}
