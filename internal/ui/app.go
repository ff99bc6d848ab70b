package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/config"
	"github.com/justinpbarnett/coupontop/internal/control"
	"github.com/justinpbarnett/coupontop/internal/logging"
	"github.com/justinpbarnett/coupontop/internal/stream"
	"github.com/justinpbarnett/coupontop/internal/ui/border"
	"github.com/justinpbarnett/coupontop/internal/ui/clipboard"
	"github.com/justinpbarnett/coupontop/internal/ui/layout"
	"github.com/justinpbarnett/coupontop/internal/ui/panels"
	"github.com/justinpbarnett/coupontop/internal/ui/styles"
)

const (
	tabControl = iota
	tabLiveLog
	tabMonitor
	tabLogBrowser
	numTabs
)

var tabNames = []string{"Control", "Live Logs", "Monitoring", "Log Browser"}

const spinnerInterval = 100 * time.Millisecond

// LogAPI is the part of the backend client the log browser needs.
type LogAPI interface {
	ListLogs(ctx context.Context) (api.LogListing, error)
	LogContent(ctx context.Context, category, file string) (api.LogContent, error)
}

// Options carries everything the App talks to.
type Options struct {
	Config     *config.Config
	Controller *control.Controller
	Logs       LogAPI
	Fs         afero.Fs
	History    *stream.History
	Logger     logrus.FieldLogger
}

type App struct {
	opts Options
	ctx  context.Context
	log  *logrus.Entry

	width     int
	height    int
	layout    layout.Layout
	activeTab int

	control   panels.ControlPanel
	liveLog   panels.LiveLog
	monitor   panels.MonitorPanel
	browser   panels.LogBrowser
	statusBar panels.StatusBar

	helpOverlay *panels.HelpOverlay
	editor      *panels.EditorModal
	confirm     *panels.ConfirmModal

	pending int
	keys    KeyMap
	ready   bool
}

// NewApp builds the model. ctx bounds every request the App issues.
func NewApp(ctx context.Context, opts Options) App {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.History == nil {
		opts.History = stream.NewHistory(opts.Config.Stream.HistoryLines)
	}

	styles.ApplyTheme(opts.Config.UI.Theme)

	ll := panels.NewLiveLog(opts.History)
	ll.SetScrollSpeed(opts.Config.UI.LogScrollSpeed)
	mon := panels.NewMonitorPanel(opts.Config.Hub.URL)
	mon.SetPreviewWidth(opts.Config.UI.PreviewWidth)

	a := App{
		opts:      opts,
		ctx:       ctx,
		log:       logging.Component(opts.Logger, "ui"),
		control:   panels.NewControlPanel(),
		liveLog:   ll,
		monitor:   mon,
		browser:   panels.NewLogBrowser(),
		statusBar: panels.NewStatusBar(opts.Config.Server.URL),
		keys:      DefaultKeyMap(),
	}
	a.updateFocusState()
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalog(), a.listLogs())
}

func (a App) ActiveTab() int { return a.activeTab }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case panels.CloseModalMsg:
		a.helpOverlay = nil
		a.editor = nil
		a.confirm = nil
		return a, nil

	case panels.ClearFlashMsg:
		if !a.statusBar.FlashActive() {
			a.statusBar.ClearFlash()
		}
		return a, nil

	case spinnerTickMsg:
		if a.pending == 0 {
			return a, nil
		}
		a.statusBar.Tick()
		return a, spinnerTick()

	case panels.GTimerExpiredMsg:
		a.control, _ = a.control.Update(msg)
		a.liveLog, _ = a.liveLog.Update(msg)
		a.monitor, _ = a.monitor.Update(msg)
		a.browser, _ = a.browser.Update(msg)
		return a, nil

	case panels.CatalogLoadedMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("could not load catalog")
			a.control.SetLoadError(msg.Err)
			return a, nil
		}
		a.control.SetCatalog(msg.Catalog)
		return a, nil

	case panels.RunRequestMsg:
		if err := control.Validate(msg.Kind, msg.UIDs, msg.Coupons); err != nil {
			return a, a.flash(err.Error(), panels.FlashWarning)
		}
		ctx, ctl := a.ctx, a.opts.Controller
		return a, tea.Batch(a.startBusy(), func() tea.Msg {
			out, err := ctl.Trigger(ctx, msg.Kind, msg.UIDs, msg.Coupons)
			return panels.ActionDoneMsg{Outcome: out, Err: err}
		})

	case panels.EditListMsg:
		a.editor = panels.NewEditorModal(msg.List, msg.Raw, a.width, a.height)
		return a, a.editor.Init()

	case panels.SaveListMsg:
		a.editor = nil
		ctx, ctl := a.ctx, a.opts.Controller
		return a, tea.Batch(a.startBusy(), func() tea.Msg {
			var out control.Outcome
			if msg.List == panels.ListCoupons {
				out = ctl.SaveCoupons(ctx, msg.Content)
			} else {
				out = ctl.SaveUIDs(ctx, msg.Content)
			}
			return panels.ActionDoneMsg{Outcome: out}
		})

	case panels.DeleteItemMsg:
		prompt := control.ConfirmDeleteUID(msg.Value)
		if msg.List == panels.ListCoupons {
			prompt = control.ConfirmDeleteCoupon(msg.Value)
		}
		a.confirm = panels.NewConfirmModal(prompt, msg)
		return a, nil

	case panels.ConfirmedMsg:
		a.confirm = nil
		del, ok := msg.Action.(panels.DeleteItemMsg)
		if !ok {
			return a, nil
		}
		ctx, ctl := a.ctx, a.opts.Controller
		return a, tea.Batch(a.startBusy(), func() tea.Msg {
			if del.List == panels.ListCoupons {
				return panels.ActionDoneMsg{Outcome: ctl.DeleteCoupon(ctx, del.Value)}
			}
			return panels.ActionDoneMsg{Outcome: ctl.DeleteUID(ctx, del.Value)}
		})

	case panels.ActionDoneMsg:
		return a.finishAction(msg)

	case panels.StreamUpdatedMsg:
		a.liveLog, _ = a.liveLog.Update(msg)
		return a, nil

	case panels.StreamStateMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).WithField("state", msg.State.String()).Debug("stream state changed")
		}
		a.liveLog, _ = a.liveLog.Update(msg)
		a.statusBar.SetStreamState(msg.State)
		return a, nil

	case panels.StatusMsg:
		a.monitor, _ = a.monitor.Update(msg)
		a.statusBar.SetSessions(a.monitor.ActiveCount())
		return a, nil

	case panels.RefreshLogsMsg:
		return a, a.listLogs()

	case panels.LogListingMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("could not list logs")
		}
		a.browser, _ = a.browser.Update(msg)
		return a, nil

	case panels.LogContentRequestMsg:
		return a, a.fetchContent(msg)

	case panels.LogContentMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).Warn("could not load log file")
		}
		a.browser, _ = a.browser.Update(msg)
		return a, nil

	case panels.YankMsg:
		if err := clipboard.Write(msg.Text); err != nil {
			a.log.WithError(err).Warn("clipboard write failed")
			return a, a.flash("Copy failed: "+err.Error(), panels.FlashError)
		}
		return a, a.flash("Copied "+msg.Text, panels.FlashInfo)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.editor != nil {
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" && a.editor == nil {
		return a, tea.Quit
	}

	switch {
	case a.confirm != nil:
		var cmd tea.Cmd
		a.confirm, cmd = a.confirm.Update(msg)
		return a, cmd
	case a.editor != nil:
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	case a.helpOverlay != nil:
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	if a.activeConsumesKeys() {
		return a.routeKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Control):
		a.setTab(tabControl)
		return a, nil
	case key.Matches(msg, a.keys.LiveLogs):
		a.setTab(tabLiveLog)
		return a, nil
	case key.Matches(msg, a.keys.Monitoring):
		a.setTab(tabMonitor)
		return a, nil
	case key.Matches(msg, a.keys.LogBrowser):
		a.setTab(tabLogBrowser)
		return a, nil
	case key.Matches(msg, a.keys.NextTab):
		a.setTab((a.activeTab + 1) % numTabs)
		return a, nil
	case key.Matches(msg, a.keys.PrevTab):
		a.setTab((a.activeTab + numTabs - 1) % numTabs)
		return a, nil
	case key.Matches(msg, a.keys.Help):
		a.helpOverlay = panels.NewHelpOverlay()
		return a, nil
	}
	return a.routeKey(msg)
}

func (a App) activeConsumesKeys() bool {
	switch a.activeTab {
	case tabControl:
		return a.control.ConsumesKeys()
	case tabLiveLog:
		return a.liveLog.ConsumesKeys()
	case tabLogBrowser:
		return a.browser.ConsumesKeys()
	}
	return false
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeTab {
	case tabControl:
		a.control, cmd = a.control.Update(msg)
	case tabLiveLog:
		a.liveLog, cmd = a.liveLog.Update(msg)
	case tabMonitor:
		a.monitor, cmd = a.monitor.Update(msg)
	case tabLogBrowser:
		a.browser, cmd = a.browser.Update(msg)
	}
	return a, cmd
}

// finishAction reports a completed run, save or delete and moves on the
// way the outcome asks: to Monitoring after a run, or a catalog reload
// after an edit.
func (a App) finishAction(msg panels.ActionDoneMsg) (tea.Model, tea.Cmd) {
	a.pending = max(a.pending-1, 0)
	a.statusBar.SetBusy(a.pending > 0)

	if msg.Err != nil {
		return a, a.flash(msg.Err.Error(), panels.FlashWarning)
	}

	out := msg.Outcome
	level := panels.FlashError
	text := out.Message
	if out.OK {
		level = panels.FlashSuccess
	}
	if out.Warning != "" {
		level = panels.FlashWarning
		text += " " + out.Warning
	}

	cmds := []tea.Cmd{a.flash(text, level)}
	switch out.Next {
	case control.NextMonitoring:
		a.setTab(tabMonitor)
	case control.NextReload:
		cmds = append(cmds, a.loadCatalog())
	}
	return a, tea.Batch(cmds...)
}

func (a *App) flash(text string, level panels.FlashLevel) tea.Cmd {
	a.statusBar.SetFlashWithLevel(text, level)
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return panels.ClearFlashMsg{}
	})
}

type spinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

// startBusy marks one more request in flight and starts the spinner if it
// was idle.
func (a *App) startBusy() tea.Cmd {
	a.pending++
	a.statusBar.SetBusy(true)
	if a.pending == 1 {
		return spinnerTick()
	}
	return nil
}

func (a *App) setTab(tab int) {
	if tab < 0 || tab >= numTabs {
		return
	}
	a.activeTab = tab
	a.updateFocusState()
}

func (a App) loadCatalog() tea.Cmd {
	fs, data := a.opts.Fs, a.opts.Config.Data
	return func() tea.Msg {
		cat, err := catalog.Load(fs, data.UIDsFile, data.CouponsFile)
		return panels.CatalogLoadedMsg{Catalog: cat, Err: err}
	}
}

func (a App) listLogs() tea.Cmd {
	if a.opts.Logs == nil {
		return nil
	}
	ctx, logs := a.ctx, a.opts.Logs
	return func() tea.Msg {
		listing, err := logs.ListLogs(ctx)
		return panels.LogListingMsg{Listing: listing, Err: err}
	}
}

func (a App) fetchContent(msg panels.LogContentRequestMsg) tea.Cmd {
	if a.opts.Logs == nil {
		return nil
	}
	ctx, logs, req := a.ctx, a.opts.Logs, msg.Request
	return func() tea.Msg {
		content, err := logs.LogContent(ctx, string(req.Category), req.File)
		return panels.LogContentMsg{Token: req.Token, Content: content, Err: err}
	}
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	tabBar := border.RenderTabBar(tabNames, a.activeTab, a.layout.TabBarWidth, "")

	var body string
	switch a.activeTab {
	case tabControl:
		body = a.control.View()
	case tabLiveLog:
		body = a.liveLog.View()
	case tabMonitor:
		body = a.monitor.View()
	case tabLogBrowser:
		body = a.browser.View()
	}

	full := lipgloss.JoinVertical(lipgloss.Left, tabBar, body, a.statusBar.View())

	var modal string
	switch {
	case a.confirm != nil:
		modal = a.confirm.View()
	case a.editor != nil:
		modal = a.editor.View()
	case a.helpOverlay != nil:
		modal = a.helpOverlay.View()
	}
	if modal != "" {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return full
}

func (a *App) propagateSizes() {
	l := a.layout
	a.control.SetSize(l.UIDListWidth, l.CouponListWidth, l.BodyHeight)
	a.liveLog.SetSize(l.BodyWidth, l.BodyHeight)
	a.monitor.SetSize(l.BodyWidth, l.BodyHeight)
	a.browser.SetSize(l.FileListWidth, l.ContentWidth, l.LogFileListHeight, l.CouponListHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.control.SetFocused(a.activeTab == tabControl)
	a.liveLog.SetFocused(a.activeTab == tabLiveLog)
	a.monitor.SetFocused(a.activeTab == tabMonitor)
	a.browser.SetFocused(a.activeTab == tabLogBrowser)
}
