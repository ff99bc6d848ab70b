package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/coupontop/internal/monitor"
	"github.com/justinpbarnett/coupontop/internal/stream"
)

// streamNotifyInterval bounds how often the live log view re-renders while
// lines are arriving.
const streamNotifyInterval = 100 * time.Millisecond

// Sources are the background producers the TUI consumes.
type Sources struct {
	Streamer *stream.Streamer
	Poller   *monitor.Poller
}

// Run starts the TUI and its background producers and blocks until the
// user quits or ctx is cancelled. Producers are stopped before it returns.
func Run(ctx context.Context, opts Options, src Sources) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	history := app.opts.History

	var wg sync.WaitGroup
	if src.Streamer != nil {
		src.Streamer.OnState = func(st stream.State, err error) {
			p.Send(StreamStateMsg{State: st, Err: err})
		}
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = src.Streamer.Run(ctx, history.AppendMessage)
		}()
		go func() {
			defer wg.Done()
			notifyStream(ctx, history, streamNotifyInterval, func() { p.Send(StreamUpdatedMsg{}) })
		}()
	}
	if src.Poller != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = src.Poller.Run(ctx, func(u monitor.Update) { p.Send(StatusMsg{Update: u}) })
		}()
	}

	_, err := p.Run()
	cancel()
	wg.Wait()

	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// notifyStream calls notify at most once per interval, and only when the
// history has grown since the last call.
func notifyStream(ctx context.Context, h *stream.History, interval time.Duration, notify func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := h.TotalWritten()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.TotalWritten(); n != last {
				last = n
				notify()
			}
		}
	}
}
