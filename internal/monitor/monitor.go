// Package monitor polls /status and turns it into the session grid.
package monitor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/logging"
)

const DefaultInterval = 2 * time.Second

const (
	MsgNoSessions   = "No active sessions."
	MsgFetchError   = "Error fetching status."
	MsgConnectError = "Could not connect to server."
)

type Badge string

const (
	BadgePrimary   Badge = "primary"
	BadgeSecondary Badge = "secondary"
	BadgeSuccess   Badge = "success"
	BadgeDanger    Badge = "danger"
	BadgeInfo      Badge = "info"
)

// BadgeFor maps a session status to its badge.
func BadgeFor(status string) Badge {
	switch status {
	case api.SessionRunning:
		return BadgePrimary
	case api.SessionQueued:
		return BadgeSecondary
	case api.SessionFinished:
		return BadgeSuccess
	case api.SessionError:
		return BadgeDanger
	default:
		return BadgeInfo
	}
}

type Card struct {
	Key     string
	Title   string
	Status  string
	Badge   Badge
	Preview string
	Link    string
}

// Grid is one render of the monitoring view. Placeholder is set when there
// are no cards to show.
type Grid struct {
	Cards       []Card
	Placeholder string
}

// Build keeps every session that is not Finished or Error, in server order.
func Build(entries []api.SessionEntry, hubURL string) Grid {
	return build(entries, hubURL, false)
}

// BuildAll is Build without the terminal-state filter.
func BuildAll(entries []api.SessionEntry, hubURL string) Grid {
	return build(entries, hubURL, true)
}

func build(entries []api.SessionEntry, hubURL string, all bool) Grid {
	var g Grid
	for _, e := range entries {
		if !all && (e.Status == api.SessionFinished || e.Status == api.SessionError) {
			continue
		}
		c := Card{
			Key:     e.Key,
			Title:   e.DisplayName,
			Status:  e.Status,
			Badge:   BadgeFor(e.Status),
			Preview: e.LogPreview,
		}
		if e.Status == api.SessionRunning && e.SessionID != "" {
			c.Link = Link(hubURL, e.SessionID)
		}
		g.Cards = append(g.Cards, c)
	}
	if len(g.Cards) == 0 {
		g.Placeholder = MsgNoSessions
	}
	return g
}

// Link is the Selenium Grid UI address of a live session.
func Link(hubURL, sessionID string) string {
	return strings.TrimRight(hubURL, "/") + "/ui/#/session/" + sessionID
}

// ErrorGrid is the grid shown when a poll fails.
func ErrorGrid(err error) Grid {
	var se *api.StatusError
	if errors.As(err, &se) {
		return Grid{Placeholder: MsgFetchError}
	}
	return Grid{Placeholder: MsgConnectError}
}

// Update is the result of one poll. Seq increases with every poll started.
type Update struct {
	Seq     uint64
	Entries []api.SessionEntry
	Err     error
}

// Tracker drops poll results that arrive after a newer one was applied.
type Tracker struct {
	last uint64
}

// Accept reports whether u is newer than anything applied so far, and
// records it if so.
func (t *Tracker) Accept(u Update) bool {
	if u.Seq <= t.last {
		return false
	}
	t.last = u.Seq
	return true
}

type Poller struct {
	Fetch    func(ctx context.Context) ([]api.SessionEntry, error)
	Interval time.Duration
	Logger   logrus.FieldLogger
}

// Run polls once immediately and then every Interval until ctx is done.
// Errors do not stop polling. A slow poll does not hold back the next tick,
// so updates can arrive out of order; Seq lets a Tracker drop stale ones.
func (p *Poller) Run(ctx context.Context, onUpdate func(Update)) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := logging.Component(p.Logger, "monitor")

	var (
		seq uint64
		wg  sync.WaitGroup
	)
	defer wg.Wait()

	poll := func() {
		seq++
		n := seq
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := p.Fetch(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.WithError(err).WithField("seq", n).Debug("status poll failed")
			}
			onUpdate(Update{Seq: n, Entries: entries, Err: err})
		}()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll()
		}
	}
}
