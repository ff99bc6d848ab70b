// Package stream follows the backend's live log over server-sent events.
package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justinpbarnett/coupontop/internal/logging"
)

const DefaultReconnectDelay = 5 * time.Second

// maxLineSize bounds one SSE line. Log lines past it fail the connection
// and trigger a reconnect.
const maxLineSize = 1 << 20

var errStreamEnded = errors.New("stream ended")

type State int

const (
	StateConnecting State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "connecting"
	}
}

type Streamer struct {
	URL    string
	Client *http.Client

	// Authorize decorates each request, typically with basic auth.
	Authorize func(*http.Request)

	ReconnectDelay time.Duration
	Logger         logrus.FieldLogger

	// OnState is called on every connection state change. Optional.
	OnState func(State, error)
}

func (s *Streamer) delay() time.Duration {
	if s.ReconnectDelay <= 0 {
		return DefaultReconnectDelay
	}
	return s.ReconnectDelay
}

func (s *Streamer) client() *http.Client {
	if s.Client == nil {
		return http.DefaultClient
	}
	return s.Client
}

func (s *Streamer) state(st State, err error) {
	if s.OnState != nil {
		s.OnState(st, err)
	}
}

// Run delivers every received message to onLine until ctx is done. A lost
// connection is retried after ReconnectDelay, forever. Run always returns
// ctx.Err().
func (s *Streamer) Run(ctx context.Context, onLine func(string)) error {
	log := logging.Component(s.Logger, "stream")

	for {
		s.state(StateConnecting, nil)
		err := s.connect(ctx, onLine)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		log.WithError(err).WithField("retry_in", s.delay()).Warn("live log disconnected")
		s.state(StateDisconnected, err)

		timer := time.NewTimer(s.delay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *Streamer) connect(ctx context.Context, onLine func(string)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if s.Authorize != nil {
		s.Authorize(req)
	}

	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream: unexpected status %d", resp.StatusCode)
	}

	logging.Component(s.Logger, "stream").Debug("live log connected")
	s.state(StateConnected, nil)

	if err := ReadEvents(resp.Body, onLine); err != nil {
		return err
	}
	return errStreamEnded
}

// ReadEvents parses an event-stream body and calls onData with the data of
// each complete event. Multiple data lines in one event are joined with
// "\n". Comments and other fields are ignored. It returns nil at EOF.
func ReadEvents(r io.Reader, onData func(string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var data []string
	hasData := false
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")

		if line == "" {
			if hasData {
				onData(strings.Join(data, "\n"))
			}
			data = data[:0]
			hasData = false
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		if field == "data" {
			data = append(data, value)
			hasData = true
		}
	}
	return sc.Err()
}
