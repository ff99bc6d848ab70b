package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/stream"
	"github.com/justinpbarnett/coupontop/internal/ui/text"
)

type cmdTail struct {
	gs *globalState
}

func (c *cmdTail) markers() stream.Markers {
	uid := c.gs.color(color.FgMagenta, color.Bold)
	thread := c.gs.color(color.FgCyan)
	return stream.Markers{
		UID:    func(s string) string { return uid.Sprint(s) },
		Thread: func(s string) string { return thread.Sprint(s) },
	}
}

func (c *cmdTail) run(cmd *cobra.Command, _ []string) error {
	client := c.gs.client()
	s := newStreamer(c.gs.cfg, client, c.gs.logger)
	s.OnState = func(st stream.State, err error) {
		if st == stream.StateConnected {
			c.gs.logger.WithField("url", s.URL).Info("live log connected")
		}
	}

	m := c.markers()
	err := s.Run(cmd.Context(), func(msg string) {
		for _, line := range strings.Split(msg, "\n") {
			fmt.Fprintln(c.gs.stdout, stream.Highlight(text.Plain(line), m))
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func getCmdTail(gs *globalState) *cobra.Command {
	c := &cmdTail{gs: gs}
	return &cobra.Command{
		Use:   "tail",
		Short: "Follow the live worker log until interrupted",
		Long: "Print every line the backend pushes on its live log channel. The\n" +
			"connection is retried after stream.reconnect_delay when it drops.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}
}
