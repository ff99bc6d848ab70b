package main

import (
	"context"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/config"
	"github.com/justinpbarnett/coupontop/internal/logging"
	"github.com/justinpbarnett/coupontop/internal/monitor"
	"github.com/justinpbarnett/coupontop/internal/stream"
	"github.com/justinpbarnett/coupontop/internal/ui"
)

type cmdTUI struct {
	gs *globalState
}

// newStreamer returns a streamer for the backend's live log. It uses its own
// client because the API client's timeout would cut the stream.
func newStreamer(cfg *config.Config, client *api.Client, logger logrus.FieldLogger) *stream.Streamer {
	return &stream.Streamer{
		URL:            client.StreamURL(),
		Client:         cleanhttp.DefaultPooledClient(),
		Authorize:      client.Authorize,
		ReconnectDelay: cfg.Stream.ReconnectDelay,
		Logger:         logger,
	}
}

func (c *cmdTUI) run(cmd *cobra.Command, _ []string) error {
	cfg := c.gs.cfg

	// The console owns the terminal, so everything is logged to a file.
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultLogPath()
	}
	// The log outlives the signal context so shutdown entries are kept. It
	// is stopped and flushed only after the console has returned.
	logCtx, stopLogger := context.WithCancel(context.WithoutCancel(cmd.Context()))
	logger, loggerStopped, err := logging.NewFile(logCtx, path, cfg.Log.Level)
	if err != nil {
		stopLogger()
		return err
	}
	defer func() {
		stopLogger()
		<-loggerStopped
	}()
	logger.WithField("server", cfg.Server.URL).Info("starting console")

	client := c.gs.client()
	opts := ui.Options{
		Config:     cfg,
		Controller: c.gs.controller(client, logger),
		Logs:       client,
		Fs:         c.gs.fs,
		History:    stream.NewHistory(cfg.Stream.HistoryLines),
		Logger:     logger,
	}
	src := ui.Sources{
		Streamer: newStreamer(cfg, client, logger),
		Poller: &monitor.Poller{
			Fetch:    client.Status,
			Interval: cfg.Monitor.PollInterval,
			Logger:   logger,
		},
	}
	err = ui.Run(cmd.Context(), opts, src)
	logger.WithError(err).Info("console stopped")
	return err
}

func getCmdTUI(gs *globalState) *cobra.Command {
	c := &cmdTUI{gs: gs}
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen console (the default)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
}
