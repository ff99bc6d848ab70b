// Package logging wires logrus for the TUI and the CLI.
//
// The TUI owns the terminal, so its logs go to a file through a buffered
// hook. CLI commands log to stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// NewConsole returns a logger writing to stderr. Colors are enabled only
// when stderr is a terminal and noColor is false.
func NewConsole(level string, noColor bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetOutput(colorable.NewColorableStderr())
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:   tty && !noColor,
		DisableColors: !tty || noColor,
		FullTimestamp: true,
	})
	return log, nil
}

// NewFile returns a logger whose output is discarded and whose entries are
// written to path by a file hook. The hook flushes and closes the file when
// ctx is done, and the returned channel is closed once it has.
func NewFile(ctx context.Context, path, level string) (*logrus.Logger, <-chan struct{}, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetLevel(lvl)
	log.SetOutput(io.Discard)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	// Hook failures have nowhere to go but a discard logger.
	fallback := logrus.New()
	fallback.SetOutput(io.Discard)

	hook, err := newFileHook(ctx, fallback, path, logrus.AllLevels)
	if err != nil {
		return nil, nil, err
	}
	log.AddHook(hook)
	return log, hook.done, nil
}

// NewNull returns a logger that drops everything. Used as a default by
// components constructed without a logger.
func NewNull() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Component returns an entry tagged with the component name.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	if log == nil {
		log = NewNull()
	}
	return log.WithField("component", name)
}
