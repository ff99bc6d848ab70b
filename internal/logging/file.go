package logging

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// fileHookBufferSize is the capacity of the hook's pending line channel.
const fileHookBufferSize = 100

// fileHook writes entries to a local file from a single goroutine.
type fileHook struct {
	fallbackLogger logrus.FieldLogger
	loglines       chan []byte
	done           chan struct{}
	path           string
	w              io.WriteCloser
	bw             *bufio.Writer
	levels         []logrus.Level
}

func newFileHook(
	ctx context.Context, fallbackLogger logrus.FieldLogger, path string, levels []logrus.Level,
) (*fileHook, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path must not be empty")
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open logfile %s: %w", path, err)
	}

	hook := &fileHook{
		fallbackLogger: fallbackLogger,
		path:           path,
		w:              file,
		bw:             bufio.NewWriter(file),
		levels:         levels,
		done:           make(chan struct{}),
	}
	hook.loglines = hook.loop(ctx)
	return hook, nil
}

func (h *fileHook) loop(ctx context.Context) chan []byte {
	loglines := make(chan []byte, fileHookBufferSize)

	go func() {
		defer close(h.done)
		for {
			select {
			case entry := <-loglines:
				if _, err := h.bw.Write(entry); err != nil {
					h.fallbackLogger.Errorf("failed to write a log message to a logfile: %v", err)
				}
				// Flush when idle so the file is readable with tail -f.
				if len(loglines) == 0 {
					if err := h.bw.Flush(); err != nil {
						h.fallbackLogger.Errorf("failed to flush buffer: %v", err)
					}
				}
			case <-ctx.Done():
				h.drain(loglines)
				if err := h.bw.Flush(); err != nil {
					h.fallbackLogger.Errorf("failed to flush buffer: %v", err)
				}
				if err := h.w.Close(); err != nil {
					h.fallbackLogger.Errorf("failed to close logfile: %v", err)
				}
				return
			}
		}
	}()

	return loglines
}

func (h *fileHook) drain(loglines chan []byte) {
	for {
		select {
		case entry := <-loglines:
			_, _ = h.bw.Write(entry)
		default:
			return
		}
	}
}

// Fire queues the formatted entry. Entries fired after shutdown are dropped.
func (h *fileHook) Fire(entry *logrus.Entry) error {
	message, err := entry.Bytes()
	if err != nil {
		return fmt.Errorf("failed to get a log entry bytes: %w", err)
	}

	select {
	case h.loglines <- message:
	case <-h.done:
	}
	return nil
}

func (h *fileHook) Levels() []logrus.Level {
	return h.levels
}

// Wait blocks until the writer goroutine has flushed and closed the file.
func (h *fileHook) Wait() {
	<-h.done
}
