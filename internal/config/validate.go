package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate runs every check and collects failures rather than stopping at
// the first one.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Server.URL == "" {
		errs = append(errs, "server.url must be set")
	} else if u, err := url.Parse(cfg.Server.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("server.url %q must be an absolute http(s) URL", cfg.Server.URL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("server.url scheme %q must be \"http\" or \"https\"", u.Scheme))
	}

	// An empty hub URL is allowed and yields relative session links.
	if cfg.Hub.URL != "" {
		if _, err := url.Parse(cfg.Hub.URL); err != nil {
			errs = append(errs, fmt.Sprintf("hub.url %q is not a valid URL: %v", cfg.Hub.URL, err))
		}
	}

	if cfg.Server.Timeout <= 0 {
		errs = append(errs, "server.timeout must be positive")
	}
	if cfg.Monitor.PollInterval <= 0 {
		errs = append(errs, "monitor.poll_interval must be positive")
	}
	if cfg.Stream.ReconnectDelay <= 0 {
		errs = append(errs, "stream.reconnect_delay must be positive")
	}
	if cfg.Stream.HistoryLines <= 0 {
		errs = append(errs, "stream.history_lines must be positive")
	}
	if cfg.UI.LogScrollSpeed <= 0 {
		errs = append(errs, "ui.log_scroll_speed must be positive")
	}

	switch cfg.UI.Theme {
	case "default", "light", "dark":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be \"default\", \"light\", or \"dark\"", cfg.UI.Theme))
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q: %v", cfg.Log.Level, err))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
