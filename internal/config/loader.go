package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mstoykov/envconfig"
	"gopkg.in/yaml.v3"
)

// lookupEnv is swapped out in tests.
var lookupEnv = os.LookupEnv

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using dir as the starting point for file discovery.
func LoadFrom(dir string) (*Config, error) {
	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads config from an explicit path. An empty path means
// defaults plus environment only.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath returns the first config file that exists, or "" when
// none is found.
func discoverConfigPath(dir string) (string, error) {
	for _, name := range []string{"coupontop.yaml", "coupontop.yml", "coupontop.toml"} {
		local := filepath.Join(dir, name)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	for _, name := range []string{"config.yaml", "config.toml"} {
		user := filepath.Join(home, ".config", "coupontop", name)
		if _, err := os.Stat(user); err == nil {
			return user, nil
		}
	}

	return "", nil
}

// loadFromFile reads a YAML or TOML config file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	return &cfg, nil
}

// merge overlays override onto base. Scalars override when non-zero.
func merge(base *Config, override *Config) {
	mergeString(&base.Server.URL, override.Server.URL)
	mergeString(&base.Server.Username, override.Server.Username)
	mergeString(&base.Server.Password, override.Server.Password)
	mergeDuration(&base.Server.Timeout, override.Server.Timeout)

	mergeString(&base.Hub.URL, override.Hub.URL)

	mergeDuration(&base.Monitor.PollInterval, override.Monitor.PollInterval)

	mergeDuration(&base.Stream.ReconnectDelay, override.Stream.ReconnectDelay)
	mergeInt(&base.Stream.HistoryLines, override.Stream.HistoryLines)

	mergeString(&base.Data.UIDsFile, override.Data.UIDsFile)
	mergeString(&base.Data.CouponsFile, override.Data.CouponsFile)

	mergeString(&base.UI.Theme, override.UI.Theme)
	mergeInt(&base.UI.LogScrollSpeed, override.UI.LogScrollSpeed)
	mergeInt(&base.UI.PreviewWidth, override.UI.PreviewWidth)

	mergeString(&base.Log.File, override.Log.File)
	mergeString(&base.Log.Level, override.Log.Level)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func mergeDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}

// envOverrides maps COUPONTOP_* variables. Keys are spelled out in full so
// envconfig never falls back to a bare name like USERNAME.
type envOverrides struct {
	ServerURL      string        `envconfig:"COUPONTOP_SERVER_URL"`
	Username       string        `envconfig:"COUPONTOP_USERNAME"`
	Password       string        `envconfig:"COUPONTOP_PASSWORD"`
	Timeout        time.Duration `envconfig:"COUPONTOP_TIMEOUT"`
	HubURL         string        `envconfig:"COUPONTOP_HUB_URL"`
	PollInterval   time.Duration `envconfig:"COUPONTOP_POLL_INTERVAL"`
	ReconnectDelay time.Duration `envconfig:"COUPONTOP_RECONNECT_DELAY"`
	HistoryLines   int           `envconfig:"COUPONTOP_HISTORY_LINES"`
	UIDsFile       string        `envconfig:"COUPONTOP_UIDS_FILE"`
	CouponsFile    string        `envconfig:"COUPONTOP_COUPONS_FILE"`
	LogFile        string        `envconfig:"COUPONTOP_LOG_FILE"`
	LogLevel       string        `envconfig:"COUPONTOP_LOG_LEVEL"`
}

// backendEnv holds the variables the backend itself reads. Sharing an env
// file with the backend then configures both sides.
type backendEnv struct {
	SeleniumHubURL string `envconfig:"SELENIUM_HUB_URL"`
	AuthUsername   string `envconfig:"AUTH_USERNAME"`
	AuthPassword   string `envconfig:"AUTH_PASSWORD"`
}

// applyEnvOverrides layers backend variables first, then COUPONTOP_*.
func applyEnvOverrides(cfg *Config) error {
	var legacy backendEnv
	if err := envconfig.Process("", &legacy, lookupEnv); err != nil {
		return err
	}
	mergeString(&cfg.Hub.URL, legacy.SeleniumHubURL)
	mergeString(&cfg.Server.Username, legacy.AuthUsername)
	mergeString(&cfg.Server.Password, legacy.AuthPassword)

	var env envOverrides
	if err := envconfig.Process("", &env, lookupEnv); err != nil {
		return err
	}
	mergeString(&cfg.Server.URL, env.ServerURL)
	mergeString(&cfg.Server.Username, env.Username)
	mergeString(&cfg.Server.Password, env.Password)
	mergeDuration(&cfg.Server.Timeout, env.Timeout)
	mergeString(&cfg.Hub.URL, env.HubURL)
	mergeDuration(&cfg.Monitor.PollInterval, env.PollInterval)
	mergeDuration(&cfg.Stream.ReconnectDelay, env.ReconnectDelay)
	mergeInt(&cfg.Stream.HistoryLines, env.HistoryLines)
	mergeString(&cfg.Data.UIDsFile, env.UIDsFile)
	mergeString(&cfg.Data.CouponsFile, env.CouponsFile)
	mergeString(&cfg.Log.File, env.LogFile)
	mergeString(&cfg.Log.Level, env.LogLevel)
	return nil
}

// DefaultLogPath is where the TUI writes its log when log.file is unset.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "coupontop.log")
	}
	return filepath.Join(home, ".config", "coupontop", "coupontop.log")
}
