package config

import "time"

type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Hub     HubConfig     `yaml:"hub" toml:"hub"`
	Monitor MonitorConfig `yaml:"monitor" toml:"monitor"`
	Stream  StreamConfig  `yaml:"stream" toml:"stream"`
	Data    DataConfig    `yaml:"data" toml:"data"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// ServerConfig points at the automation backend. Every route on the backend
// sits behind HTTP basic auth.
type ServerConfig struct {
	URL      string        `yaml:"url" toml:"url"`
	Username string        `yaml:"username" toml:"username"`
	Password string        `yaml:"password" toml:"password"`
	Timeout  time.Duration `yaml:"timeout" toml:"timeout"`
}

// HubConfig is the external session viewer (Selenium Grid UI).
type HubConfig struct {
	URL string `yaml:"url" toml:"url"`
}

type MonitorConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" toml:"poll_interval"`
}

type StreamConfig struct {
	ReconnectDelay time.Duration `yaml:"reconnect_delay" toml:"reconnect_delay"`
	HistoryLines   int           `yaml:"history_lines" toml:"history_lines"`
}

// DataConfig locates local copies of the backend's uids.txt and coupons.txt.
type DataConfig struct {
	UIDsFile    string `yaml:"uids_file" toml:"uids_file"`
	CouponsFile string `yaml:"coupons_file" toml:"coupons_file"`
}

type UIConfig struct {
	Theme          string `yaml:"theme" toml:"theme"`
	LogScrollSpeed int    `yaml:"log_scroll_speed" toml:"log_scroll_speed"`
	PreviewWidth   int    `yaml:"preview_width" toml:"preview_width"`
}

type LogConfig struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level"`
}
