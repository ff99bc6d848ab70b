package config

import "time"

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:5001",
			Timeout: 10 * time.Second,
		},
		Hub: HubConfig{
			URL: "http://localhost:4444",
		},
		Monitor: MonitorConfig{
			PollInterval: 2 * time.Second,
		},
		Stream: StreamConfig{
			ReconnectDelay: 5 * time.Second,
			HistoryLines:   5000,
		},
		Data: DataConfig{
			UIDsFile:    "data/uids.txt",
			CouponsFile: "data/coupons.txt",
		},
		UI: UIConfig{
			Theme:          "default",
			LogScrollSpeed: 3,
			PreviewWidth:   120,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
