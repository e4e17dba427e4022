package client

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"
)

// Config is the client application configuration.
type Config struct {
	// GatewayURL is the base URL of the payment gateway webservices API.
	GatewayURL string
	// SettingsPath is where the column-settings snapshot lives.
	SettingsPath string
	// StorePath is the transaction store file; empty keeps transactions in
	// memory only.
	StorePath string
	// LogLevel is one of debug, info, warning, error.
	LogLevel string
}

func DefaultConfig() *Config {
	return &Config{
		GatewayURL:   getenv("WS_GATEWAY_URL", "https://webservices.securetrading.net"),
		SettingsPath: getenv("WS_SETTINGS_PATH", "settings.json"),
		StorePath:    getenv("WS_STORE_PATH", ""),
		LogLevel:     getenv("WS_LOGLEVEL", "info"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// ParseLevel maps a config log level name to its slog level, defaulting to
// info for anything unrecognised.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
