package app

import (
	"capgate/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Quiet limits logging to warnings and errors unless Debug is set.
	Quiet bool

	// Custom configuration path (optional)
	// When empty, ~/.config/capgate is used
	ConfigPath string

	// Flag overrides; zero values keep the file and environment settings.
	Mode      string
	Transport string
	Port      int

	// Version is reported to MCP clients.
	Version string

	// Loaded configuration
	Capgate *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
