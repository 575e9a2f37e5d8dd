package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"capgate/pkg/logging"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/capgate"
	configFileName = "config.yaml"

	// EnvPrefix prefixes every environment variable capgate reads.
	EnvPrefix = "CAPGATE_"
)

// GetDefaultConfigPath returns the user configuration directory.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads configuration from configPath/config.yaml, applies
// CAPGATE_* environment overrides and validates the result. A missing
// config.yaml is not an error; defaults are used instead.
func LoadConfig(configPath string) (Config, error) {
	cfg, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, nil); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(configPath string) (Config, error) {
	cfg := GetDefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return cfg, nil
		}
		return Config{}, ConfigurationError{
			FilePath:  configFilePath,
			Source:    "file",
			ErrorType: "io",
			Message:   err.Error(),
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, ConfigurationError{
			FilePath:    configFilePath,
			Source:      "file",
			ErrorType:   "parse",
			Message:     err.Error(),
			Suggestions: []string{"Check the YAML indentation and that durations are written like 30s"},
		}
	}

	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return cfg, nil
}

// ApplyEnv overrides cfg with CAPGATE_* variables. environment replaces the
// process environment when non-nil.
func ApplyEnv(cfg *Config, environment map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return ConfigurationError{
			Source:    "env",
			ErrorType: "env",
			Message:   err.Error(),
		}
	}
	return nil
}
