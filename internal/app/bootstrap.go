package app

import (
	"context"
	"fmt"
	"os"

	"capgate/internal/config"
	"capgate/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs capgate.
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance:
//
//  1. Configures logging (always stderr, so the stdio transport stays clean)
//  2. Loads configuration and applies flag overrides
//  3. Registers the CRM catalog and creates the MCP server
func NewApplication(cfg *Config) (*Application, error) {
	appCfg, err := LoadConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Capgate = &appCfg

	services, err := InitializeServices(context.Background(), cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// LoadConfiguration initialises logging and returns the effective
// configuration for cfg.
func LoadConfiguration(cfg *Config) (config.Config, error) {
	baseLevel := logging.LevelInfo
	if cfg.Quiet {
		baseLevel = logging.LevelWarn
	}
	logging.InitForCLI(baseLevel, os.Stderr)

	configPath := cfg.ConfigPath
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
		configPath = defaultPath
	}

	appCfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", configPath)
		return config.Config{}, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	applyOverrides(cfg, &appCfg)
	if err := config.Validate(appCfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid command line overrides: %w", err)
	}

	level := logging.ParseLevel(appCfg.LogLevel)
	switch {
	case cfg.Debug:
		level = logging.LevelDebug
	case cfg.Quiet && level < logging.LevelWarn:
		level = logging.LevelWarn
	}
	logging.InitForCLI(level, os.Stderr)

	return appCfg, nil
}

func applyOverrides(cfg *Config, appCfg *config.Config) {
	if cfg.Mode != "" {
		appCfg.Server.Mode = cfg.Mode
	}
	if cfg.Transport != "" {
		appCfg.Server.Transport = cfg.Transport
	}
	if cfg.Port != 0 {
		appCfg.Server.Port = cfg.Port
	}
	if cfg.Debug {
		appCfg.LogLevel = "debug"
	}
}

// Run starts the MCP server and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	return runServer(ctx, a.services)
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}
