package app

import (
	"context"
	"errors"
	"fmt"

	"capgate/internal/adapter"
	"capgate/internal/api"
	"capgate/internal/config"
	"capgate/internal/crm"
	"capgate/internal/registry"
	"capgate/internal/server"
	"capgate/internal/telemetry"
	"capgate/pkg/logging"
)

// Services holds all initialized services used by the application.
type Services struct {
	// Registry holds every registered category and operation.
	Registry *registry.Registry

	// Server hosts the registry over MCP.
	Server *server.Server

	// TelemetryShutdown flushes pending spans; never nil.
	TelemetryShutdown telemetry.ShutdownFunc
}

// InitializeServices creates the tracer, the CRM client, the registry with
// its catalog and the MCP server.
func InitializeServices(ctx context.Context, cfg *Config) (*Services, error) {
	if cfg.Capgate == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	appCfg := *cfg.Capgate

	shutdown, err := telemetry.Setup(ctx, appCfg.Telemetry)
	if err != nil {
		// Tracing is optional; run without it.
		logging.Warn("Bootstrap", "Tracing disabled: %v", err)
	}

	reg, err := BuildRegistry(ctx, appCfg)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(server.Config{
		Host:      appCfg.Server.Host,
		Port:      appCfg.Server.Port,
		Transport: appCfg.Server.Transport,
		Mode:      appCfg.Server.Mode,
		Version:   cfg.Version,
	}, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	return &Services{
		Registry:          reg,
		Server:            srv,
		TelemetryShutdown: shutdown,
	}, nil
}

// BuildRegistry creates a registry holding the CRM catalog, with the
// configured initial categories enabled. No notifier is installed.
func BuildRegistry(ctx context.Context, appCfg config.Config) (*registry.Registry, error) {
	client, err := crm.NewClient(crm.ClientConfig{
		BaseURL:    appCfg.CRM.BaseURL,
		APIKey:     appCfg.CRM.APIKey,
		APIVersion: appCfg.CRM.APIVersion,
		LocationID: appCfg.CRM.LocationID,
		Timeout:    appCfg.CRM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create CRM client: %w", err)
	}
	if appCfg.CRM.APIKey == "" {
		logging.Warn("Bootstrap", "No CRM API key configured; operations will be rejected by the CRM. Set CAPGATE_CRM_API_KEY.")
	}

	entries, err := crm.Catalog(client)
	if err != nil {
		return nil, fmt.Errorf("failed to build CRM catalog: %w", err)
	}

	reg := registry.New()
	if err := reg.InitializeOnce(ctx, RegisterCatalog(entries, appCfg.Categories)); err != nil {
		return nil, fmt.Errorf("failed to register catalog: %w", err)
	}

	EnableInitialCategories(ctx, reg, appCfg.Categories.Enabled)
	return reg, nil
}

// RegisterCatalog returns the one-time registration pass for entries.
// Excluded modules and modules violating the adapter contract are skipped;
// neither fails the pass.
func RegisterCatalog(entries []crm.Entry, categories config.CategoriesConfig) func(context.Context, *registry.Registry) error {
	return func(_ context.Context, reg *registry.Registry) error {
		registered := 0
		for _, entry := range entries {
			if categories.IsExcluded(entry.Key) {
				logging.Info("Bootstrap", "Skipping excluded module %s", entry.Key)
				continue
			}

			moduleAdapter, err := adapter.New(entry.Key, entry.Module)
			if err != nil {
				if api.IsAdapterContract(err) {
					logging.Warn("Bootstrap", "Skipping module %s: %v", entry.Key, err)
					continue
				}
				return err
			}

			result, err := reg.RegisterModule(entry.Key, entry.Description, moduleAdapter)
			if err != nil {
				if errors.Is(err, registry.ErrNoOperations) {
					logging.Warn("Bootstrap", "Module %s has no operations to register", entry.Key)
					continue
				}
				return fmt.Errorf("register module %s: %w", entry.Key, err)
			}
			registered++
			logging.Debug("Bootstrap", "Registered %s: %d operations, %d duplicates", entry.Key, len(result.Registered), len(result.Duplicates))
		}

		logging.Info("Bootstrap", "Registered %d modules with %d operations", registered, reg.OperationCount())
		return nil
	}
}

// EnableInitialCategories enables keys, warning about unknown ones.
func EnableInitialCategories(ctx context.Context, reg *registry.Registry, keys []string) {
	for _, key := range keys {
		result, err := reg.EnableCategory(ctx, key)
		if err != nil {
			logging.Warn("Bootstrap", "Cannot enable initial category %s: %v", key, err)
			continue
		}
		logging.Info("Bootstrap", "Enabled initial category %s (%d operations)", key, len(result.Operations))
	}
}
