// Package app provides application bootstrap and lifecycle management for
// capgate.
//
// # Architecture Overview
//
// The package has four parts:
//
//  1. Configuration (config.go): runtime settings from CLI flags
//  2. Bootstrap (bootstrap.go): logging, configuration loading, flag overrides
//  3. Services (services.go): CRM client, capability registry, MCP server
//  4. Modes (modes.go): running the server until a signal arrives
//
// # Registration
//
// The CRM catalog is registered exactly once per registry through
// Registry.InitializeOnce, so warm-reuse hosts that bootstrap repeatedly do
// not re-register. Each catalog module is wrapped with adapter.New; a module
// that violates the adapter contract is logged and skipped, and excluded
// modules are never constructed into the registry. Categories listed as
// initially enabled are switched on before the MCP server installs its
// notifier, so startup produces a single tool sync instead of one per
// category.
//
// # Example
//
//	cfg := app.NewConfig(false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
package app
