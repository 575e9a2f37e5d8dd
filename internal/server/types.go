package server

import (
	"context"

	"capgate/internal/api"
	"capgate/internal/proxy"
	"capgate/internal/registry"
)

// Config holds the settings the MCP server needs.
type Config struct {
	Host      string
	Port      int
	Transport string
	Mode      string
	// Version is reported to clients during initialization.
	Version string
}

// Registry is the capability registry as seen by the MCP layer.
type Registry interface {
	proxy.Registry
	ListVisibleOperations() []api.OperationDefinition
	Invoke(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)
	SetNotifier(n registry.Notifier)
}

var _ Registry = (*registry.Registry)(nil)

// Health is the body of GET /healthz.
type Health struct {
	Status            string `json:"status"`
	Mode              string `json:"mode"`
	Categories        int    `json:"categories"`
	TotalOperations   int    `json:"totalOperations"`
	EnabledOperations int    `json:"enabledOperations"`
	ExposedTools      int    `json:"exposedTools"`
}
