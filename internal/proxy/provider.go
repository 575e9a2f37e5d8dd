package proxy

import (
	"context"
	"fmt"

	"capgate/internal/api"
	"capgate/internal/discovery"
	"capgate/pkg/logging"
)

// ToolExecute is the generic executor meta-tool.
const ToolExecute = "execute_tool"

// DirectInvoker runs an operation without an enablement check.
type DirectInvoker interface {
	InvokeDirect(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)
}

// Registry is what proxy mode needs from the capability registry.
type Registry interface {
	discovery.Registry
	DirectInvoker
}

// Provider exposes the discovery meta-tools plus execute_tool.
type Provider struct {
	registry  Registry
	discovery *discovery.Provider
}

var _ api.ToolProvider = (*Provider)(nil)

// NewProvider creates a proxy mode provider over reg.
func NewProvider(reg Registry) *Provider {
	return &Provider{
		registry:  reg,
		discovery: discovery.NewProvider(reg, discovery.WithExecuteHint(ToolExecute)),
	}
}

// GetTools returns the fixed tool list of proxy mode.
func (p *Provider) GetTools() []api.OperationDefinition {
	tools := p.discovery.GetTools()
	return append(tools, api.OperationDefinition{
		Name: ToolExecute,
		Description: "Execute any registered operation by name, whether or not its category is enabled. " +
			"Use search_tools or describe_tool first to find the operation and its arguments.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Operation name as shown by search_tools",
				},
				"args": map[string]interface{}{
					"type":        "object",
					"description": "Arguments for the operation, matching its input schema",
				},
			},
			"required": []string{"name"},
		},
	})
}

// ExecuteTool dispatches a proxy mode tool call.
//
// For execute_tool, an unknown operation name becomes guidance text and an
// operation failure becomes an error result; neither is returned as a Go
// error. Other names are delegated to the discovery provider.
func (p *Provider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	if toolName != ToolExecute {
		return p.discovery.ExecuteTool(ctx, toolName, args)
	}

	name, _ := args["name"].(string)
	if name == "" {
		return api.ErrorResult("The 'name' parameter is required for execute_tool. Use search_tools to find operation names."), nil
	}

	var opArgs map[string]interface{}
	if raw := args["args"]; raw != nil {
		var ok bool
		opArgs, ok = raw.(map[string]interface{})
		if !ok {
			return api.ErrorResult("The 'args' parameter must be a JSON object."), nil
		}
	}

	result, err := p.Execute(ctx, name, opArgs)
	if err != nil {
		if api.IsUnknownOperation(err) {
			return p.discovery.GuidanceForError(err), nil
		}
		logging.Warn("Proxy", "Operation %s failed: %v", name, err)
		return api.ErrorResult(fmt.Sprintf("Operation %s failed: %v", name, err)), nil
	}
	return result, nil
}

// Execute runs a registered operation regardless of its category state.
//
// Returns *api.UnknownOperationError if name was never registered. Errors
// from the operation itself are returned unchanged.
func (p *Provider) Execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	logging.Debug("Proxy", "Executing %s", name)
	return p.registry.InvokeDirect(ctx, name, args)
}
