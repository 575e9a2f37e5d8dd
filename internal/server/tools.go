package server

import (
	"context"
	"encoding/json"
	"fmt"

	"capgate/internal/api"
	"capgate/internal/discovery"
	"capgate/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// toolFromDefinition converts an operation definition into an MCP tool.
func toolFromDefinition(def api.OperationDefinition) mcp.Tool {
	tool := mcp.Tool{
		Name:        def.Name,
		Description: def.Description,
		InputSchema: convertToMCPSchema(def.InputSchema),
	}
	switch def.Metadata[api.MetadataAccess] {
	case "read":
		readOnly := true
		tool.Annotations.ReadOnlyHint = &readOnly
	case "write":
		readOnly := false
		tool.Annotations.ReadOnlyHint = &readOnly
	}
	return tool
}

// convertToMCPSchema converts a JSON Schema map into the MCP input schema
// shape. Only object schemas are meaningful as tool input; anything else is
// replaced by an empty object schema.
func convertToMCPSchema(schema map[string]interface{}) mcp.ToolInputSchema {
	out := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}
	if schema == nil {
		return out
	}
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		out.Properties = props
	}
	switch required := schema["required"].(type) {
	case []string:
		out.Required = required
	case []interface{}:
		for _, r := range required {
			if s, ok := r.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}
	return out
}

// convertToMCPResult converts an internal tool result to MCP format. String
// content becomes text content; anything else is marshaled to JSON text.
func convertToMCPResult(result *api.CallToolResult) *mcp.CallToolResult {
	if result == nil {
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent("")}}
	}

	mcpContent := make([]mcp.Content, len(result.Content))
	for i, content := range result.Content {
		if text, ok := content.(string); ok {
			mcpContent[i] = mcp.NewTextContent(text)
			continue
		}
		jsonBytes, err := json.Marshal(content)
		if err != nil {
			mcpContent[i] = mcp.NewTextContent(fmt.Sprintf("%v", content))
			continue
		}
		mcpContent[i] = mcp.NewTextContent(string(jsonBytes))
	}

	return &mcp.CallToolResult{
		Content: mcpContent,
		IsError: result.IsError,
	}
}

func requestArgs(req mcp.CallToolRequest) map[string]interface{} {
	if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
		return argsMap
	}
	return map[string]interface{}{}
}

// providerTools wraps every tool of a provider as an MCP server tool.
func providerTools(provider api.ToolProvider) []mcpserver.ServerTool {
	defs := provider.GetTools()
	tools := make([]mcpserver.ServerTool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, mcpserver.ServerTool{
			Tool:    toolFromDefinition(def),
			Handler: createProviderHandler(provider, def.Name),
		})
	}
	return tools
}

// createProviderHandler creates the MCP handler of one provider tool.
func createProviderHandler(provider api.ToolProvider, toolName string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(req)

		result, err := provider.ExecuteTool(ctx, toolName, args)
		if err != nil {
			logging.Error("Server", err, "Tool execution failed for %s", toolName)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}
		return convertToMCPResult(result), nil
	}
}

// createOperationHandler creates the MCP handler of one registry operation.
// It goes through the enablement check, so a client holding a stale tool
// list still gets OperationDisabledError guidance.
func createOperationHandler(reg Registry, guide *discovery.Provider, name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := requestArgs(req)

		result, err := reg.Invoke(ctx, name, args)
		if err != nil {
			if api.IsOperationDisabled(err) || api.IsUnknownOperation(err) {
				return convertToMCPResult(guide.GuidanceForError(err)), nil
			}
			logging.Warn("Server", "Operation %s failed: %v", name, err)
			return mcp.NewToolResultError(fmt.Sprintf("Operation %s failed: %v", name, err)), nil
		}
		return convertToMCPResult(result), nil
	}
}
