package api

import "context"

// Metadata keys used on OperationDefinition.Metadata.
const (
	// MetadataCategory names the category an operation was produced for.
	MetadataCategory = "category"
	// MetadataAccess is "read" or "write".
	MetadataAccess = "access"
	// MetadataMethod is the HTTP method of the backing call, if any.
	MetadataMethod = "method"
)

// OperationDefinition describes one invocable operation.
//
// Definitions are produced once by a domain module at registration time and
// are never mutated afterwards. Consumers that need to change a definition
// must copy it first.
type OperationDefinition struct {
	// Name is globally unique across all categories.
	Name string `json:"name"`
	// Description is shown to the caller and matched by search.
	Description string `json:"description"`
	// InputSchema is a JSON Schema object describing accepted arguments.
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
	// Metadata carries opaque hints such as category or access level.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CallToolResult represents the result of an operation or meta-tool call.
//
// String entries in Content are text; any other entry is structured data
// that the MCP layer serialises to JSON.
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// Invoker executes operations by name.
type Invoker interface {
	Invoke(ctx context.Context, name string, args map[string]interface{}) (*CallToolResult, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, name string, args map[string]interface{}) (*CallToolResult, error)

// Invoke calls f.
func (f InvokerFunc) Invoke(ctx context.Context, name string, args map[string]interface{}) (*CallToolResult, error) {
	return f(ctx, name, args)
}

// ToolProvider is implemented by the discovery and proxy packages. It
// exposes a fixed set of tools and dispatches calls to them.
type ToolProvider interface {
	// GetTools returns all tools this provider offers.
	GetTools() []OperationDefinition

	// ExecuteTool executes a tool by name.
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}

// TextResult creates a successful result with a single text entry.
func TextResult(text string) *CallToolResult {
	return &CallToolResult{
		Content: []interface{}{text},
	}
}

// ErrorResult creates an error result with a single text entry.
func ErrorResult(message string) *CallToolResult {
	return &CallToolResult{
		Content: []interface{}{message},
		IsError: true,
	}
}

// FirstText returns the first text entry of a result, or "" if there is none.
func FirstText(result *CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if s, ok := c.(string); ok {
			return s
		}
	}
	return ""
}
