package discovery

import (
	"capgate/internal/api"
)

// Provider implements api.ToolProvider for the discovery meta-tools.
//
// It holds no state of its own: every call reads or mutates the registry it
// was built with, so a single Provider can serve concurrent requests.
type Provider struct {
	registry   Registry
	formatters *Formatters
}

// Option configures a Provider.
type Option func(*Provider)

// WithExecuteHint makes search results and descriptions point at an
// executor tool (proxy mode) in addition to enable_category.
func WithExecuteHint(toolName string) Option {
	return func(p *Provider) {
		p.formatters.executeTool = toolName
	}
}

// NewProvider creates a meta-tool provider over reg.
func NewProvider(reg Registry, opts ...Option) *Provider {
	p := &Provider{
		registry:   reg,
		formatters: NewFormatters(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetTools returns the definitions of all discovery meta-tools.
func (p *Provider) GetTools() []api.OperationDefinition {
	return []api.OperationDefinition{
		{
			Name:        ToolListCategories,
			Description: "List all operation categories with their description, enabled state and operation count. Start here to find out what this server can do.",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        ToolEnableCategory,
			Description: "Enable a category so that its operations become available as tools.",
			InputSchema: objectSchema(map[string]interface{}{
				"category": stringProperty("Category key as shown by list_categories"),
			}, "category"),
		},
		{
			Name:        ToolDisableCategory,
			Description: "Disable a category to hide its operations and free up context.",
			InputSchema: objectSchema(map[string]interface{}{
				"category": stringProperty("Category key as shown by list_categories"),
			}, "category"),
		},
		{
			Name:        ToolEnableAllCategories,
			Description: "Enable every category at once. This exposes all operations and can exceed your context budget; prefer enable_category.",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        ToolSearchTools,
			Description: "Search all operations, enabled or not, by name or description (case-insensitive substring match).",
			InputSchema: objectSchema(map[string]interface{}{
				"query": stringProperty("Text to look for in operation names and descriptions"),
			}, "query"),
		},
		{
			Name:        ToolGetEnabledTools,
			Description: "List the operations that are currently enabled, grouped by category.",
			InputSchema: objectSchema(nil),
		},
		{
			Name:        ToolDescribeTool,
			Description: "Show the full description and input schema of any registered operation, enabled or not.",
			InputSchema: objectSchema(map[string]interface{}{
				"name": stringProperty("Operation name as shown by search_tools"),
			}, "name"),
		},
	}
}

// IsMetaTool reports whether name is one of the discovery meta-tools.
func (p *Provider) IsMetaTool(name string) bool {
	switch name {
	case ToolListCategories, ToolEnableCategory, ToolDisableCategory,
		ToolEnableAllCategories, ToolSearchTools, ToolGetEnabledTools, ToolDescribeTool:
		return true
	}
	return false
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	if properties == nil {
		properties = map[string]interface{}{}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}
