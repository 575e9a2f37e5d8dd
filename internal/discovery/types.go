package discovery

import (
	"context"

	"capgate/internal/api"
	"capgate/internal/registry"
)

// Meta-tool name constants.
const (
	// ToolListCategories lists all categories.
	ToolListCategories = "list_categories"

	// ToolEnableCategory makes a category's operations visible.
	ToolEnableCategory = "enable_category"

	// ToolDisableCategory hides a category's operations.
	ToolDisableCategory = "disable_category"

	// ToolEnableAllCategories makes every operation visible.
	ToolEnableAllCategories = "enable_all_categories"

	// ToolSearchTools searches all registered operations.
	ToolSearchTools = "search_tools"

	// ToolGetEnabledTools lists the currently visible operations.
	ToolGetEnabledTools = "get_enabled_tools"

	// ToolDescribeTool returns the schema of one operation.
	ToolDescribeTool = "describe_tool"
)

// Registry is the part of the capability registry the meta-tools use.
type Registry interface {
	Categories() []registry.CategoryInfo
	EnableCategory(ctx context.Context, key string) (registry.ToggleResult, error)
	DisableCategory(ctx context.Context, key string) (registry.ToggleResult, error)
	EnableAll(ctx context.Context) registry.EnableAllResult
	Search(query string) ([]registry.OperationInfo, error)
	Operation(name string) (registry.OperationInfo, bool)
	OperationCount() int
	EnabledOperationCount() int
}

var _ Registry = (*registry.Registry)(nil)

// ToggleSummary is the structured entry attached to enable_category and
// disable_category results.
type ToggleSummary struct {
	Category string   `json:"category"`
	Enabled  []string `json:"enabled,omitempty"`
	Disabled []string `json:"disabled,omitempty"`
	Count    int      `json:"count"`
	Changed  bool     `json:"changed"`
}

// CategoriesSummary is the structured entry attached to list_categories.
type CategoriesSummary struct {
	Categories        []registry.CategoryInfo `json:"categories"`
	TotalOperations   int                     `json:"totalOperations"`
	EnabledOperations int                     `json:"enabledOperations"`
}

// SearchGroup is one category's slice of a search result.
type SearchGroup struct {
	Category    string          `json:"category"`
	Enabled     bool            `json:"enabled"`
	Remediation string          `json:"remediation,omitempty"`
	Operations  []OperationInfo `json:"operations"`
}

// OperationInfo is the name and description of one operation.
type OperationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SearchSummary is the structured entry attached to search_tools.
type SearchSummary struct {
	Query  string        `json:"query"`
	Count  int           `json:"count"`
	Groups []SearchGroup `json:"groups"`
}

// ToolDetail is the describe_tool response.
type ToolDetail struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Enabled     bool                   `json:"enabled"`
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
	Metadata    map[string]string      `json:"metadata,omitempty"`
}

var _ api.ToolProvider = (*Provider)(nil)
