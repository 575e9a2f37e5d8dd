package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"capgate/internal/api"
	"capgate/internal/registry"
	"capgate/pkg/logging"
)

// ExecuteTool executes a discovery meta-tool by name.
//
// Every known meta-tool answers with a result, never an error: invalid input
// and registry errors become guidance text. An error is returned only for a
// name that is not a discovery meta-tool.
func (p *Provider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	logging.Debug("Discovery", "Executing meta-tool %s with args: %v", toolName, args)

	switch toolName {
	case ToolListCategories:
		return p.handleListCategories(), nil
	case ToolEnableCategory:
		return p.handleToggle(ctx, args, true), nil
	case ToolDisableCategory:
		return p.handleToggle(ctx, args, false), nil
	case ToolEnableAllCategories:
		return p.handleEnableAll(ctx), nil
	case ToolSearchTools:
		return p.handleSearchTools(args), nil
	case ToolGetEnabledTools:
		return p.handleGetEnabledTools(), nil
	case ToolDescribeTool:
		return p.handleDescribeTool(args), nil
	default:
		return nil, fmt.Errorf("unknown meta-tool: %s", toolName)
	}
}

func (p *Provider) handleListCategories() *api.CallToolResult {
	categories := p.registry.Categories()
	summary := CategoriesSummary{
		Categories:        categories,
		TotalOperations:   p.registry.OperationCount(),
		EnabledOperations: p.registry.EnabledOperationCount(),
	}
	return &api.CallToolResult{
		Content: []interface{}{p.formatters.FormatCategories(summary), summary},
	}
}

func (p *Provider) handleToggle(ctx context.Context, args map[string]interface{}, enable bool) *api.CallToolResult {
	action := ToolDisableCategory
	if enable {
		action = ToolEnableCategory
	}

	key, ok := stringArg(args, "category")
	if !ok {
		return api.ErrorResult(fmt.Sprintf(
			"The 'category' parameter is required for %s. Use list_categories to see the available category keys.", action))
	}

	var (
		result registry.ToggleResult
		err    error
	)
	if enable {
		result, err = p.registry.EnableCategory(ctx, key)
	} else {
		result, err = p.registry.DisableCategory(ctx, key)
	}
	if err != nil {
		return p.guidanceForError(err)
	}

	summary := ToggleSummary{
		Category: result.Category,
		Count:    len(result.Operations),
		Changed:  result.Changed,
	}
	if enable {
		summary.Enabled = result.Operations
	} else {
		summary.Disabled = result.Operations
	}

	return &api.CallToolResult{
		Content: []interface{}{p.formatters.FormatToggle(result, enable), summary},
	}
}

func (p *Provider) handleEnableAll(ctx context.Context) *api.CallToolResult {
	result := p.registry.EnableAll(ctx)
	return &api.CallToolResult{
		Content: []interface{}{p.formatters.FormatEnableAll(result), result},
	}
}

func (p *Provider) handleSearchTools(args map[string]interface{}) *api.CallToolResult {
	if _, ok := stringArg(args, "query"); !ok {
		return api.ErrorResult("The 'query' parameter is required for search_tools, for example search_tools(query=\"invoice\").")
	}
	// Spaces are part of the substring searched for.
	query := args["query"].(string)

	matches, err := p.registry.Search(query)
	if err != nil {
		return p.guidanceForError(err)
	}
	if len(matches) == 0 {
		return api.TextResult(fmt.Sprintf(
			"No operations match %q. Try a broader term, or use list_categories to browse what is available.", query))
	}

	summary := SearchSummary{
		Query:  query,
		Count:  len(matches),
		Groups: p.groupMatches(matches),
	}
	return &api.CallToolResult{
		Content: []interface{}{p.formatters.FormatSearch(summary), summary},
	}
}

// groupMatches groups matches by category in order of first appearance.
func (p *Provider) groupMatches(matches []registry.OperationInfo) []SearchGroup {
	var groups []SearchGroup
	index := make(map[string]int)

	for _, m := range matches {
		i, ok := index[m.Category]
		if !ok {
			i = len(groups)
			index[m.Category] = i
			group := SearchGroup{Category: m.Category, Enabled: m.Enabled}
			if !m.Enabled {
				group.Remediation = p.formatters.Remediation(m.Category)
			}
			groups = append(groups, group)
		}
		groups[i].Operations = append(groups[i].Operations, OperationInfo{
			Name:        m.Definition.Name,
			Description: m.Definition.Description,
		})
	}
	return groups
}

func (p *Provider) handleGetEnabledTools() *api.CallToolResult {
	var groups []SearchGroup
	for _, c := range p.registry.Categories() {
		if !c.Enabled {
			continue
		}
		group := SearchGroup{Category: c.Key, Enabled: true}
		for _, name := range c.Operations {
			info, ok := p.registry.Operation(name)
			if !ok {
				continue
			}
			group.Operations = append(group.Operations, OperationInfo{
				Name:        name,
				Description: info.Definition.Description,
			})
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return api.TextResult(p.formatters.FormatOnboarding())
	}
	return &api.CallToolResult{
		Content: []interface{}{p.formatters.FormatEnabled(groups), groups},
	}
}

func (p *Provider) handleDescribeTool(args map[string]interface{}) *api.CallToolResult {
	name, ok := stringArg(args, "name")
	if !ok {
		return api.ErrorResult("The 'name' parameter is required for describe_tool. Use search_tools to find operation names.")
	}

	info, found := p.registry.Operation(name)
	if !found {
		return p.guidanceForError(api.NewUnknownOperationError(name))
	}

	detail := ToolDetail{
		Name:        info.Definition.Name,
		Description: info.Definition.Description,
		Category:    info.Category,
		Enabled:     info.Enabled,
		InputSchema: info.Definition.InputSchema,
		Metadata:    info.Definition.Metadata,
	}
	jsonData, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return api.ErrorResult(fmt.Sprintf("Failed to format operation %s: %v", name, err))
	}

	text := string(jsonData)
	if !info.Enabled {
		text += "\n\n" + p.formatters.Remediation(info.Category)
	}
	return api.TextResult(text)
}

// guidanceForError turns registry errors into actionable text.
func (p *Provider) guidanceForError(err error) *api.CallToolResult {
	var (
		unknownCategory  *api.UnknownCategoryError
		unknownOperation *api.UnknownOperationError
		disabled         *api.OperationDisabledError
	)
	switch {
	case errors.As(err, &unknownCategory):
		return api.ErrorResult(fmt.Sprintf(
			"Category %q does not exist. Use list_categories to see the available categories.", unknownCategory.Category))
	case errors.As(err, &unknownOperation):
		return api.ErrorResult(fmt.Sprintf(
			"Operation %q does not exist. Use search_tools to find operations, or list_categories to browse categories.", unknownOperation.Operation))
	case errors.As(err, &disabled):
		return api.ErrorResult(fmt.Sprintf(
			"Operation %q is disabled. %s", disabled.Operation, p.formatters.Remediation(disabled.Category)))
	case errors.Is(err, registry.ErrEmptyQuery):
		return api.ErrorResult("The 'query' parameter must not be empty. Try a word such as \"contact\" or \"invoice\".")
	default:
		logging.Warn("Discovery", "Unexpected registry error: %v", err)
		return api.ErrorResult(fmt.Sprintf("Request failed: %v", err))
	}
}

// GuidanceForError exposes the error-to-guidance mapping to other tool
// providers built on the same registry.
func (p *Provider) GuidanceForError(err error) *api.CallToolResult {
	return p.guidanceForError(err)
}

// stringArg returns a trimmed, non-empty string argument.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
