// Package discovery provides the always-visible meta-tools layered over the
// capability registry.
//
// The caller never sees hundreds of operation definitions at once. Instead it
// uses these meta-tools to browse categories, search every registered
// operation, and switch whole categories on and off:
//
//   - list_categories: every category with its state and operation count
//   - enable_category / disable_category: toggle one category
//   - enable_all_categories: expose everything, with a context budget warning
//   - search_tools: case-insensitive search over all operations, enabled or not
//   - get_enabled_tools: the currently visible operations, grouped by category
//   - describe_tool: the full input schema of any registered operation
//
// # Response Format
//
// Every meta-tool answers with human-readable text. Missing parameters,
// unknown categories and empty searches are turned into guidance text that
// tells the caller what to do next; they are never returned as Go errors.
// enable_category and disable_category additionally attach a structured
// entry listing the affected operation names, so hosts can act on the result
// without parsing prose.
package discovery
