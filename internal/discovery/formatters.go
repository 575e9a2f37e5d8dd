package discovery

import (
	"fmt"
	"strings"

	"capgate/internal/registry"
)

// manyOperationsThreshold is the visible operation count above which
// enable_all_categories phrases its warning most strongly.
const manyOperationsThreshold = 50

// Formatters renders meta-tool responses as text.
type Formatters struct {
	// executeTool, when set, is mentioned as an alternative to enabling a
	// category (proxy mode).
	executeTool string
}

// NewFormatters creates a new Formatters instance.
func NewFormatters() *Formatters {
	return &Formatters{}
}

// Remediation tells the caller how to reach the operations of a disabled
// category.
func (f *Formatters) Remediation(category string) string {
	msg := fmt.Sprintf("Enable this category first with enable_category(%q).", category)
	if f.executeTool != "" {
		msg += fmt.Sprintf(" Alternatively call an operation directly with %s(name=..., args={...}).", f.executeTool)
	}
	return msg
}

// FormatCategories renders the list_categories response.
func (f *Formatters) FormatCategories(s CategoriesSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d categories, %d operations in total, %d enabled.\n",
		len(s.Categories), s.TotalOperations, s.EnabledOperations)

	if len(s.Categories) == 0 {
		b.WriteString("\nNo categories are registered.")
		return b.String()
	}

	b.WriteString("\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&b, "- %s [%s]: %s (%s)\n", c.Key, stateLabel(c.Enabled), c.Description, plural(c.OperationCount, "operation"))
	}
	b.WriteString("\nUse enable_category(category) to expose a category's operations, or search_tools(query) to find a specific operation.")
	return b.String()
}

// FormatToggle renders the enable_category and disable_category responses.
func (f *Formatters) FormatToggle(r registry.ToggleResult, enable bool) string {
	var b strings.Builder
	switch {
	case enable && r.Changed && f.executeTool != "":
		fmt.Fprintf(&b, "Enabled category %q. Its %s can now be run with %s(name=..., args={...}):\n", r.Category, plural(len(r.Operations), "operation"), f.executeTool)
	case enable && r.Changed:
		fmt.Fprintf(&b, "Enabled category %q. %s now available:\n", r.Category, plural(len(r.Operations), "operation"))
	case enable:
		fmt.Fprintf(&b, "Category %q is already enabled. Its %s:\n", r.Category, plural(len(r.Operations), "operation"))
	case r.Changed:
		fmt.Fprintf(&b, "Disabled category %q. %s hidden:\n", r.Category, plural(len(r.Operations), "operation"))
	default:
		fmt.Fprintf(&b, "Category %q is already disabled. Its %s:\n", r.Category, plural(len(r.Operations), "operation"))
	}
	for _, name := range r.Operations {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatEnableAll renders the enable_all_categories response, including the
// context budget warning.
func (f *Formatters) FormatEnableAll(r registry.EnableAllResult) string {
	var b strings.Builder
	if r.CategoriesEnabled == 0 {
		fmt.Fprintf(&b, "All %d categories were already enabled.\n", r.TotalCategories)
	} else {
		fmt.Fprintf(&b, "Enabled %d categories (%s).\n", r.CategoriesEnabled, plural(r.OperationsEnabled, "operation"))
	}

	fmt.Fprintf(&b, "\nWARNING: all %s are now exposed as tools. ", plural(r.TotalOperations, "operation"))
	if r.TotalOperations > manyOperationsThreshold {
		b.WriteString("This many tool definitions can exceed your context budget and degrade tool selection. ")
	} else {
		b.WriteString("Every enabled operation consumes context budget. ")
	}
	b.WriteString("Use disable_category(category) to hide the categories you do not need.")
	return b.String()
}

// FormatSearch renders the search_tools response.
func (f *Formatters) FormatSearch(s SearchSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %s matching %q in %s.\n", plural(s.Count, "operation"), s.Query, plural(len(s.Groups), "category"))

	for _, g := range s.Groups {
		fmt.Fprintf(&b, "\n%s [%s]\n", g.Category, stateLabel(g.Enabled))
		for _, op := range g.Operations {
			fmt.Fprintf(&b, "  - %s: %s\n", op.Name, op.Description)
		}
		if g.Remediation != "" {
			fmt.Fprintf(&b, "  %s\n", g.Remediation)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatEnabled renders the get_enabled_tools response.
func (f *Formatters) FormatEnabled(groups []SearchGroup) string {
	total := 0
	for _, g := range groups {
		total += len(g.Operations)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s enabled in %s.\n", plural(total, "operation"), plural(len(groups), "category"))
	for _, g := range groups {
		fmt.Fprintf(&b, "\n%s (%d)\n", g.Category, len(g.Operations))
		for _, op := range g.Operations {
			fmt.Fprintf(&b, "  - %s: %s\n", op.Name, op.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatOnboarding is returned by get_enabled_tools when nothing is enabled.
func (f *Formatters) FormatOnboarding() string {
	return "No operations are enabled yet.\n\n" +
		"1. Call list_categories to see the available categories.\n" +
		"2. Call search_tools(query) if you are looking for something specific.\n" +
		"3. Call enable_category(category) to expose the operations you need."
}

func stateLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
