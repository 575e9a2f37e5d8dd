package discovery

import (
	"strings"
	"testing"

	"capgate/internal/registry"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 operation", plural(1, "operation"))
	assert.Equal(t, "0 operations", plural(0, "operation"))
	assert.Equal(t, "3 categories", plural(3, "category"))
	assert.Equal(t, "1 category", plural(1, "category"))
}

func TestFormatEnableAll_StrongWarningForLargeCatalogs(t *testing.T) {
	f := NewFormatters()

	small := f.FormatEnableAll(registry.EnableAllResult{CategoriesEnabled: 1, OperationsEnabled: 3, TotalCategories: 1, TotalOperations: 3})
	assert.NotContains(t, small, "exceed your context budget")

	large := f.FormatEnableAll(registry.EnableAllResult{CategoriesEnabled: 30, OperationsEnabled: 460, TotalCategories: 30, TotalOperations: 460})
	assert.Contains(t, large, "460 operations are now exposed")
	assert.Contains(t, large, "exceed your context budget")
}

func TestFormatToggle_ListsEveryOperation(t *testing.T) {
	f := NewFormatters()

	text := f.FormatToggle(registry.ToggleResult{
		Category:   "contacts",
		Enabled:    true,
		Changed:    true,
		Operations: []string{"create_contact", "get_contact"},
	}, true)

	lines := strings.Split(text, "\n")
	assert.Equal(t, []string{
		`Enabled category "contacts". 2 operations now available:`,
		"  - create_contact",
		"  - get_contact",
	}, lines)
}

func TestFormatToggle_ExecuteHint(t *testing.T) {
	f := NewFormatters()
	f.executeTool = "execute_tool"

	text := f.FormatToggle(registry.ToggleResult{
		Category:   "billing",
		Enabled:    true,
		Changed:    true,
		Operations: []string{"create_invoice"},
	}, true)

	assert.Equal(t, `Enabled category "billing". Its 1 operation can now be run with execute_tool(name=..., args={...}):`+"\n  - create_invoice", text)
	assert.NotContains(t, text, "now available")
}

func TestFormatCategories_Empty(t *testing.T) {
	f := NewFormatters()
	assert.Contains(t, f.FormatCategories(CategoriesSummary{}), "No categories are registered")
}
