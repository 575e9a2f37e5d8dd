package server

import (
	"context"
	"sort"
	"sync"

	"capgate/internal/api"
	"capgate/internal/discovery"
	"capgate/internal/registry"
	"capgate/pkg/logging"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// activeToolManager tracks which operation tools are currently registered
// with the MCP server.
type activeToolManager struct {
	mu    sync.RWMutex
	items map[string]bool
}

func newActiveToolManager() *activeToolManager {
	return &activeToolManager{items: make(map[string]bool)}
}

func (m *activeToolManager) isActive(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[name]
}

func (m *activeToolManager) setActive(name string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if active {
		m.items[name] = true
	} else {
		delete(m.items, name)
	}
}

// getInactiveItems returns items that are not in the new set.
func (m *activeToolManager) getInactiveItems(newItems map[string]struct{}) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var inactive []string
	for name := range m.items {
		if _, exists := newItems[name]; !exists {
			inactive = append(inactive, name)
		}
	}
	sort.Strings(inactive)
	return inactive
}

func (m *activeToolManager) names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToolSync keeps the MCP server's operation tools equal to the registry's
// visible set. It is installed as the registry notifier in dynamic mode;
// AddTools and DeleteTools make mcp-go send notifications/tools/list_changed
// to connected clients.
type ToolSync struct {
	mcpServer *mcpserver.MCPServer
	registry  Registry
	guide     *discovery.Provider
	active    *activeToolManager

	// serialises Sync so concurrent toggles cannot interleave their diffs
	mu sync.Mutex
}

var _ registry.Notifier = (*ToolSync)(nil)

func newToolSync(s *mcpserver.MCPServer, reg Registry, guide *discovery.Provider) *ToolSync {
	return &ToolSync{
		mcpServer: s,
		registry:  reg,
		guide:     guide,
		active:    newActiveToolManager(),
	}
}

// VisibilityChanged implements registry.Notifier.
func (t *ToolSync) VisibilityChanged(_ context.Context) {
	t.Sync()
}

// Sync re-reads the visible operations and applies the difference.
func (t *ToolSync) Sync() (added, removed []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	visible := t.registry.ListVisibleOperations()
	visibleSet := make(map[string]struct{}, len(visible))
	for _, def := range visible {
		visibleSet[def.Name] = struct{}{}
	}

	removed = t.active.getInactiveItems(visibleSet)
	if len(removed) > 0 {
		t.mcpServer.DeleteTools(removed...)
		for _, name := range removed {
			t.active.setActive(name, false)
		}
	}

	var toAdd []mcpserver.ServerTool
	for _, def := range visible {
		if t.active.isActive(def.Name) {
			continue
		}
		toAdd = append(toAdd, t.serverTool(def))
		t.active.setActive(def.Name, true)
		added = append(added, def.Name)
	}
	if len(toAdd) > 0 {
		t.mcpServer.AddTools(toAdd...)
	}

	if len(added) > 0 || len(removed) > 0 {
		logging.Debug("ToolSync", "Added %d tools, removed %d tools (%d visible)", len(added), len(removed), len(visible))
	}
	return added, removed
}

// ActiveTools returns the operation tools currently registered, sorted.
func (t *ToolSync) ActiveTools() []string {
	return t.active.names()
}

func (t *ToolSync) serverTool(def api.OperationDefinition) mcpserver.ServerTool {
	return mcpserver.ServerTool{
		Tool:    toolFromDefinition(def),
		Handler: createOperationHandler(t.registry, t.guide, def.Name),
	}
}
