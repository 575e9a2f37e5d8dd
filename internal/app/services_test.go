package app

import (
	"context"
	"testing"
	"time"

	"capgate/internal/api"
	"capgate/internal/config"
	"capgate/internal/crm"
	"capgate/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listOnlyModule struct{}

func (listOnlyModule) ListOperations() []api.OperationDefinition {
	return []api.OperationDefinition{{Name: "orphan", Description: "Never dispatchable"}}
}

type stubModule struct {
	ops []api.OperationDefinition
}

func (m stubModule) GetTools() []api.OperationDefinition { return m.ops }

func (m stubModule) ExecuteTool(_ context.Context, name string, _ map[string]interface{}) (*api.CallToolResult, error) {
	return api.TextResult("ran " + name), nil
}

func TestRegisterCatalog_SkipsContractViolationsAndExcluded(t *testing.T) {
	entries := []crm.Entry{
		{Key: "contacts", Description: "Contacts", Module: stubModule{ops: []api.OperationDefinition{{Name: "get_contact"}}}},
		{Key: "broken", Description: "No dispatch", Module: listOnlyModule{}},
		{Key: "billing", Description: "Billing", Module: stubModule{ops: []api.OperationDefinition{{Name: "create_invoice"}}}},
		{Key: "empty", Description: "Nothing", Module: stubModule{}},
	}

	reg := registry.New()
	err := reg.InitializeOnce(context.Background(), RegisterCatalog(entries, config.CategoriesConfig{Excluded: []string{"billing"}}))
	require.NoError(t, err)

	var keys []string
	for _, c := range reg.Categories() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"contacts"}, keys)
	assert.Equal(t, 1, reg.OperationCount())
	_, found := reg.Operation("orphan")
	assert.False(t, found)
}

func TestRegisterCatalog_RunsOnce(t *testing.T) {
	calls := 0
	entries := []crm.Entry{{Key: "contacts", Module: stubModule{ops: []api.OperationDefinition{{Name: "get_contact"}}}}}
	pass := RegisterCatalog(entries, config.CategoriesConfig{})

	reg := registry.New()
	counting := func(ctx context.Context, r *registry.Registry) error {
		calls++
		return pass(ctx, r)
	}
	require.NoError(t, reg.InitializeOnce(context.Background(), counting))
	require.NoError(t, reg.InitializeOnce(context.Background(), counting))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, reg.OperationCount())
}

func TestEnableInitialCategories(t *testing.T) {
	reg := registry.New()
	_, err := reg.RegisterCategory("contacts", "Contacts", []api.OperationDefinition{{Name: "get_contact"}}, stubModule{}.invoker())
	require.NoError(t, err)

	notified := 0
	reg.SetNotifier(registry.NotifierFunc(func(context.Context) { notified++ }))

	EnableInitialCategories(context.Background(), reg, []string{"contacts", "nonexistent"})
	assert.Equal(t, 1, reg.EnabledOperationCount())
	assert.Equal(t, 1, notified)
}

func (m stubModule) invoker() api.Invoker {
	return api.InvokerFunc(m.ExecuteTool)
}

func TestBuildRegistry_Catalog(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Categories.Enabled = []string{"calendars"}
	cfg.Categories.Excluded = []string{"locations"}

	reg, err := BuildRegistry(context.Background(), cfg)
	require.NoError(t, err)

	var keys []string
	for _, c := range reg.Categories() {
		keys = append(keys, c.Key)
		assert.Equal(t, c.Key == "calendars", c.Enabled, c.Key)
	}
	assert.Equal(t, []string{"contacts", "billing", "calendars", "opportunities", "conversations"}, keys)

	calendars, err := reg.Category("calendars")
	require.NoError(t, err)
	assert.Equal(t, calendars.OperationCount, reg.EnabledOperationCount())
}

func TestInitializeServices_AndRun(t *testing.T) {
	appCfg := config.GetDefaultConfig()
	appCfg.Server.Host = "127.0.0.1"
	appCfg.Server.Port = 0
	appCfg.Server.Mode = config.ModeProxy
	appCfg.Categories.Enabled = []string{"contacts"}

	cfg := NewConfig(false, "")
	cfg.Capgate = &appCfg

	services, err := InitializeServices(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, services.TelemetryShutdown)
	assert.Nil(t, services.Server.ToolSync())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.NoError(t, runServer(ctx, services))
}

func TestInitializeServices_RequiresConfig(t *testing.T) {
	_, err := InitializeServices(context.Background(), NewConfig(false, ""))
	assert.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	appCfg := config.GetDefaultConfig()
	cfg := &Config{Mode: config.ModeProxy, Transport: config.MCPTransportSSE, Port: 9999, Debug: true}

	applyOverrides(cfg, &appCfg)
	assert.Equal(t, config.ModeProxy, appCfg.Server.Mode)
	assert.Equal(t, config.MCPTransportSSE, appCfg.Server.Transport)
	assert.Equal(t, 9999, appCfg.Server.Port)
	assert.Equal(t, "debug", appCfg.LogLevel)

	untouched := config.GetDefaultConfig()
	applyOverrides(&Config{}, &untouched)
	assert.Equal(t, config.GetDefaultConfig(), untouched)
}

func TestLoadConfiguration_FromPath(t *testing.T) {
	t.Setenv("CAPGATE_SERVER_PORT", "8123")
	cfg := NewConfig(false, t.TempDir())
	cfg.Mode = config.ModeProxy

	appCfg, err := LoadConfiguration(cfg)
	require.NoError(t, err)
	assert.Equal(t, 8123, appCfg.Server.Port)
	assert.Equal(t, config.ModeProxy, appCfg.Server.Mode)

	cfg.Mode = "sideways"
	_, err = LoadConfiguration(cfg)
	assert.Error(t, err)
}
