package adapter

import (
	"context"
	"testing"

	"capgate/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefs = []api.OperationDefinition{
	{Name: "create_contact", Description: "Create a contact"},
	{Name: "get_contact", Description: "Get a contact"},
}

func echo(prefix string) func(context.Context, string, map[string]interface{}) (*api.CallToolResult, error) {
	return func(_ context.Context, name string, _ map[string]interface{}) (*api.CallToolResult, error) {
		return api.TextResult(prefix + ":" + name), nil
	}
}

type listInvokeModule struct{}

func (listInvokeModule) ListOperations() []api.OperationDefinition { return testDefs }
func (listInvokeModule) Invoke(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return echo("Invoke")(ctx, name, args)
}

type getToolsExecuteToolModule struct{}

func (getToolsExecuteToolModule) GetTools() []api.OperationDefinition { return testDefs }
func (getToolsExecuteToolModule) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return echo("ExecuteTool")(ctx, name, args)
}

type definitionsExecuteModule struct{}

func (definitionsExecuteModule) Definitions() []api.OperationDefinition { return testDefs }
func (definitionsExecuteModule) Execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return echo("Execute")(ctx, name, args)
}

type dispatcherModule struct {
	dispatcherCalls int
}

func (m *dispatcherModule) GetTools() []api.OperationDefinition { return testDefs }
func (m *dispatcherModule) Dispatcher() api.InvokerFunc {
	m.dispatcherCalls++
	return echo("Dispatcher")
}

// Implements every convention; the highest priority one must win.
type everythingModule struct{}

func (everythingModule) ListOperations() []api.OperationDefinition { return testDefs[:1] }
func (everythingModule) GetTools() []api.OperationDefinition       { return testDefs }
func (everythingModule) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return echo("ExecuteTool")(ctx, name, args)
}
func (everythingModule) Execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return echo("Execute")(ctx, name, args)
}

type listOnlyModule struct{}

func (listOnlyModule) GetTools() []api.OperationDefinition { return testDefs }

type dispatchOnlyModule struct{}

func (dispatchOnlyModule) Execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	return echo("Execute")(ctx, name, args)
}

func TestNew_ResolvesConventions(t *testing.T) {
	tests := []struct {
		name         string
		module       interface{}
		wantList     string
		wantDispatch string
		wantOps      int
	}{
		{"ListOperations and Invoke", listInvokeModule{}, "ListOperations", "Invoke", 2},
		{"GetTools and ExecuteTool", getToolsExecuteToolModule{}, "GetTools", "ExecuteTool", 2},
		{"Definitions and Execute", definitionsExecuteModule{}, "Definitions", "Execute", 2},
		{"GetTools and Dispatcher", &dispatcherModule{}, "GetTools", "Dispatcher", 2},
		{"priority order wins", everythingModule{}, "ListOperations", "ExecuteTool", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New("contacts", tt.module)
			require.NoError(t, err)

			list, dispatch := a.Conventions()
			assert.Equal(t, tt.wantList, list)
			assert.Equal(t, tt.wantDispatch, dispatch)
			assert.Len(t, a.ListOperations(), tt.wantOps)
			assert.Equal(t, "contacts", a.Key())

			result, err := a.Invoke(context.Background(), "get_contact", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDispatch+":get_contact", api.FirstText(result))
		})
	}
}

func TestNew_DispatcherResolvedOnce(t *testing.T) {
	m := &dispatcherModule{}
	a, err := New("contacts", m)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := a.Invoke(context.Background(), "get_contact", nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, m.dispatcherCalls)
}

func TestNew_ContractErrors(t *testing.T) {
	tests := []struct {
		name        string
		module      interface{}
		wantMissing string
	}{
		{"no list method", dispatchOnlyModule{}, api.ContractList},
		{"no dispatch method", listOnlyModule{}, api.ContractDispatch},
		{"nil module", nil, api.ContractList},
		{"unrelated type", "not a module", api.ContractList},
		{"typed nil pointer", (*dispatcherModule)(nil), api.ContractList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New("billing", tt.module)
			require.Error(t, err)
			assert.Nil(t, a)

			var contractErr *api.AdapterContractError
			require.ErrorAs(t, err, &contractErr)
			assert.Equal(t, "billing", contractErr.Module)
			assert.Equal(t, tt.wantMissing, contractErr.Missing)
		})
	}
}

func TestFromFuncs(t *testing.T) {
	list := func() []api.OperationDefinition { return testDefs }

	a, err := FromFuncs("opportunities", list, echo("custom"))
	require.NoError(t, err)
	assert.Len(t, a.ListOperations(), 2)

	result, err := a.Invoke(context.Background(), "create_contact", nil)
	require.NoError(t, err)
	assert.Equal(t, "custom:create_contact", api.FirstText(result))

	_, err = FromFuncs("opportunities", nil, echo("custom"))
	assert.True(t, api.IsAdapterContract(err))

	_, err = FromFuncs("opportunities", list, nil)
	assert.True(t, api.IsAdapterContract(err))
}

func TestZeroValueAdapter_InvokeNamesOperation(t *testing.T) {
	var a ModuleAdapter

	assert.Nil(t, a.ListOperations())

	_, err := a.Invoke(context.Background(), "create_invoice", nil)
	var contractErr *api.AdapterContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "create_invoice", contractErr.Operation)
	assert.Equal(t, api.ContractDispatch, contractErr.Missing)
}
