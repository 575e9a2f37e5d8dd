package adapter

import (
	"context"
	"reflect"

	"capgate/internal/api"
	"capgate/pkg/logging"
)

// Adapter is the uniform shape every domain module is presented as.
type Adapter interface {
	ListOperations() []api.OperationDefinition
	Invoke(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)
}

// Listing conventions, in priority order.
type (
	operationLister interface {
		ListOperations() []api.OperationDefinition
	}
	toolGetter interface {
		GetTools() []api.OperationDefinition
	}
	definitionsLister interface {
		Definitions() []api.OperationDefinition
	}
)

// Dispatch conventions, in priority order.
type (
	toolExecutor interface {
		ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)
	}
	executor interface {
		Execute(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)
	}
	dispatcherProvider interface {
		Dispatcher() api.InvokerFunc
	}
)

// ModuleAdapter presents one domain module as an Adapter. The list and
// dispatch methods are resolved once, at construction, and reused for every
// call through this instance.
type ModuleAdapter struct {
	key    string
	list   func() []api.OperationDefinition
	invoke api.InvokerFunc

	listConvention     string
	dispatchConvention string
}

var _ Adapter = (*ModuleAdapter)(nil)

// New wraps module, resolving its list and dispatch conventions.
//
// Args:
//   - key: the category key the module will be registered under, used in
//     errors and logs
//   - module: any value implementing one listing and one dispatch convention
//
// Returns an *api.AdapterContractError if either convention is missing.
func New(key string, module interface{}) (*ModuleAdapter, error) {
	if isNilModule(module) {
		return nil, &api.AdapterContractError{Module: key, Missing: api.ContractList}
	}
	a := &ModuleAdapter{key: key}

	switch m := module.(type) {
	case operationLister:
		a.list, a.listConvention = m.ListOperations, "ListOperations"
	case toolGetter:
		a.list, a.listConvention = m.GetTools, "GetTools"
	case definitionsLister:
		a.list, a.listConvention = m.Definitions, "Definitions"
	default:
		return nil, &api.AdapterContractError{Module: key, Missing: api.ContractList}
	}

	switch m := module.(type) {
	case api.Invoker:
		a.invoke, a.dispatchConvention = m.Invoke, "Invoke"
	case toolExecutor:
		a.invoke, a.dispatchConvention = m.ExecuteTool, "ExecuteTool"
	case executor:
		a.invoke, a.dispatchConvention = m.Execute, "Execute"
	case dispatcherProvider:
		a.invoke, a.dispatchConvention = m.Dispatcher(), "Dispatcher"
	}
	if a.invoke == nil {
		return nil, &api.AdapterContractError{Module: key, Missing: api.ContractDispatch}
	}

	logging.Debug("Adapter", "Module %s resolved to %s/%s", key, a.listConvention, a.dispatchConvention)
	return a, nil
}

// isNilModule reports a nil module, including a typed nil pointer, map,
// func or similar, whose methods would panic once called.
func isNilModule(module interface{}) bool {
	if module == nil {
		return true
	}
	v := reflect.ValueOf(module)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// FromFuncs builds an adapter from explicit list and dispatch functions, for
// modules with module-specific method names.
func FromFuncs(key string, list func() []api.OperationDefinition, invoke api.InvokerFunc) (*ModuleAdapter, error) {
	if list == nil {
		return nil, &api.AdapterContractError{Module: key, Missing: api.ContractList}
	}
	if invoke == nil {
		return nil, &api.AdapterContractError{Module: key, Missing: api.ContractDispatch}
	}
	return &ModuleAdapter{
		key:                key,
		list:               list,
		invoke:             invoke,
		listConvention:     "func",
		dispatchConvention: "func",
	}, nil
}

// Key returns the category key the adapter was built for.
func (a *ModuleAdapter) Key() string {
	return a.key
}

// Conventions returns the names of the resolved list and dispatch methods.
func (a *ModuleAdapter) Conventions() (list, dispatch string) {
	return a.listConvention, a.dispatchConvention
}

// ListOperations returns the module's operation definitions.
func (a *ModuleAdapter) ListOperations() []api.OperationDefinition {
	if a.list == nil {
		return nil
	}
	return a.list()
}

// Invoke dispatches name to the module.
func (a *ModuleAdapter) Invoke(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	if a.invoke == nil {
		return nil, &api.AdapterContractError{Module: a.key, Missing: api.ContractDispatch, Operation: name}
	}
	return a.invoke(ctx, name, args)
}
