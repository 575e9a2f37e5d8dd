// Package adapter normalizes heterogeneous domain modules into one uniform
// shape with exactly two methods: ListOperations and Invoke.
//
// Domain modules grew different conventions for naming their operation list
// and their dispatcher. Rather than probing method names at call time, the
// adapter resolves a module's convention once, at wrap time, by Go interface
// assertion in a fixed priority order:
//
// Listing:
//  1. ListOperations() []api.OperationDefinition
//  2. GetTools() []api.OperationDefinition
//  3. Definitions() []api.OperationDefinition
//
// Dispatch:
//  1. Invoke(ctx, name, args)
//  2. ExecuteTool(ctx, name, args)
//  3. Execute(ctx, name, args)
//  4. Dispatcher() api.InvokerFunc, for modules that name their dispatch
//     method after themselves and hand it out explicitly
//
// Modules whose method names fit none of these are wrapped with FromFuncs,
// passing the module's own method values:
//
//	a, err := adapter.FromFuncs("opportunities", m.OpportunityTools, m.ExecuteOpportunityTool)
//
// A module that exposes no recognised list or dispatch method yields an
// *api.AdapterContractError. Callers skip that module and keep registering
// the others.
package adapter
