// Package api holds the contracts shared by every capgate package.
//
// It defines the operation model (OperationDefinition), the result shape
// returned by every invocation (CallToolResult), the provider and invoker
// interfaces that the registry, the discovery tools, the proxy executor and
// the MCP server are written against, and the typed error taxonomy.
//
// The package imports no other capgate package, so every other package can
// depend on it without cycles.
//
// # Error taxonomy
//
//   - UnknownCategoryError: a category key that was never registered
//   - UnknownOperationError: an operation name that was never registered
//   - OperationDisabledError: the operation exists but its category is off;
//     carries the category key so callers can name the exact remediation
//   - AdapterContractError: a domain module exposes no recognised list or
//     dispatch method; fatal for that module's registration only
//   - DuplicateRegistrationWarning: non-fatal, the first registration wins
//
// Each type has an Is* predicate built on errors.As, so wrapped errors are
// matched too:
//
//	if api.IsOperationDisabled(err) {
//	    var disabled *api.OperationDisabledError
//	    errors.As(err, &disabled)
//	    fmt.Printf("enable %s first\n", disabled.Category)
//	}
package api
