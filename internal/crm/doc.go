// Package crm contains the CRM domain modules registered as capgate
// categories.
//
// Every operation is a thin passthrough: structured arguments are validated
// against the operation's input schema, mapped onto exactly one HTTP call,
// and the response is returned unchanged. No business logic lives here.
//
// Modules deliberately expose their operations through different method
// conventions (GetTools/ExecuteTool, ListOperations/Execute, Definitions/Invoke,
// module-specific names) and are normalised by the adapter package.
package crm
