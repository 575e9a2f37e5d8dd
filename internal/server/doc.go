// Package server hosts the capability registry over the Model Context
// Protocol using mark3labs/mcp-go.
//
// # Modes
//
// Dynamic mode lists the discovery meta-tools plus every operation whose
// category is enabled. A ToolSync is installed as the registry notifier; on
// every visibility change it diffs the visible set against the tools it has
// registered and calls AddTools/DeleteTools, which makes mcp-go send
// notifications/tools/list_changed to connected clients. Operation handlers
// call Registry.Invoke, so a client working from a stale list still gets
// remediation text for a disabled operation.
//
// Proxy mode lists a fixed set of tools: the discovery meta-tools and
// execute_tool. It is meant for hosts that ignore list_changed, and its
// streamable HTTP transport runs stateless.
//
// # Endpoints
//
// The HTTP transports expose:
//
//   - /mcp - streamable HTTP MCP endpoint
//   - /sse and /message - SSE MCP endpoints
//   - /healthz - registry counts as JSON
package server
