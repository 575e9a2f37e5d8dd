// Package logging provides the structured logging used across capgate.
//
// It is a thin layer over the standard slog package that tags every entry
// with a subsystem name, so log lines from the registry, the discovery
// tools, the MCP server and the CRM client can be filtered apart:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bootstrap", "Registered %d categories", n)
//	logging.Warn("Registry", "Duplicate operation %s ignored", name)
//	logging.Error("CRM", err, "Request to %s failed", path)
//
// Logs are written to stderr by default because the stdio MCP transport
// owns stdout.
//
// # Log Levels
//   - Debug: per-call detail (arguments, tool sync diffs)
//   - Info: lifecycle events (startup, registration summary, toggles)
//   - Warn: recoverable integration problems (duplicates, skipped modules,
//     dropped notifications)
//   - Error: failures surfaced to the caller
//
// All functions are safe for concurrent use.
package logging
