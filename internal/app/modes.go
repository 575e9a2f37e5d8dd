package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"capgate/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

// runServer starts the MCP server and waits for ctx or an interrupt signal.
//
// Signal Handling:
//   - SIGINT (Ctrl+C): Triggers graceful shutdown
//   - SIGTERM: Triggers graceful shutdown (common in container environments)
func runServer(ctx context.Context, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := services.Server.Start(ctx); err != nil {
		logging.Error("Bootstrap", err, "Failed to start MCP server")
		return err
	}

	logging.Info("Bootstrap", "capgate is serving %d operations in %d categories. Press Ctrl+C to stop.",
		services.Registry.OperationCount(), len(services.Registry.Categories()))

	<-ctx.Done()

	logging.Info("Bootstrap", "Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := services.Server.Stop(shutdownCtx); err != nil {
		logging.Error("Bootstrap", err, "Error stopping MCP server")
		firstErr = err
	}
	if services.TelemetryShutdown != nil {
		if err := services.TelemetryShutdown(shutdownCtx); err != nil {
			logging.Warn("Bootstrap", "Error flushing traces: %v", err)
		}
	}
	return firstErr
}
