package bootstrap

import (
	"context"
	"log/slog"

	"github.com/cybermarket/server/internal/database"
	"github.com/cybermarket/server/internal/outbox"
	"github.com/cybermarket/server/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	Outbox *outbox.Service
	Pool   database.Pool
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Outbox drainer (finish publishing pending events)
// 3. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Outbox != nil {
		components.Outbox.Shutdown()
	}

	if components.Pool != nil {
		components.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
