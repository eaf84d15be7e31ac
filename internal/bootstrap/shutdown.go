package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the application components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. SSE hub (disconnect streaming clients)
// 3. Worker pool (drain queued aggregation jobs)
// 4. Cache and database connections
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := app.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if app.Hub != nil {
		app.Hub.Stop()
	}

	// Stop blocks until queued jobs finish, so challenges completed right
	// before shutdown still get their aggregates written
	if app.Workers != nil {
		slog.Info(LogMsgDrainingWorkers)
		app.Workers.Stop()
	}

	if app.Cache != nil {
		app.Cache.Close(ctx)
	}

	if app.DBPool != nil {
		app.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
