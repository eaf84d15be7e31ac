package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/metrics"
	"github.com/StavLobel/whats-the-chance-game/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	GameStatsService gamestats.Service
	WorkerPool       *worker.Pool
}

// RegisterEventHandlers sets up all event subscribers:
// - Stats aggregation handler (challenge completion events feed the aggregates)
// - Metrics collector (event-based counters)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	// Aggregation runs on the worker pool so completions return quickly
	statsHandler := gamestats.NewEventHandler(deps.GameStatsService, deps.WorkerPool)
	statsHandler.Register(deps.EventBus)
	slog.Info(LogMsgStatsAggregationRegistered)

	// Register Metrics Collector
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
