package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/StavLobel/whats-the-chance-game/internal/cache"
	"github.com/StavLobel/whats-the-chance-game/internal/challenge"
	"github.com/StavLobel/whats-the-chance-game/internal/concurrency"
	"github.com/StavLobel/whats-the-chance-game/internal/config"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/gamestats"
	"github.com/StavLobel/whats-the-chance-game/internal/identity"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
	"github.com/StavLobel/whats-the-chance-game/internal/server"
	"github.com/StavLobel/whats-the-chance-game/internal/sse"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
	"github.com/StavLobel/whats-the-chance-game/internal/store/postgres"
	"github.com/StavLobel/whats-the-chance-game/internal/worker"
)

// App holds every long-lived component wired at startup. GracefulShutdown
// walks these in dependency order.
type App struct {
	Config  *config.Config
	Server  *server.Server
	Store   store.Store
	DBPool  *pgxpool.Pool
	Cache   *cache.Cache
	Hub     *sse.Hub
	Workers *worker.Pool
	Bus     event.Bus
}

// NewApp assembles the application: storage, cache, event system, services,
// and the HTTP server. The hub and worker pool are started here; callers own
// the shutdown via GracefulShutdown.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	// Document store on PostgreSQL
	pool, err := postgres.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	st := postgres.New(pool)
	log.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "database", cfg.DBName)

	// Best-effort Redis cache for the hot statistics reads
	c := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)

	// Event bus carrying challenge lifecycle events
	bus := event.NewMemoryBus()

	// Identity: bearer token verification plus display name enrichment
	provider := identity.NewJWTProvider(cfg.JWTSecret, cfg.JWTIssuer)
	names := identity.NewResolver(provider)

	// Realtime hub doubles as the notifier for challenge lifecycle pushes
	hub := sse.NewHub()
	hub.Start()

	// Aggregation jobs run off the request path on the worker pool
	workers := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workers.Start()

	challengeService := challenge.NewService(st, bus, hub, names)
	gameStatsService := gamestats.NewService(st, concurrency.NewLockManager(), c)

	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:         bus,
		GameStatsService: gameStatsService,
		WorkerPool:       workers,
	}); err != nil {
		return nil, err
	}

	srv := server.NewServer(cfg.Port, provider, cfg.TrustedProxies, st, challengeService, gameStatsService, hub)

	return &App{
		Config:  cfg,
		Server:  srv,
		Store:   st,
		DBPool:  pool,
		Cache:   c,
		Hub:     hub,
		Workers: workers,
		Bus:     bus,
	}, nil
}
