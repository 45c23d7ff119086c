package root

import (
	"context"
	"fmt"
	"os"

	"github.com/status-system/progression/internal/config"
	"github.com/status-system/progression/internal/engine"
	"github.com/status-system/progression/internal/service"
	"github.com/status-system/progression/internal/store"
	"github.com/status-system/progression/internal/store/cassandra"
	"github.com/status-system/progression/pkg/logger"
)

// app bundles what every command needs.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	clock engine.Clock
	store store.Store
	svc   *service.GameService
	close func()
}

// openApp loads config, opens the configured store and loads the state.
// One-shot commands log warnings only unless verbose is set.
func openApp(ctx context.Context, opts *globalOptions, oneShot bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.profile != "" {
		cfg.ProfileID = opts.profile
	}
	if opts.store != "" {
		cfg.StoreBackend = opts.store
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if oneShot && !opts.verbose {
		level = logger.LevelWarn
	}
	log := logger.NewWithWriter(os.Stderr, level)

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	clock := engine.SystemClock{Location: loc}
	svc := service.NewGameService(st, clock, engine.UUIDGenerator{}, log)
	svc.Start(ctx)

	return &app{
		cfg:   cfg,
		log:   log,
		clock: clock,
		store: st,
		svc:   svc,
		close: closeStore,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory store, state will not survive restarts")
		return store.NewMemoryStore(), func() {}, nil

	case config.BackendSQLite:
		s, err := store.NewSQLiteStore(ctx, cfg.SQLite.Path, cfg.ProfileID)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using SQLite store", logger.F("path", cfg.SQLite.Path))
		return s, func() { s.Close() }, nil

	case config.BackendRedis:
		s, err := store.NewRedisStore(cfg.Redis, cfg.ProfileID)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Connected to Redis", logger.F("addr", cfg.Redis.Addr))
		return s, func() { s.Close() }, nil

	case config.BackendCassandra:
		client, err := cassandra.NewClient(cfg.Cassandra, log)
		if err != nil {
			return nil, nil, err
		}
		repo := cassandra.NewRepository(client, log, cfg.ProfileID, cfg.Cassandra.Timeout)
		return repo, client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
