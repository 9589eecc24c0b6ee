package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/protocompat"
	"github.com/aretw0/protocompat/internal/config"
	"github.com/aretw0/protocompat/pkg/adapters/badger"
	"github.com/aretw0/protocompat/pkg/adapters/file"
	"github.com/aretw0/protocompat/pkg/adapters/memory"
	"github.com/aretw0/protocompat/pkg/adapters/redis"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/ports"
)

// openStore builds the ResultStore selected by cfg.Driver.
// The returned close function is never nil. Driver "none" yields a nil store.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.ResultStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", "none":
		return nil, noop, nil
	case "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.NewStore(cfg.Path), noop, nil
	case "badger":
		store, err := badger.Open(cfg.Path, badger.WithLogger(logger))
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case "redis":
		ttl, err := cfg.TTLDuration()
		if err != nil {
			return nil, noop, err
		}
		store := redis.New(cfg.Addr, cfg.Password, cfg.DB, redis.WithTTL(ttl), redis.WithPrefix(cfg.Prefix))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("redis store at %s: %w", cfg.Addr, err)
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// createAnalyzer initializes an Analyzer with standard CLI conventions.
func createAnalyzer(cfg config.Config, logger *slog.Logger, store ports.ResultStore, hooks domain.LifecycleHooks) (*protocompat.Analyzer, error) {
	a, err := protocompat.New(
		protocompat.WithLogger(logger),
		protocompat.WithWorkers(cfg.Workers),
		protocompat.WithWeighting(cfg.Weighting),
		protocompat.WithStore(store),
		protocompat.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing analyzer: %w", err)
	}
	return a, nil
}
