package cache

import (
	"context"
	"fmt"

	"github.com/0xalexb/pokedex/config"

	"go.uber.org/fx"
)

// ConfigPath is the config file section holding Config.
const ConfigPath = "cache"

// NewModule provides a Store built from the "cache" config section.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule() fx.Option {
	return fx.Module("cache",
		fx.Provide(
			config.Provider(&Config{}, ConfigPath),
			NewStore,
		),
	)
}

// NewStore opens the configured Store and ties its background work
// (eviction for memory, purging for SQLite) to the application lifecycle.
//
//nolint:ireturn // the concrete store depends on the configured driver
func NewStore(lifecycle fx.Lifecycle, cfg *Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory:
		store := NewMemory(cfg.staleWindow(), cfg.Capacity)

		lifecycle.Append(fx.StartStopHook(
			func() { go store.Start() },
			store.Stop,
		))

		return store, nil
	case DriverSQLite:
		store, err := OpenSQLite(context.Background(), cfg.DSN, cfg.staleWindow())
		if err != nil {
			return nil, err
		}

		purgeCtx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		lifecycle.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go func() {
					defer close(done)

					store.RunPurger(purgeCtx, cfg.PurgeInterval)
				}()

				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				<-done

				return store.Close()
			},
		})

		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
