package fetch

import (
	"github.com/0xalexb/pokedex/config"

	"go.uber.org/fx"
)

// ConfigPath is the config file section holding Config.
const ConfigPath = "upstream"

// NewModule provides a *Fetcher configured from the "upstream" section.
// It needs a cache.Store in the graph.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule() fx.Option {
	return fx.Module("fetch",
		fx.Provide(
			config.Provider(&Config{}, ConfigPath),
			NewFromConfig,
		),
	)
}
