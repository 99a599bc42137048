package pokeapi

import (
	"net/http"

	"github.com/0xalexb/pokedex/config"
	"github.com/0xalexb/pokedex/fetch"
	"github.com/0xalexb/pokedex/resolver"

	"go.uber.org/fx"
)

// ConfigPath is the config file section holding Config.
const ConfigPath = "pokeapi"

// ListenerName is the named tag the API handler is provided under.
const ListenerName = "api"

// NewModule provides the resolver, the Service and the API http.Handler
// tagged for the "api" listener. It needs a *fetch.Fetcher in the graph.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule() fx.Option {
	return fx.Module("pokeapi",
		fx.Provide(
			config.Provider(&Config{}, ConfigPath),
			NewResolver,
			NewServiceFromFetcher,
			fx.Annotate(
				NewHandler,
				fx.As(new(http.Handler)),
				fx.ResultTags(`name:"`+ListenerName+`"`),
			),
		),
	)
}

// NewResolver creates a Resolver caching documents for the configured TTL.
func NewResolver(fetcher *fetch.Fetcher, cfg *Config) *resolver.Resolver {
	return resolver.New(fetcher, cfg.TTL)
}

// NewServiceFromFetcher creates a Service reading the upstream the fetcher
// is configured for.
func NewServiceFromFetcher(fetcher *fetch.Fetcher, resolver *resolver.Resolver, cfg *Config) *Service {
	return NewService(fetcher, resolver, fetcher.Config().BaseURL, *cfg)
}
