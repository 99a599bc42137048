package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/0xalexb/pokedex/config"

	"go.uber.org/fx"
)

// ConfigPath is the config file section holding one Config per listener
// name, e.g. "listener: {api: {address: ':8080'}}".
const ConfigPath = "listener"

func nameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}

// NewModule creates an Fx module for a named HTTP listener.
// The name is used as both the module name and the DI named tag for http.Handler and Config.
// If any options are passed, the module supplies Config to DI from those options.
// Otherwise, Config must be provided externally, e.g. by ProvideConfig.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(nameTag(name)))))
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(
			func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, handler http.Handler, listenerCfg Config) error {
				srv, err := NewServer(name, handler, listenerCfg, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
					}
				})
				if err != nil {
					return err
				}

				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})

				return nil
			},
			fx.ParamTags("", "", nameTag(name), nameTag(name)),
		),
	))

	return fx.Module(name, moduleOpts...)
}

// ProvideConfig provides the named listener Config from the "listener:<name>"
// config section.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func ProvideConfig(name string) fx.Option {
	load := config.Provider(&Config{}, ConfigPath+":"+name)

	return fx.Provide(fx.Annotate(
		func(parser config.Parser, fetcher config.DataFetcher) (Config, error) {
			cfg, err := load(parser, fetcher)
			if err != nil {
				return Config{}, err
			}

			return *cfg, nil
		},
		fx.ResultTags(nameTag(name)),
	))
}
