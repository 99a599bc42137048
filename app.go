// Package pokedex assembles the Pokédex proxy on top of Uber Fx: logging,
// configuration loading and named HTTP listeners. Service modules are added
// with WithModules.
package pokedex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/pokedex/config"
	filefetcher "github.com/0xalexb/pokedex/config/fetcher/file"
	yamlparser "github.com/0xalexb/pokedex/config/parser/yaml"
	"github.com/0xalexb/pokedex/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is a configured Fx application.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	logger := createLogger(options.Logging, output)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(options.Logging),
		fx.Supply(logger),
		fx.Supply(Build()),
		configModule(options),
		fx.Options(options.Modules...),
	)
}

func createLogger(config logging.LoggerConfig, w io.Writer) *slog.Logger {
	logger := logging.NewLogger(config, w)

	err := config.Validate()
	if err != nil {
		logger.Warn("falling back to default logging settings", slog.Any("error", err))
	}

	return logger
}

// configModule provides the config.Parser and config.DataFetcher every
// config.Provider in the graph reads through. Without a config file the
// built-in defaults are used.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func configModule(options *Options) fx.Option {
	var parserOpts []yamlparser.Option
	if options.StrictConfig {
		parserOpts = append(parserOpts, yamlparser.Strict())
	}

	source := fx.Supply(fx.Annotate(config.Static(DefaultConfig), fx.As(new(config.DataFetcher))))
	if options.ConfigFile != "" {
		source = fx.Provide(fx.Annotate(filefetcher.NewFetcher(options.ConfigFile), fx.As(new(config.DataFetcher))))
	}

	return fx.Module("config",
		fx.Supply(fx.Annotate(yamlparser.NewParser(parserOpts...), fx.As(new(config.Parser)))),
		source,
	)
}

// Err reports a failure to build the dependency graph.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
