package pokedex

import (
	"io"

	"github.com/0xalexb/pokedex/listener"
	"github.com/0xalexb/pokedex/logging"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules      []fx.Option
	Logging      logging.LoggerConfig
	LogOutput    io.Writer
	ConfigFile   string
	StrictConfig bool
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name is used as both the Fx module name and the DI named tag for
// http.Handler and listener.Config. With options the Config is built from
// them; without, it is read from the "listener:<name>" config section.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		if len(opts) == 0 {
			o.Modules = append(o.Modules, listener.ProvideConfig(name))
		}

		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithLogLevel sets the log level: "debug", "info", "warn" or "error".
// Anything else falls back to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.Logging.Level = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.Logging.Format = format
	}
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}

// WithConfigFile reads configuration sections from the YAML file at path
// instead of the built-in defaults.
func WithConfigFile(path string) Option {
	return func(opts *Options) {
		opts.ConfigFile = path
	}
}

// WithStrictConfig rejects configuration keys that no section knows about.
func WithStrictConfig() Option {
	return func(opts *Options) {
		opts.StrictConfig = true
	}
}
