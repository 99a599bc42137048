package main

import (
	"github.com/0xalexb/pokedex"

	"github.com/spf13/cobra"
)

// appOptions turns the global flags into App options.
func appOptions(cmd *cobra.Command, flags *globalFlags) []pokedex.Option {
	opts := []pokedex.Option{
		pokedex.WithLogLevel(flags.logLevel),
		pokedex.WithLogFormat(flags.logFormat),
		pokedex.WithLogOutput(cmd.ErrOrStderr()),
	}

	if flags.configFile != "" {
		opts = append(opts, pokedex.WithConfigFile(flags.configFile))
	}

	if flags.strict {
		opts = append(opts, pokedex.WithStrictConfig())
	}

	return opts
}
