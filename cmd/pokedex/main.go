// Command pokedex runs the Pokédex PokeAPI proxy.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
	strict     bool
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Caching proxy in front of PokeAPI",
		Long: `pokedex serves Pokémon records built from PokeAPI documents.

Documents are cached with a soft TTL and served stale when PokeAPI is
unavailable. Nested resource URLs (species, abilities, moves, forms) are
fetched in concurrent batches and merged next to the URL they came from.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file (built-in defaults when empty)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "json", "log format: json, text")
	root.PersistentFlags().BoolVar(&flags.strict, "strict", false, "reject unknown config keys")

	root.AddCommand(serveCmd(&flags))
	root.AddCommand(resolveCmd(&flags))
	root.AddCommand(versionCmd())

	return root
}
