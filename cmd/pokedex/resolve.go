package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/0xalexb/pokedex"
	"github.com/0xalexb/pokedex/cache"
	"github.com/0xalexb/pokedex/config"
	"github.com/0xalexb/pokedex/fetch"
	"github.com/0xalexb/pokedex/pokeapi"
	"github.com/0xalexb/pokedex/resolver"
	"github.com/0xalexb/pokedex/tree"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	var (
		paths []string
		field string
	)

	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Fetch a document, resolve nested URLs and print it",
		Example: `  pokedex resolve https://pokeapi.co/api/v2/pokemon/bulbasaur --path species.url
  pokedex resolve https://pokeapi.co/api/v2/pokemon/1 --path 'moves.*.move.url' --field details`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				fetcher  *fetch.Fetcher
				resolved *resolver.Resolver
				settings *pokeapi.Config
			)

			opts := appOptions(cmd, flags)
			opts = append(opts, pokedex.WithModules(
				cache.NewModule(),
				fetch.NewModule(),
				fx.Provide(config.Provider(&pokeapi.Config{}, pokeapi.ConfigPath), pokeapi.NewResolver),
				fx.Populate(&fetcher, &resolved, &settings),
			))

			app := pokedex.NewApp(opts...)

			err := app.Start()
			if err != nil {
				return err
			}

			defer func() { _ = app.Stop() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			doc, ok := fetcher.FetchOne(ctx, args[0], settings.TTL)
			if !ok {
				return fmt.Errorf("could not fetch %s", args[0])
			}

			doc = resolved.ResolveAndMerge(ctx, tree.Clone(doc), paths, field)

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")

			return encoder.Encode(doc) //nolint:wrapcheck
		},
	}

	cmd.Flags().StringArrayVar(&paths, "path", nil, "dot path to a URL, '*' matches every key or index (repeatable)")
	cmd.Flags().StringVar(&field, "field", tree.DefaultField, "key the fetched document is stored under")

	return cmd
}
