package main

import (
	"github.com/0xalexb/pokedex"
	"github.com/0xalexb/pokedex/cache"
	"github.com/0xalexb/pokedex/fetch"
	"github.com/0xalexb/pokedex/listener"
	"github.com/0xalexb/pokedex/pokeapi"

	"github.com/spf13/cobra"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var listenerOpts []listener.Option
			if cmd.Flags().Changed("addr") {
				listenerOpts = append(listenerOpts, listener.WithAddress(addr))
			}

			opts := appOptions(cmd, flags)
			opts = append(opts,
				pokedex.WithModules(cache.NewModule(), fetch.NewModule(), pokeapi.NewModule()),
				pokedex.WithHTTPListener(pokeapi.ListenerName, listenerOpts...),
			)

			app := pokedex.NewApp(opts...)

			err := app.Err()
			if err != nil {
				return err
			}

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", listener.DefaultAddress,
		"listen address, overrides the listener.api config section")

	return cmd
}
