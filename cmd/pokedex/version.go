package main

import (
	"fmt"

	"github.com/0xalexb/pokedex"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			build := pokedex.Build()

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pokedex %s (commit %s, built %s)\n",
				build.Version, build.Commit, build.CompiledAt)

			return err //nolint:wrapcheck
		},
	}
}
