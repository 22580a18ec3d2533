package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dc, err := a.openCache()
			if err != nil {
				return err
			}

			if err := dc.DropAll(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", dc.Dir())

			return nil
		},
	})

	return cmd
}
