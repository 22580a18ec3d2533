package main

import (
	"github.com/spf13/cobra"

	"fragment-generator/internal/gen"
	"fragment-generator/internal/report"
)

func newProfilesCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "profiles [manifest|dir|file.cs]...",
		Short: "List extension points by profile with their fragment counts",
		Long: `List every emitted extension point with its profile, the number of
fragments it calls and its output file. Always runs the pipeline; cached
results do not carry the grouping.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, cfg, err := a.runPipeline(cmd.Context(), args, &opts)
			if err != nil {
				return err
			}

			rows := report.Rows(res.Groups, gen.NewGenerator(cfg.Generator).Filename)
			if err := report.Profiles(cmd.OutOrStdout(), rows); err != nil {
				return err
			}

			return a.printDiagnostics(cmd, res.Diagnostics)
		},
	}

	opts.register(cmd)

	return cmd
}
