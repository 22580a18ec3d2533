package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fragment-generator/internal/gen"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		opts   runOptions
		outDir string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "gen [manifest|dir|file.cs]...",
		Short: "Generate extension-point completions",
		Long: `Generate one source file per type declaring extension points. Inputs
are declaration manifests (.yaml, .toml, .msgpack) or C# source roots; without
arguments the [sources] of the configuration file are used. Exits non-zero when any error
diagnostic is reported; files for valid extension points are still written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, cfg, err := a.runPipeline(cmd.Context(), args, &opts)
			if err != nil && !(isCancel(err) && res != nil) {
				return err
			}

			dir := cfg.Generator.OutputDir
			if outDir != "" {
				dir = outDir
			}

			if dryRun {
				for _, f := range res.Files {
					fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", f.Filename, f.Content)
				}
			} else if len(res.Files) > 0 {
				written, werr := gen.WriteFiles(res.Files, dir)
				if werr != nil {
					return werr
				}

				for _, path := range written {
					a.logger.Info("wrote", "path", path)
				}

				a.logger.Debug("generation complete", "files", len(res.Files), "changed", len(written), "dir", dir)
			}

			if err != nil {
				return err
			}

			return a.printDiagnostics(cmd, res.Diagnostics)
		},
	}

	opts.register(cmd)
	opts.registerCache(cmd)
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides generate.output_dir)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print generated files instead of writing them")

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "check [manifest|dir|file.cs]...",
		Short: "Report diagnostics without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := a.runPipeline(cmd.Context(), args, &opts)
			if err != nil {
				return err
			}

			return a.printDiagnostics(cmd, res.Diagnostics)
		},
	}

	opts.register(cmd)
	opts.registerCache(cmd)

	return cmd
}
