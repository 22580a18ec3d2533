package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"fragment-generator/internal/manifest"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		output string
		dump   bool
	)

	cmd := &cobra.Command{
		Use:   "scan [dir|file.cs]...",
		Short: "Extract marked declarations from C# sources into a manifest",
		Long: `Parse C# sources and write the marked declarations as a manifest. The
manifest format follows the extension of --output (YAML on stdout by default).
--dump prints the raw declaration records instead. Nothing is written when a
source root cannot be read.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := collectInputs(a.cfg, args)
			in.manifests = nil

			decls, diags, err := a.loadDeclarations(cmd.Context(), in)
			if err != nil {
				return err
			}

			if !diags.IsValid() {
				return a.printDiagnostics(cmd, diags)
			}

			if dump {
				cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				cfg.Fdump(cmd.OutOrStdout(), decls)

				return a.printDiagnostics(cmd, diags)
			}

			m := &manifest.Manifest{Version: "1", Declarations: decls}

			if output != "" {
				if err := manifest.WriteFile(m, output); err != nil {
					return err
				}

				a.logger.Info("wrote manifest", "path", output, "declarations", len(decls))

				return a.printDiagnostics(cmd, diags)
			}

			data, err := manifest.Marshal(m, manifest.FormatYAML)
			if err != nil {
				return fmt.Errorf("failed to marshal manifest: %w", err)
			}

			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}

			return a.printDiagnostics(cmd, diags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the manifest to this file")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump declaration records for debugging")

	return cmd
}
