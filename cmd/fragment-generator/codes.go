package main

import (
	"github.com/spf13/cobra"

	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/report"
)

// inputCodes describes the diagnostics raised while loading inputs.
var inputCodes = []report.Code{
	{ID: codeUnreadableInput, Severity: diagnostic.DiagnosticError, Title: "Input could not be read"},
	{ID: codeEmptyRoot, Severity: diagnostic.DiagnosticWarning, Title: "Source root without C# files"},
}

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List diagnostic codes",
		Long: `List every diagnostic code with its default severity. The codes are
stable and can be used to suppress diagnostics in build tooling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descriptors := diagnostic.Descriptors()

			codes := make([]report.Code, 0, len(descriptors)+len(inputCodes))
			for _, d := range descriptors {
				codes = append(codes, report.Code{ID: d.ID, Severity: d.Severity, Title: d.Title})
			}

			return report.Codes(cmd.OutOrStdout(), append(codes, inputCodes...))
		},
	}
}
