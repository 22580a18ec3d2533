// Package main provides the CLI entrypoint for fragment-generator.
//
// fragment-generator completes AutoMapper extension-point stubs:
//   - Reads marked declarations from C# sources or declaration manifests
//   - Groups configuration fragments by profile name
//   - Emits one partial completion per type declaring extension points
//   - Reports misuse as diagnostics
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		stop()
		os.Exit(1)
	}
}
