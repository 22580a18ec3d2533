package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fragment-generator/internal/config"
	"fragment-generator/internal/csharp"
	"fragment-generator/internal/decl"
	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/manifest"
)

// inputs splits command-line arguments into manifests and C# source roots.
// Without arguments the configured sources are used.
type inputs struct {
	manifests []string
	roots     []string
}

func collectInputs(cfg *config.Config, args []string) inputs {
	var in inputs

	if len(args) == 0 {
		for _, m := range cfg.Sources.Manifests {
			in.manifests = append(in.manifests, cfg.Resolve(m))
		}

		for _, r := range cfg.Sources.Roots {
			in.roots = append(in.roots, cfg.Resolve(r))
		}

		return in
	}

	for _, arg := range args {
		if _, err := manifest.FormatFor(arg); err == nil {
			in.manifests = append(in.manifests, arg)
			continue
		}

		in.roots = append(in.roots, arg)
	}

	return in
}

func (in inputs) empty() bool {
	return len(in.manifests) == 0 && len(in.roots) == 0
}

// frontendOptions builds the C# frontend options from the configuration.
func frontendOptions(cfg *config.Config) csharp.Options {
	return csharp.Options{
		ExtensionPointAttributes: cfg.Markers.ExtensionPoint,
		FragmentAttributes:       cfg.Markers.Fragment,
		KnownTypes:               cfg.Contracts.Names(),
		ImplicitUsings:           cfg.CSharp.ImplicitUsings,
	}
}

// Codes of diagnostics raised while loading inputs. The pipeline never
// reports them, so they have no Kind.
const (
	codeUnreadableInput = "AMFC0100"
	codeEmptyRoot       = "AMFC0101"
)

// loadDeclarations reads every manifest (in parallel, up to jobs at once) and
// then every C# root. Declarations keep manifest order first, then sorted
// source order. An input that cannot be read is reported as a diagnostic
// and the others are still loaded.
func (a *app) loadDeclarations(ctx context.Context, in inputs) ([]decl.Declaration, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	if in.empty() {
		return nil, diags, fmt.Errorf("no inputs: pass manifests or source directories, or set [sources] in %s", config.FileName)
	}

	jobs := a.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	loaded := make([][]decl.Declaration, len(in.manifests))
	failed := make([]error, len(in.manifests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range in.manifests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			m, err := manifest.LoadFile(path)
			if err != nil {
				failed[i] = err
				return nil
			}

			a.logger.Debug("loaded manifest", "path", path, "declarations", len(m.Declarations))
			loaded[i] = m.Declarations

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, diags, err
	}

	var decls []decl.Declaration

	for i, d := range loaded {
		if failed[i] != nil {
			diags.AddError(codeUnreadableInput, failed[i].Error(), decl.Location{})
			continue
		}

		decls = append(decls, d...)
	}

	if len(in.roots) > 0 {
		fromSource, srcDiags, err := a.loadSources(ctx, in.roots)
		if err != nil {
			return nil, diags, err
		}

		diags.Merge(srcDiags)
		decls = append(decls, fromSource...)
	}

	return decls, diags, nil
}

// loadSources discovers the C# files under roots and extracts their
// declarations. Missing roots and roots without C# files are reported.
func (a *app) loadSources(ctx context.Context, roots []string) ([]decl.Declaration, diagnostic.Diagnostics, error) {
	var (
		diags diagnostic.Diagnostics
		files []string
	)

	for _, root := range roots {
		found, err := csharp.Discover(root)
		if err != nil {
			diags.AddError(codeUnreadableInput, err.Error(), decl.Location{})
			continue
		}

		if len(found) == 0 {
			diags.AddWarning(codeEmptyRoot, "no C# source files found", decl.Location{File: root})
			continue
		}

		files = append(files, found...)
	}

	base, err := os.Getwd()
	if err != nil {
		base = ""
	}

	if a.cfg.Path != "" {
		base = filepath.Dir(a.cfg.Path)
	}

	decls, err := csharp.New(frontendOptions(a.cfg)).Load(ctx, files, base, a.jobs)
	if err != nil {
		return nil, diags, err
	}

	a.logger.Debug("scanned sources", "roots", len(roots), "files", len(files), "declarations", len(decls))

	return decls, diags, nil
}
