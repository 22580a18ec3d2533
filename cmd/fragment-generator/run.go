package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"fragment-generator/internal/cache"
	"fragment-generator/internal/decl"
	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/pipeline"
	"fragment-generator/internal/report"
)

const cacheApp = "fragment-generator"

// runOptions are the flags shared by the commands that run the pipeline.
type runOptions struct {
	useCache       bool
	defaultProfile string
	unresolved     string
}

func (o *runOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.defaultProfile, "default-profile", "", "profile name for markers without an argument")
	cmd.Flags().StringVar(&o.unresolved, "unresolved", "", "handling of unresolved declarations (diagnose|drop)")
}

func (o *runOptions) registerCache(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.useCache, "cache", false, "reuse results from the on-disk cache")
}

// pipelineConfig applies flag overrides to the configured pipeline settings.
func (a *app) pipelineConfig(o *runOptions) (pipeline.Config, error) {
	cfg := a.cfg.Pipeline()

	if o.defaultProfile != "" {
		cfg.DefaultProfile = o.defaultProfile
	}

	if o.unresolved != "" {
		if err := cfg.Unresolved.UnmarshalText([]byte(o.unresolved)); err != nil {
			return pipeline.Config{}, err
		}
	}

	return cfg, nil
}

// runPipeline loads the inputs named by args and runs the pipeline, going
// through the disk cache when enabled.
func (a *app) runPipeline(ctx context.Context, args []string, o *runOptions) (*pipeline.Result, pipeline.Config, error) {
	cfg, err := a.pipelineConfig(o)
	if err != nil {
		return nil, cfg, err
	}

	decls, inputDiags, err := a.loadDeclarations(ctx, collectInputs(a.cfg, args))
	if err != nil {
		return nil, cfg, err
	}

	res, err := a.runCached(ctx, decls, cfg, o.useCache)
	if res != nil {
		inputDiags.Merge(res.Diagnostics)
		res.Diagnostics = inputDiags
	}

	return res, cfg, err
}

// runCached runs the pipeline, consulting the disk cache first when enabled.
// Cache failures only disable the cache.
func (a *app) runCached(ctx context.Context, decls []decl.Declaration, cfg pipeline.Config, useCache bool) (*pipeline.Result, error) {
	var (
		dc  *cache.DiskCache
		key cache.Digest
		err error
	)

	if useCache {
		dc, err = a.openCache()
		if err != nil {
			a.logger.Warn("cache disabled", "err", err)
		} else if key, err = cache.Key(cfg, decls); err != nil {
			a.logger.Warn("cache disabled", "err", err)
			dc = nil
		}
	}

	if dc != nil {
		res, ok, err := dc.Get(key)
		if err != nil {
			a.logger.Warn("cache read failed", "err", err)
		} else if ok {
			a.logger.Debug("cache hit", "key", key.String())
			return res, nil
		}
	}

	res, err := pipeline.Run(ctx, decls, cfg)
	if err != nil {
		return res, err
	}

	a.logger.Debug("pipeline finished",
		"declarations", len(decls),
		"files", len(res.Files),
		"diagnostics", res.Diagnostics.Len())

	if dc != nil {
		if err := dc.Put(key, res); err != nil {
			a.logger.Warn("cache write failed", "err", err)
		}
	}

	return res, nil
}

// openCache opens the result cache in --cache-dir or the user cache
// directory.
func (a *app) openCache() (*cache.DiskCache, error) {
	if a.cacheDir != "" {
		return cache.New(a.cacheDir)
	}

	return cache.Open(cacheApp)
}

// printDiagnostics renders diags to stderr and converts errors into
// errDiagnostics.
func (a *app) printDiagnostics(cmd *cobra.Command, diags diagnostic.Diagnostics) error {
	opts, err := a.reportOptions(cmd)
	if err != nil {
		return err
	}

	if diags.Len() > 0 || opts.Format == report.FormatJSON {
		if err := report.Diagnostics(cmd.ErrOrStderr(), diags, opts); err != nil {
			return err
		}
	}

	if diags.HasErrors() {
		return errDiagnostics
	}

	return nil
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
