package csharp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	tscsharp "github.com/smacker/go-tree-sitter/csharp"
	"golang.org/x/sync/errgroup"

	"fragment-generator/internal/decl"
)

// Frontend extracts declarations from C# sources.
type Frontend struct {
	extensionPoints map[string]struct{}
	fragments       map[string]struct{}
	knownTypes      map[string]struct{}
	implicitUsings  []string
}

// New creates a Frontend.
func New(opts Options) *Frontend {
	return &Frontend{
		extensionPoints: setOf(opts.ExtensionPointAttributes),
		fragments:       setOf(opts.FragmentAttributes),
		knownTypes:      setOf(opts.KnownTypes),
		implicitUsings:  slices.Clone(opts.ImplicitUsings),
	}
}

func (f *Frontend) implicit() Imports {
	return Imports{Usings: slices.Clone(f.implicitUsings)}
}

// NewParser creates a C# parser. Parsers are not safe for concurrent use;
// each goroutine needs its own.
func NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(tscsharp.GetLanguage())

	return p
}

// ExtractSource parses src with a fresh parser.
func (f *Frontend) ExtractSource(ctx context.Context, src []byte, file string) ([]decl.Declaration, error) {
	parser := NewParser()
	defer parser.Close()

	return f.Extract(ctx, parser, src, file)
}

// Load extracts the declarations of the given C# files, parsing up to jobs
// files at once (GOMAXPROCS when jobs <= 0). Global using directives of any
// file apply to all of them. Declarations are returned in sorted path order,
// source order within a file. Locations carry paths relative to base when
// possible.
func (f *Frontend) Load(ctx context.Context, paths []string, base string, jobs int) ([]decl.Declaration, error) {
	files := slices.Clone(paths)
	slices.Sort(files)
	files = slices.Compact(files)

	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	jobs = min(jobs, len(files))

	// Global usings of any file apply to all of them, so they are collected
	// before extraction.
	sources := make([][]byte, len(files))
	globals := make([]Imports, len(files))

	err := forEach(ctx, files, jobs, func(ctx context.Context, parser *sitter.Parser, i int, path string) error {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		sources[i] = src

		globals[i], err = f.Globals(ctx, parser, src, displayPath(base, path))

		return err
	})
	if err != nil {
		return nil, err
	}

	imports := f.implicit()
	for _, g := range globals {
		imports.Merge(g)
	}

	results := make([][]decl.Declaration, len(files))

	err = forEach(ctx, files, jobs, func(ctx context.Context, parser *sitter.Parser, i int, path string) error {
		decls, err := f.extract(ctx, parser, sources[i], displayPath(base, path), imports)
		if err != nil {
			return err
		}

		results[i] = decls

		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []decl.Declaration
	for _, decls := range results {
		out = append(out, decls...)
	}

	return out, nil
}

// forEach runs fn for every file on up to jobs goroutines, each with its own
// parser.
func forEach(
	ctx context.Context,
	files []string,
	jobs int,
	fn func(ctx context.Context, parser *sitter.Parser, i int, path string) error,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			parser := NewParser()
			defer parser.Close()

			return fn(gctx, parser, i, path)
		})
	}

	return g.Wait()
}

func displayPath(base, path string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}
