package pipeline

import (
	"context"
	"fmt"

	"fragment-generator/internal/decl"
	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/gen"
	"fragment-generator/internal/group"
	"fragment-generator/internal/model"
	"fragment-generator/internal/scan"
)

// Config holds the settings of one run.
type Config struct {
	// DefaultProfile is used for markers without an argument.
	DefaultProfile string `msgpack:"default_profile"`
	// Unresolved decides what happens to declarations without a symbol.
	Unresolved scan.UnresolvedPolicy `msgpack:"unresolved"`
	// Generator configures emission; its Contracts also drive validation.
	Generator gen.GeneratorConfig `msgpack:"generator"`
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		DefaultProfile: model.DefaultProfile,
		Unresolved:     scan.PolicyDiagnose,
		Generator:      gen.DefaultGeneratorConfig(),
	}
}

// Result is everything a run produced.
type Result struct {
	// Files holds one file per containing type of the emitted extension
	// points, in discovery order of each type's first extension point.
	Files []gen.GeneratedFile `msgpack:"files"`
	// Diagnostics holds every surfaced diagnostic.
	Diagnostics diagnostic.Diagnostics `msgpack:"diagnostics"`
	// Groups holds the emitted extension points and their fragments.
	Groups []group.Group `msgpack:"-"`
}

// typeKey identifies the type declaration a unit completes.
type typeKey struct {
	namespace string
	className string
	valueType bool
}

func keyOf(ep model.ExtensionPointModel) typeKey {
	return typeKey{namespace: ep.Namespace, className: ep.ClassName, valueType: ep.IsValueType}
}

// unit is one output file and the groups rendered into it.
type unit struct {
	groups []group.Group
}

// Run executes the pipeline.
//
// Extension points declared in the same type are completed in one file. A
// type whose filename is already owned by another type is reported as
// DuplicateOutputFilename and not emitted.
//
// Cancellation is checked before each file is emitted. On cancellation Run
// returns the files emitted so far together with ctx.Err(); those files are
// complete and valid.
func Run(ctx context.Context, decls []decl.Declaration, cfg Config) (*Result, error) {
	res := &Result{}

	scanner := scan.NewScanner(cfg.Unresolved)
	builder := model.NewBuilder(cfg.Generator.Contracts, cfg.DefaultProfile)

	extOutcomes := builder.ExtensionPoints(scanner.Scan(decls, decl.MarkerExtensionPoint))
	fragOutcomes := builder.Fragments(scanner.Scan(decls, decl.MarkerFragment))

	res.Diagnostics.ReportAll(diagnostic.Infos(extOutcomes))
	res.Diagnostics.ReportAll(diagnostic.Infos(fragOutcomes))

	grouped := group.Build(diagnostic.Values(extOutcomes), diagnostic.Values(fragOutcomes))
	res.Diagnostics.ReportAll(grouped.Diagnostics)

	generator := gen.NewGenerator(cfg.Generator)

	var units []*unit

	byType := make(map[typeKey]*unit)
	owners := make(map[string]typeKey)

	for _, grp := range grouped.Groups {
		ep := grp.ExtensionPoint
		key := keyOf(ep)

		if u, ok := byType[key]; ok {
			u.groups = append(u.groups, grp)
			continue
		}

		filename := generator.Filename(ep)
		if _, taken := owners[filename]; taken {
			info := diagnostic.NewInfo(diagnostic.DuplicateOutputFilename, ep.Location, ep.MethodName)
			info.Suggestions = []string{filename}
			res.Diagnostics.Report(info)

			continue
		}

		owners[filename] = key
		u := &unit{groups: []group.Group{grp}}
		byType[key] = u
		units = append(units, u)
	}

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		file, err := generator.Generate(u.groups...)
		if err != nil {
			return res, fmt.Errorf("generating %s: %w", u.groups[0].ExtensionPoint.MethodName, err)
		}

		res.Files = append(res.Files, *file)
		res.Groups = append(res.Groups, u.groups...)
	}

	return res, nil
}
