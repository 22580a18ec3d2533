package model

import (
	"fragment-generator/internal/decl"
	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/scan"
)

// Builder turns scan targets into models.
type Builder struct {
	contracts      Contracts
	defaultProfile string
}

// NewBuilder creates a Builder. An empty defaultProfile means DefaultProfile.
func NewBuilder(contracts Contracts, defaultProfile string) *Builder {
	if defaultProfile == "" {
		defaultProfile = DefaultProfile
	}

	return &Builder{contracts: contracts, defaultProfile: defaultProfile}
}

// ExtensionPoint validates an extension-point target.
func (b *Builder) ExtensionPoint(t scan.Target) diagnostic.Outcome[ExtensionPointModel] {
	sym := t.Symbol
	d := t.Declaration

	if !sym.Static || !sym.PartialDefinition || !sym.Extension || !sym.ReturnsVoid {
		return diagnostic.Failure[ExtensionPointModel](
			diagnostic.NewInfo(diagnostic.InvalidExtensionMethodDefinition, d.Location, d.Name))
	}

	if !b.parametersMatch(sym.Parameters, b.contracts.ConfigurationBuilder) {
		return diagnostic.Failure[ExtensionPointModel](
			diagnostic.NewInfo(diagnostic.InvalidExtensionMethodParameter, d.Location, d.Name))
	}

	var provider string
	if len(sym.Parameters) == 2 {
		provider = sym.Parameters[1].Name
	}

	return diagnostic.Success(ExtensionPointModel{
		Namespace:         sym.ContainingType.Namespace,
		ClassName:         sym.ContainingType.Name,
		IsValueType:       sym.ContainingType.ValueType,
		Accessibility:     sym.Accessibility,
		MethodName:        d.Name,
		ReceiverParameter: sym.Parameters[0].Name,
		ProviderParameter: provider,
		ProfileName:       t.Marker.ProfileOr(b.defaultProfile),
		Location:          d.Location,
	})
}

// Fragment validates a fragment target.
func (b *Builder) Fragment(t scan.Target) diagnostic.Outcome[FragmentModel] {
	sym := t.Symbol
	d := t.Declaration

	if !sym.Static || !sym.ReturnsVoid {
		return diagnostic.Failure[FragmentModel](
			diagnostic.NewInfo(diagnostic.InvalidConfigMethodDefinition, d.Location, d.Name))
	}

	if !b.parametersMatch(sym.Parameters, b.contracts.ProfileBuilder) {
		return diagnostic.Failure[FragmentModel](
			diagnostic.NewInfo(diagnostic.InvalidConfigMethodParameter, d.Location, d.Name))
	}

	return diagnostic.Success(FragmentModel{
		FullClassName:        sym.ContainingType.FullName(),
		MethodName:           d.Name,
		HasProviderParameter: len(sym.Parameters) == 2,
		ProfileName:          t.Marker.ProfileOr(b.defaultProfile),
		Location:             d.Location,
	})
}

// ExtensionPoints builds every target, preserving order.
func (b *Builder) ExtensionPoints(targets []diagnostic.Outcome[scan.Target]) []diagnostic.Outcome[ExtensionPointModel] {
	return buildAll(targets, b.ExtensionPoint)
}

// Fragments builds every target, preserving order.
func (b *Builder) Fragments(targets []diagnostic.Outcome[scan.Target]) []diagnostic.Outcome[FragmentModel] {
	return buildAll(targets, b.Fragment)
}

// buildAll carries scanner failures through unchanged.
func buildAll[T any](
	targets []diagnostic.Outcome[scan.Target],
	build func(scan.Target) diagnostic.Outcome[T],
) []diagnostic.Outcome[T] {
	out := make([]diagnostic.Outcome[T], 0, len(targets))

	for _, o := range targets {
		t, ok := o.Value()
		if !ok {
			out = append(out, diagnostic.Failure[T](o.Info()))
			continue
		}

		out = append(out, build(t))
	}

	return out
}

// parametersMatch checks the 1-or-2 parameter shape: the first parameter has
// type first, the optional second has the service-provider type.
func (b *Builder) parametersMatch(params []decl.Parameter, first string) bool {
	if len(params) != 1 && len(params) != 2 {
		return false
	}

	if params[0].Type != first {
		return false
	}

	return len(params) == 1 || params[1].Type == b.contracts.ServiceProvider
}
