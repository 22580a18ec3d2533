package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragment-generator/internal/decl"
	"fragment-generator/internal/diagnostic"
	"fragment-generator/internal/scan"
)

const (
	configBuilder   = "AutoMapper.IMapperConfigurationExpression"
	profileBuilder  = "AutoMapper.IProfileExpression"
	serviceProvider = "System.IServiceProvider"
)

func extensionTarget(mutate func(*decl.Symbol), marker decl.Marker) scan.Target {
	sym := decl.Symbol{
		ContainingType:    decl.TypeRef{Namespace: "App.Mapping", Name: "Extensions"},
		Accessibility:     decl.AccessibilityPublic,
		Static:            true,
		PartialDefinition: true,
		Extension:         true,
		ReturnsVoid:       true,
		Parameters: []decl.Parameter{
			{Name: "expression", Type: configBuilder},
			{Name: "provider", Type: serviceProvider},
		},
	}
	if mutate != nil {
		mutate(&sym)
	}

	return scan.Target{
		Declaration: decl.Declaration{
			Name:     "AddFragmentProfile",
			Shape:    decl.ShapeMethod,
			Location: decl.Location{File: "Extensions.cs", Line: 8, Column: 32},
		},
		Symbol: sym,
		Marker: marker,
	}
}

func fragmentTarget(mutate func(*decl.Symbol), marker decl.Marker) scan.Target {
	sym := decl.Symbol{
		ContainingType: decl.TypeRef{Namespace: "App.Orders", Outer: []string{"Controller"}, Name: "Mapping"},
		Accessibility:  decl.AccessibilityInternal,
		Static:         true,
		ReturnsVoid:    true,
		Parameters: []decl.Parameter{
			{Name: "config", Type: profileBuilder},
		},
	}
	if mutate != nil {
		mutate(&sym)
	}

	return scan.Target{
		Declaration: decl.Declaration{Name: "ConfigureMapping", Shape: decl.ShapeMethod},
		Symbol:      sym,
		Marker:      marker,
	}
}

func TestBuilder_ExtensionPoint_Success(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultContracts(), "")
	out := b.ExtensionPoint(extensionTarget(nil, decl.Marker{Kind: decl.MarkerExtensionPoint}))

	m, ok := out.Value()
	require.True(t, ok)
	assert.Equal(t, ExtensionPointModel{
		Namespace:         "App.Mapping",
		ClassName:         "Extensions",
		IsValueType:       false,
		Accessibility:     decl.AccessibilityPublic,
		MethodName:        "AddFragmentProfile",
		ReceiverParameter: "expression",
		ProviderParameter: "provider",
		ProfileName:       DefaultProfile,
		Location:          decl.Location{File: "Extensions.cs", Line: 8, Column: 32},
	}, m)
}

func TestBuilder_ExtensionPoint_OptionalProviderAndProfile(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultContracts(), "")
	target := extensionTarget(func(s *decl.Symbol) {
		s.Parameters = s.Parameters[:1]
		s.ContainingType = decl.TypeRef{Name: "Setup", ValueType: true}
	}, decl.Marker{Kind: decl.MarkerExtensionPoint, Profile: decl.Profile("Orders")})

	m, ok := b.ExtensionPoint(target).Value()
	require.True(t, ok)
	assert.Empty(t, m.Namespace)
	assert.True(t, m.IsValueType)
	assert.Empty(t, m.ProviderParameter)
	assert.False(t, m.HasProvider())
	assert.Equal(t, "Orders", m.ProfileName)
}

func TestBuilder_ExtensionPoint_ExplicitEmptyProfile(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultContracts(), "")
	m, ok := b.ExtensionPoint(extensionTarget(nil,
		decl.Marker{Kind: decl.MarkerExtensionPoint, Profile: decl.Profile("")})).Value()
	require.True(t, ok)
	assert.Equal(t, "", m.ProfileName)
}

func TestBuilder_ExtensionPoint_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*decl.Symbol)
		kind   diagnostic.Kind
	}{
		{"not static", func(s *decl.Symbol) { s.Static = false }, diagnostic.InvalidExtensionMethodDefinition},
		{"has body", func(s *decl.Symbol) { s.PartialDefinition = false }, diagnostic.InvalidExtensionMethodDefinition},
		{"not extension", func(s *decl.Symbol) { s.Extension = false }, diagnostic.InvalidExtensionMethodDefinition},
		{"returns value", func(s *decl.Symbol) { s.ReturnsVoid = false }, diagnostic.InvalidExtensionMethodDefinition},
		{
			"definition checked before parameters",
			func(s *decl.Symbol) {
				s.Static = false
				s.Parameters = nil
			},
			diagnostic.InvalidExtensionMethodDefinition,
		},
		{"no parameters", func(s *decl.Symbol) { s.Parameters = nil }, diagnostic.InvalidExtensionMethodParameter},
		{
			"three parameters",
			func(s *decl.Symbol) {
				s.Parameters = append(s.Parameters, decl.Parameter{Name: "extra", Type: serviceProvider})
			},
			diagnostic.InvalidExtensionMethodParameter,
		},
		{
			"wrong receiver type",
			func(s *decl.Symbol) { s.Parameters[0].Type = profileBuilder },
			diagnostic.InvalidExtensionMethodParameter,
		},
		{
			"unqualified receiver type",
			func(s *decl.Symbol) { s.Parameters[0].Type = "IMapperConfigurationExpression" },
			diagnostic.InvalidExtensionMethodParameter,
		},
		{
			"wrong provider type",
			func(s *decl.Symbol) { s.Parameters[1].Type = "System.IServiceProvider?" },
			diagnostic.InvalidExtensionMethodParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBuilder(DefaultContracts(), "")
			out := b.ExtensionPoint(extensionTarget(tt.mutate, decl.Marker{Kind: decl.MarkerExtensionPoint}))
			require.False(t, out.IsSuccess())

			info := out.Info()
			require.NotNil(t, info)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, []string{"AddFragmentProfile"}, info.Args)
			assert.Equal(t, "Extensions.cs", info.Location.File)
		})
	}
}

func TestBuilder_Fragment_Success(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultContracts(), "")

	m, ok := b.Fragment(fragmentTarget(nil, decl.Marker{Kind: decl.MarkerFragment})).Value()
	require.True(t, ok)
	assert.Equal(t, "App.Orders.Controller.Mapping", m.FullClassName)
	assert.Equal(t, "ConfigureMapping", m.MethodName)
	assert.False(t, m.HasProviderParameter)
	assert.Equal(t, DefaultProfile, m.ProfileName)
	assert.Equal(t, "App.Orders.Controller.Mapping.ConfigureMapping", m.QualifiedMethod())

	withProvider := fragmentTarget(func(s *decl.Symbol) {
		s.Parameters = append(s.Parameters, decl.Parameter{Name: "sp", Type: serviceProvider})
	}, decl.Marker{Kind: decl.MarkerFragment, Profile: decl.Profile("Orders")})

	m, ok = b.Fragment(withProvider).Value()
	require.True(t, ok)
	assert.True(t, m.HasProviderParameter)
	assert.Equal(t, "Orders", m.ProfileName)
}

func TestBuilder_Fragment_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*decl.Symbol)
		kind   diagnostic.Kind
	}{
		{"not static", func(s *decl.Symbol) { s.Static = false }, diagnostic.InvalidConfigMethodDefinition},
		{"returns value", func(s *decl.Symbol) { s.ReturnsVoid = false }, diagnostic.InvalidConfigMethodDefinition},
		{"no parameters", func(s *decl.Symbol) { s.Parameters = nil }, diagnostic.InvalidConfigMethodParameter},
		{
			"configuration builder instead of profile builder",
			func(s *decl.Symbol) { s.Parameters[0].Type = configBuilder },
			diagnostic.InvalidConfigMethodParameter,
		},
		{
			"second parameter not a provider",
			func(s *decl.Symbol) {
				s.Parameters = append(s.Parameters, decl.Parameter{Name: "n", Type: "int"})
			},
			diagnostic.InvalidConfigMethodParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBuilder(DefaultContracts(), "")
			info := b.Fragment(fragmentTarget(tt.mutate, decl.Marker{Kind: decl.MarkerFragment})).Info()
			require.NotNil(t, info)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, []string{"ConfigureMapping"}, info.Args)
		})
	}
}

func TestBuilder_FragmentNeedNotBePartialOrExtension(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultContracts(), "")
	out := b.Fragment(fragmentTarget(func(s *decl.Symbol) {
		s.PartialDefinition = false
		s.Extension = false
	}, decl.Marker{Kind: decl.MarkerFragment}))

	assert.True(t, out.IsSuccess())
}

func TestBuilder_CustomContractsAndDefaultProfile(t *testing.T) {
	t.Parallel()

	contracts := Contracts{
		ConfigurationBuilder: "Acme.IRootBuilder",
		ProfileBuilder:       "Acme.IProfileBuilder",
		ServiceProvider:      "Acme.IServices",
	}
	b := NewBuilder(contracts, "Default")

	out := b.Fragment(fragmentTarget(func(s *decl.Symbol) {
		s.Parameters = []decl.Parameter{{Name: "p", Type: "Acme.IProfileBuilder"}, {Name: "s", Type: "Acme.IServices"}}
	}, decl.Marker{Kind: decl.MarkerFragment}))

	m, ok := out.Value()
	require.True(t, ok)
	assert.Equal(t, "Default", m.ProfileName)
	assert.True(t, m.HasProviderParameter)

	assert.Equal(t, []string{"Acme.IRootBuilder", "Acme.IProfileBuilder", "Acme.IServices"}, contracts.Names())
}

func TestBuilder_CarriesScannerFailures(t *testing.T) {
	t.Parallel()

	info := diagnostic.NewInfo(diagnostic.UnresolvedDeclaration, decl.Location{}, "Broken")
	targets := []diagnostic.Outcome[scan.Target]{
		diagnostic.Failure[scan.Target](info),
		diagnostic.Failure[scan.Target](nil),
		diagnostic.Success(fragmentTarget(nil, decl.Marker{Kind: decl.MarkerFragment})),
	}

	out := NewBuilder(DefaultContracts(), "").Fragments(targets)
	require.Len(t, out, 3)
	assert.Same(t, info, out[0].Info())
	assert.Nil(t, out[1].Info())
	assert.False(t, out[1].IsSuccess())
	assert.True(t, out[2].IsSuccess())
}
