package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragment-generator/internal/decl"
)

func TestDescriptors_AllKindsRegistered(t *testing.T) {
	t.Parallel()

	seen := map[string]Kind{}

	for k := Kind(1); int(k) < KindTotal; k++ {
		d, ok := Lookup(k)
		require.True(t, ok, "kind %v", k)
		assert.NotEmpty(t, d.ID, "kind %v", k)
		assert.NotEmpty(t, d.Title, "kind %v", k)
		assert.Contains(t, d.MessageFormat, "%s", "kind %v", k)

		prev, dup := seen[d.ID]
		assert.False(t, dup, "id %s used by %v and %v", d.ID, prev, k)
		seen[d.ID] = k
	}

	assert.Len(t, Descriptors(), KindTotal-1)

	_, ok := Lookup(0)
	assert.False(t, ok)

	_, ok = Lookup(Kind(KindTotal))
	assert.False(t, ok)
}

func TestDescriptors_Severities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     Kind
		id       string
		severity DiagnosticSeverity
	}{
		{InvalidExtensionMethodDefinition, "AMFC0001", DiagnosticError},
		{InvalidExtensionMethodParameter, "AMFC0002", DiagnosticError},
		{InvalidConfigMethodDefinition, "AMFC0003", DiagnosticError},
		{InvalidConfigMethodParameter, "AMFC0004", DiagnosticError},
		{ProviderParameterRequired, "AMFC0005", DiagnosticWarning},
		{UnresolvedDeclaration, "AMFC0006", DiagnosticWarning},
		{DuplicateOutputFilename, "AMFC0007", DiagnosticError},
		{OrphanFragment, "AMFC0008", DiagnosticInfo},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			d := MustLookup(tt.kind)
			assert.Equal(t, tt.id, d.ID)
			assert.Equal(t, tt.severity, d.Severity)
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "InvalidExtensionMethodDefinition", InvalidExtensionMethodDefinition.String())
	assert.Equal(t, "ProviderParameterRequired", ProviderParameterRequired.String())
	assert.Equal(t, "OrphanFragment", OrphanFragment.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestInfo_Diagnostic(t *testing.T) {
	t.Parallel()

	loc := decl.Location{File: "Extensions.cs", Line: 12, Column: 31}
	info := NewInfo(ProviderParameterRequired, loc, "AddFragmentProfile")

	d := info.Diagnostic()
	assert.Equal(t, DiagnosticWarning, d.Severity)
	assert.Equal(t, ProviderParameterRequired, d.Kind)
	assert.Equal(t, "AMFC0005", d.Code)
	assert.Equal(t, "Service provider parameter required for extension. method=[AddFragmentProfile]", d.Message)
	assert.Equal(t, loc, d.Location)
	assert.Equal(t,
		"Extensions.cs:12:31: [AMFC0005] Service provider parameter required for extension. method=[AddFragmentProfile]",
		d.String())
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	ok := Success(42)
	v, isOK := ok.Value()
	assert.True(t, isOK)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, 42, v)
	assert.Nil(t, ok.Info())

	info := NewInfo(InvalidConfigMethodDefinition, decl.Location{}, "Configure")
	failed := Failure[int](info)
	_, isOK = failed.Value()
	assert.False(t, isOK)
	assert.Same(t, info, failed.Info())

	silent := Failure[int](nil)
	assert.False(t, silent.IsSuccess())
	assert.Nil(t, silent.Info())

	outcomes := []Outcome[int]{ok, failed, silent, Success(7)}
	assert.Equal(t, []int{42, 7}, Values(outcomes))
	assert.Equal(t, []*Info{info}, Infos(outcomes))
}

func TestDiagnostics_Report(t *testing.T) {
	t.Parallel()

	var d Diagnostics

	d.Report(nil)
	assert.Equal(t, 0, d.Len())

	d.ReportAll([]*Info{
		NewInfo(OrphanFragment, decl.Location{}, "A.Configure"),
		NewInfo(InvalidConfigMethodParameter, decl.Location{}, "Configure"),
		nil,
		NewInfo(ProviderParameterRequired, decl.Location{}, "Add"),
		NewInfo(InvalidExtensionMethodDefinition, decl.Location{}, "Add2"),
	})

	require.Len(t, d.Errors, 2)
	require.Len(t, d.Warnings, 1)
	require.Len(t, d.Infos, 1)
	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.Equal(t, 4, d.Len())

	all := d.All()
	require.Len(t, all, 4)
	assert.Equal(t, InvalidConfigMethodParameter, all[0].Kind)
	assert.Equal(t, InvalidExtensionMethodDefinition, all[1].Kind)
	assert.Equal(t, ProviderParameterRequired, all[2].Kind)
	assert.Equal(t, OrphanFragment, all[3].Kind)

	assert.Len(t, d.OfKind(ProviderParameterRequired), 1)
}

func TestDiagnostics_Merge(t *testing.T) {
	t.Parallel()

	var a, b Diagnostics

	a.AddWarning("custom", "first", decl.Location{File: "a.yaml"})
	b.AddError("custom", "second", decl.Location{})
	b.Report(NewInfo(OrphanFragment, decl.Location{}, "A.Configure"))

	assert.True(t, a.IsValid())

	a.Merge(b)
	assert.Equal(t, 3, a.Len())
	assert.False(t, a.IsValid())
	assert.Equal(t, "[custom] second", a.Errors[0].String())
	assert.Equal(t, "a.yaml: [custom] first", a.Warnings[0].String())
	assert.Equal(t, OrphanFragment, a.Infos[0].Kind)
}
