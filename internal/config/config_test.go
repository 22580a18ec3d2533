package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragment-generator/internal/csharp"
	"fragment-generator/internal/model"
	"fragment-generator/internal/scan"
)

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestParse_Overlay(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
[contracts]
service_provider = "Acme.IServices"

[generate]
default_profile = "Shared"
unresolved = "drop"
output_dir = "out"

[sources]
roots = ["src"]
manifests = ["decls.yaml"]
`))
	require.NoError(t, err)

	assert.Equal(t, "Acme.IServices", cfg.Contracts.ServiceProvider)
	assert.Equal(t, model.DefaultContracts().ProfileBuilder, cfg.Contracts.ProfileBuilder, "unset keys keep defaults")
	assert.Equal(t, "Shared", cfg.Generate.DefaultProfile)
	assert.Equal(t, scan.PolicyDrop, cfg.Generate.Unresolved)
	assert.Equal(t, "CreateProfile", cfg.Generate.ScopeMethod)
	assert.Equal(t, []string{"src"}, cfg.Sources.Roots)
	assert.Equal(t, []string{"decls.yaml"}, cfg.Sources.Manifests)
	assert.Len(t, cfg.Markers.ExtensionPoint, 2)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "[generate]\nprofile = \"x\"\n"},
		{"unknown section", "[output]\ndir = \"x\"\n"},
		{"bad policy", "[generate]\nunresolved = \"ignore\"\n"},
		{"empty suffix", "[generate]\nfile_suffix = \"\"\n"},
		{"no fragment markers", "[markers]\nfragment = []\n"},
		{"syntax", "[generate\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.toml))
			assert.Error(t, err)
		})
	}
}

func TestFind_WalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("[generate]\noutput_dir = \"gen\"\n"), 0o644))

	path, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, FileName), path)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Dir())
	assert.Equal(t, filepath.Join(root, "gen"), cfg.Pipeline().Generator.OutputDir)
}

func TestDiscover_Default(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, ok, err := Find(dir)
	require.NoError(t, err)

	if ok {
		t.Skip("a config file exists above the temp dir")
	}

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, ".", cfg.Dir())
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Generate.OutputDir = "/abs/out"

	pcfg := cfg.Pipeline()
	assert.Equal(t, model.DefaultProfile, pcfg.DefaultProfile)
	assert.Equal(t, scan.PolicyDiagnose, pcfg.Unresolved)
	assert.Equal(t, model.DefaultContracts(), pcfg.Generator.Contracts)
	assert.Equal(t, ".g.cs", pcfg.Generator.FileSuffix)
	assert.Equal(t, "/abs/out", pcfg.Generator.OutputDir)
}

func TestParse_ImplicitUsings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		toml string
		want []string
	}{
		{"default", "", csharp.DefaultImplicitUsings()},
		{"custom", "[csharp]\nimplicit_usings = [\"System\", \"Acme.Shared\"]\n", []string{"System", "Acme.Shared"}},
		{"disabled", "[csharp]\nimplicit_usings = []\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Parse([]byte(tt.toml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.CSharp.ImplicitUsings)
		})
	}
}

func TestValidate_StableOrder(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Contracts.ConfigurationBuilder = ""
	cfg.Contracts.ServiceProvider = " "
	cfg.Generate.FileSuffix = ""
	cfg.Markers.Fragment = nil

	want := "contracts.configuration_builder must not be empty\n" +
		"contracts.service_provider must not be empty\n" +
		"generate.file_suffix must not be empty\n" +
		"markers.fragment must name at least one attribute"

	for range 20 {
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, want, err.Error())
	}
}
