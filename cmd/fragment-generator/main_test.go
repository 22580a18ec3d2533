package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `declarations:
  - name: AddFragmentProfile
    location: {file: Extensions.cs, line: 7, column: 32}
    markers: [{kind: extension-point}]
    symbol:
      containing_type: {namespace: App, name: Extensions}
      accessibility: public
      static: true
      partial_definition: true
      extension: true
      returns_void: true
      parameters:
        - {name: expression, type: AutoMapper.IMapperConfigurationExpression}
  - name: Configure
    location: {file: Parts.cs, line: 5, column: 24}
    markers: [{kind: fragment}]
    symbol:
      containing_type: {namespace: App, name: Parts}
      accessibility: public
      static: true
      returns_void: true
      parameters:
        - {name: config, type: AutoMapper.IProfileExpression}
`

const invalidManifest = `declarations:
  - name: Broken
    location: {file: Broken.cs, line: 2, column: 5}
    markers: [{kind: fragment}]
    symbol:
      containing_type: {namespace: App, name: Broken}
      accessibility: public
      returns_void: true
      parameters:
        - {name: config, type: AutoMapper.IProfileExpression}
`

type harness struct {
	dir    string
	config string
}

func newHarness(t *testing.T) harness {
	t.Helper()

	dir := t.TempDir()
	config := filepath.Join(dir, "fragment-generator.toml")
	require.NoError(t, os.WriteFile(config, []byte("[generate]\noutput_dir = \"generated\"\n"), 0o644))

	return harness{dir: dir, config: config}
}

func (h harness) write(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(h.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (h harness) run(args ...string) (string, string, error) {
	cmd := newRootCmd()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", h.config, "--color", "off"}, args...))

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestGen_WritesFiles(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	path := h.write(t, "decls.yaml", validManifest)

	_, stderr, err := h.run("gen", path)
	require.NoError(t, err, stderr)

	content, err := os.ReadFile(filepath.Join(h.dir, "generated", "App_Extensions.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "App.Parts.Configure(expression);")
	assert.Empty(t, stderr)
}

func TestGen_DryRun(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	path := h.write(t, "decls.yaml", validManifest)

	stdout, _, err := h.run("gen", "--dry-run", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "// App_Extensions.g.cs")
	assert.NoDirExists(t, filepath.Join(h.dir, "generated"))
}

func TestGen_ConfiguredSources(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.write(t, "manifests/decls.yaml", validManifest)
	require.NoError(t, os.WriteFile(h.config, []byte(`
[generate]
output_dir = "out"

[sources]
manifests = ["manifests/decls.yaml"]
`), 0o644))

	_, stderr, err := h.run("gen")
	require.NoError(t, err, stderr)

	assert.FileExists(t, filepath.Join(h.dir, "out", "App_Extensions.g.cs"))
}

func TestCheck_ReportsErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	path := h.write(t, "decls.toml", `
[[declarations]]
name = "Broken"

[declarations.location]
file = "Broken.cs"
line = 2

[[declarations.markers]]
kind = "fragment"

[declarations.symbol]
accessibility = "public"
returns_void = true

[declarations.symbol.containing_type]
name = "Broken"

[[declarations.symbol.parameters]]
name = "config"
type = "AutoMapper.IProfileExpression"
`)

	_, stderr, err := h.run("check", "--format", "short", path)
	require.ErrorIs(t, err, errDiagnostics)

	assert.Equal(t, "Broken.cs:2: error: AMFC0003: Config method must be static void. method=[Broken]\n", stderr)
}

func TestCheck_YAMLErrorsJSON(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	path := h.write(t, "bad.yaml", invalidManifest)

	_, stderr, err := h.run("check", "--format", "json", path)
	require.ErrorIs(t, err, errDiagnostics)

	assert.Contains(t, stderr, `"code": "AMFC0003"`)
	assert.Contains(t, stderr, `"errors": 1`)
}

func TestCheck_NoInputs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	_, _, err := h.run("check")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errDiagnostics)
}

func TestScan_CSharpToManifest(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.write(t, "src/Parts.cs", `using AutoMapper;
using AutoMapperFragmentConfig;

namespace App;

public static class Parts
{
    [MapConfig]
    public static void Configure(IProfileExpression config) { }
}
`)

	stdout, _, err := h.run("scan", filepath.Join(h.dir, "src"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "name: Configure")
	assert.Contains(t, stdout, "kind: fragment")
	assert.Contains(t, stdout, "type: AutoMapper.IProfileExpression")

	out := filepath.Join(h.dir, "decls.msgpack")
	_, _, err = h.run("scan", "-o", out, filepath.Join(h.dir, "src"))
	require.NoError(t, err)
	assert.FileExists(t, out)

	stdout, _, err = h.run("scan", "--dump", filepath.Join(h.dir, "src"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configure")
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	path := h.write(t, "decls.yaml", validManifest)

	stdout, _, err := h.run("profiles", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "PROFILE")
	assert.Contains(t, stdout, "_Fragment")
	assert.Contains(t, stdout, "App.Extensions.AddFragmentProfile")
	assert.Contains(t, stdout, "App_Extensions.g.cs")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	stdout, _, err := h.run("version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fragment-generator ")
}

func TestCollectInputs(t *testing.T) {
	t.Parallel()

	in := collectInputs(nil, []string{"a.yaml", "src", "b.msgpack", "File.cs"})
	assert.Equal(t, []string{"a.yaml", "b.msgpack"}, in.manifests)
	assert.Equal(t, []string{"src", "File.cs"}, in.roots)
}

// mapperSource relies on the SDK implicit usings for IServiceProvider.
const mapperSource = `namespace AutoMapperFragmentConfig;

using AutoMapper;

using Microsoft.Extensions.DependencyInjection;

public class ToStringTest
{
    [Fact]
    public void Test1()
    {
        var services = new ServiceCollection();
        services.AddSingleton<IMapper>(static p => new Mapper(new MapperConfiguration(c => c.AddFragmentProfile(p))));
    }
}

public static partial class Extensions
{
    [MapExtension]
    public static partial void AddFragmentProfile(this IMapperConfigurationExpression expression, IServiceProvider provider);
}

public sealed class Controller
{
    [MapConfig]
    public static void ConfigureMapping(IProfileExpression config, IServiceProvider provider)
    {
        var calc = provider.GetRequiredService<ICalc>();
    }
}
`

func TestGen_ImplicitUsings(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.write(t, "src/MapperTest.cs", mapperSource)

	stdout, stderr, err := h.run("gen", "--dry-run", filepath.Join(h.dir, "src"))
	require.NoError(t, err, stderr)
	assert.Empty(t, stderr)

	assert.Contains(t, stdout, "// AutoMapperFragmentConfig_Extensions.g.cs")
	assert.Contains(t, stdout,
		"public static partial void AddFragmentProfile(this AutoMapper.IMapperConfigurationExpression expression, System.IServiceProvider provider)")
	assert.Contains(t, stdout, "AutoMapperFragmentConfig.Controller.ConfigureMapping(expression, provider);")

	require.NoError(t, os.WriteFile(h.config, []byte("[csharp]\nimplicit_usings = []\n"), 0o644))

	_, stderr, err = h.run("check", "--format", "short", filepath.Join(h.dir, "src"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "AMFC0002")
	assert.Contains(t, stderr, "AMFC0004")
}

func TestGen_BadInputDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	good := h.write(t, "decls.yaml", validManifest)
	bad := h.write(t, "bad.yaml", "declarations:\n  - name: A\n    bogus: true\n")
	missing := filepath.Join(h.dir, "missing")

	_, stderr, err := h.run("gen", "--format", "short", bad, good, missing)
	require.ErrorIs(t, err, errDiagnostics)

	assert.FileExists(t, filepath.Join(h.dir, "generated", "App_Extensions.g.cs"))

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 2, stderr)
	assert.True(t, strings.HasPrefix(lines[0], "error: AMFC0100: "+bad), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "error: AMFC0100: "), lines[1])
	assert.Contains(t, lines[1], "missing")
}

func TestScan_EmptyAndMissingRoots(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	empty := filepath.Join(h.dir, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))

	_, stderr, err := h.run("check", "--format", "short", empty)
	require.NoError(t, err)
	assert.Equal(t, empty+": warning: AMFC0101: no C# source files found\n", stderr)

	out := filepath.Join(h.dir, "decls.yaml")
	_, stderr, err = h.run("scan", "--format", "short", "-o", out, filepath.Join(h.dir, "missing"))
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "AMFC0100")
	assert.NoFileExists(t, out)
}

func TestCodes(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	stdout, _, err := h.run("codes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.True(t, strings.HasPrefix(lines[1], "AMFC0001  error"))
	assert.True(t, strings.HasPrefix(lines[8], "AMFC0008  info"))
	assert.True(t, strings.HasPrefix(lines[10], "AMFC0101  warning"))
}

func TestCacheClean(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	path := h.write(t, "decls.yaml", validManifest)
	cacheDir := filepath.Join(h.dir, "cache")

	_, stderr, err := h.run("--cache-dir", cacheDir, "gen", "--cache", "--dry-run", path)
	require.NoError(t, err, stderr)

	entries, err := os.ReadDir(filepath.Join(cacheDir, "results"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	stdout, _, err := h.run("--cache-dir", cacheDir, "cache", "clean")
	require.NoError(t, err)
	assert.Equal(t, "cleared "+cacheDir+"\n", stdout)
	assert.NoDirExists(t, filepath.Join(cacheDir, "results"))
}
