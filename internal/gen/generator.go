package gen

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"fragment-generator/internal/group"
	"fragment-generator/internal/model"
)

const indentUnit = "    "

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Contracts supplies the parameter types written into completed stubs.
	Contracts model.Contracts
	// ScopeMethod is called on the receiver to open the profile scope.
	ScopeMethod string
	// FileSuffix is appended to every generated filename.
	FileSuffix string
	// OutputDir is the directory where generated files are written.
	OutputDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Contracts:   model.DefaultContracts(),
		ScopeMethod: "CreateProfile",
		FileSuffix:  ".g.cs",
		OutputDir:   "./generated",
	}
}

// Generator renders groups into source files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents one generated source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "App_Mapping_Extensions.g.cs").
	Filename string `msgpack:"filename"`
	// Content is the rendered source.
	Content []byte `msgpack:"content"`
}

// Filename returns the output filename for an extension point.
func (g *Generator) Filename(ep model.ExtensionPointModel) string {
	return Filename(ep.Namespace, ep.ClassName, g.config.FileSuffix)
}

// Generate renders one unit completing the extension points of groups.
// All groups must share a containing type; each becomes one method of the
// type declaration, in order.
func (g *Generator) Generate(groups ...group.Group) (*GeneratedFile, error) {
	if len(groups) == 0 {
		return nil, errors.New("no extension points to generate")
	}

	first := groups[0].ExtensionPoint

	data := g.buildTemplateData(groups)

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", first.MethodName, err)
	}

	return &GeneratedFile{
		Filename: g.Filename(first),
		Content:  buf.Bytes(),
	}, nil
}

// templateData holds everything the unit template prints.
type templateData struct {
	Namespace   string
	TypeKeyword string
	ClassName   string
	ScopeMethod string
	Methods     []methodData

	// I0..I3 are the indents of the type, member, statement and callback
	// body levels; they shift by one unit inside a namespace block.
	I0, I1, I2, I3 string
}

// methodData is one completed stub.
type methodData struct {
	Accessibility  string
	MethodName     string
	Parameters     string
	Receiver       string
	ProfileLiteral string
	LambdaParam    string
	Calls          []string
}

func (g *Generator) buildTemplateData(groups []group.Group) *templateData {
	ep := groups[0].ExtensionPoint

	base := 0
	if ep.Namespace != "" {
		base = 1
	}

	indent := func(level int) string {
		return strings.Repeat(indentUnit, base+level)
	}

	typeKeyword := "class"
	if ep.IsValueType {
		typeKeyword = "struct"
	}

	methods := make([]methodData, 0, len(groups))
	for _, grp := range groups {
		methods = append(methods, g.buildMethod(grp))
	}

	return &templateData{
		Namespace:   ep.Namespace,
		TypeKeyword: typeKeyword,
		ClassName:   ep.ClassName,
		ScopeMethod: g.config.ScopeMethod,
		Methods:     methods,
		I0:          indent(0),
		I1:          indent(1),
		I2:          indent(2),
		I3:          indent(3),
	}
}

func (g *Generator) buildMethod(grp group.Group) methodData {
	ep := grp.ExtensionPoint

	params := "this " + g.config.Contracts.ConfigurationBuilder + " " + ep.ReceiverParameter
	if ep.HasProvider() {
		params += ", " + g.config.Contracts.ServiceProvider + " " + ep.ProviderParameter
	}

	calls := make([]string, 0, len(grp.Fragments))
	for _, f := range grp.Fragments {
		args := ep.ReceiverParameter
		if f.HasProviderParameter {
			args += ", " + ep.ProviderParameter
		}

		calls = append(calls, f.QualifiedMethod()+"("+args+")")
	}

	return methodData{
		Accessibility:  ep.Accessibility.Keyword(),
		MethodName:     ep.MethodName,
		Parameters:     params,
		Receiver:       ep.ReceiverParameter,
		ProfileLiteral: StringLiteral(ep.ProfileName),
		LambdaParam:    lambdaParam(ep.ReceiverParameter, ep.ProviderParameter),
		Calls:          calls,
	}
}

// lambdaParam picks the callback parameter name, avoiding the stub's own
// parameter names.
func lambdaParam(taken ...string) string {
	name := "x"
	for n := 1; slices.Contains(taken, name); n++ {
		name = "x" + strconv.Itoa(n)
	}

	return name
}

// unitTemplate prints one type with its completed stubs, separated by blank
// lines. Whitespace is significant: the output must be byte-identical across
// runs.
var unitTemplate = template.Must(template.New("unit").Parse(`// <auto-generated />
#nullable enable

{{if .Namespace}}namespace {{.Namespace}}
{
{{end}}{{.I0}}partial {{.TypeKeyword}} {{.ClassName}}
{{.I0}}{
{{range $i, $m := .Methods}}{{if $i}}
{{end}}{{$.I1}}{{if $m.Accessibility}}{{$m.Accessibility}} {{end}}static partial void {{$m.MethodName}}({{$m.Parameters}})
{{$.I1}}{
{{$.I2}}{{$m.Receiver}}.{{$.ScopeMethod}}({{$m.ProfileLiteral}}, {{$m.LambdaParam}} =>
{{$.I2}}{
{{range $m.Calls}}{{$.I3}}{{.}};
{{end}}{{$.I2}}});
{{$.I1}}}
{{end}}{{.I0}}}
{{if .Namespace}}}
{{end}}`))
