package decl

import (
	"fmt"
	"strings"
)

// Shape is the syntactic form of a declaration.
type Shape string

const (
	ShapeMethod        Shape = "method"
	ShapeLocalFunction Shape = "local-function"
	ShapeProperty      Shape = "property"
	ShapeField         Shape = "field"
	ShapeType          Shape = "type"
)

// Location points at a declaration in its source file. Line and Column are
// 1-based; zero means unknown.
type Location struct {
	File   string `yaml:"file,omitempty"   toml:"file"   msgpack:"file"   json:"file"`
	Line   int    `yaml:"line,omitempty"   toml:"line"   msgpack:"line"   json:"line,omitempty"`
	Column int    `yaml:"column,omitempty" toml:"column" msgpack:"column" json:"column,omitempty"`
}

// IsZero reports whether the location carries no information.
func (l Location) IsZero() bool {
	return l == Location{}
}

// String formats the location as file:line:column, dropping unknown parts.
func (l Location) String() string {
	switch {
	case l.IsZero():
		return ""
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// TypeRef identifies the type that contains a declaration.
type TypeRef struct {
	// Namespace is empty for types in the global namespace.
	Namespace string `yaml:"namespace,omitempty" toml:"namespace" msgpack:"namespace"`
	// Name is the simple name, including any type parameter list (e.g. "Cache<T>").
	Name string `yaml:"name" toml:"name" msgpack:"name"`
	// Outer lists enclosing type names, outermost first, for nested types.
	Outer []string `yaml:"outer,omitempty" toml:"outer" msgpack:"outer"`
	// ValueType is true for structs and record structs.
	ValueType bool `yaml:"value_type,omitempty" toml:"value_type" msgpack:"value_type"`
}

// FullName returns the fully-qualified display name of the type.
func (t TypeRef) FullName() string {
	parts := make([]string, 0, len(t.Outer)+2)
	if t.Namespace != "" {
		parts = append(parts, t.Namespace)
	}

	parts = append(parts, t.Outer...)
	parts = append(parts, t.Name)

	return strings.Join(parts, ".")
}

// Parameter is one resolved method parameter.
type Parameter struct {
	Name string `yaml:"name" toml:"name" msgpack:"name"`
	// Type is the fully-qualified display name of the parameter type.
	Type string `yaml:"type" toml:"type" msgpack:"type"`
}

// Symbol holds the semantic facts of a resolved declaration.
type Symbol struct {
	ContainingType    TypeRef       `yaml:"containing_type"              toml:"containing_type"    msgpack:"containing_type"`
	Accessibility     Accessibility `yaml:"accessibility"                toml:"accessibility"      msgpack:"accessibility"`
	Static            bool          `yaml:"static,omitempty"             toml:"static"             msgpack:"static"`
	PartialDefinition bool          `yaml:"partial_definition,omitempty" toml:"partial_definition" msgpack:"partial_definition"`
	Extension         bool          `yaml:"extension,omitempty"          toml:"extension"          msgpack:"extension"`
	ReturnsVoid       bool          `yaml:"returns_void,omitempty"       toml:"returns_void"       msgpack:"returns_void"`
	Parameters        []Parameter   `yaml:"parameters,omitempty"         toml:"parameters"         msgpack:"parameters"`
}

// Declaration is a single registered declaration.
type Declaration struct {
	Name     string   `yaml:"name"               toml:"name"     msgpack:"name"`
	Shape    Shape    `yaml:"shape,omitempty"    toml:"shape"    msgpack:"shape"`
	Location Location `yaml:"location,omitempty" toml:"location" msgpack:"location"`
	Markers  []Marker `yaml:"markers,omitempty"  toml:"markers"  msgpack:"markers"`
	// Symbol is nil when the host could not resolve the declaration.
	Symbol *Symbol `yaml:"symbol,omitempty" toml:"symbol" msgpack:"symbol"`
}

// Marker returns the first marker of the given kind.
func (d *Declaration) Marker(kind MarkerKind) (Marker, bool) {
	for _, m := range d.Markers {
		if m.Kind == kind {
			return m, true
		}
	}

	return Marker{}, false
}

// HasMarker reports whether the declaration carries a marker of the given kind.
func (d *Declaration) HasMarker(kind MarkerKind) bool {
	_, ok := d.Marker(kind)
	return ok
}
