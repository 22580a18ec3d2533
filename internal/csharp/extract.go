package csharp

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"fragment-generator/internal/decl"
)

// modifierKeywords are the declaration modifiers the extractor records.
var modifierKeywords = map[string]struct{}{
	"public": {}, "protected": {}, "internal": {}, "private": {},
	"static": {}, "partial": {}, "abstract": {}, "virtual": {},
	"override": {}, "sealed": {}, "extern": {}, "async": {},
	"unsafe": {}, "new": {}, "readonly": {},
}

var typeDeclarations = map[string]struct{}{
	"class_declaration":         {},
	"struct_declaration":        {},
	"record_declaration":        {},
	"record_struct_declaration": {},
	"interface_declaration":     {},
}

// memberShapes maps non-method members to the shape recorded when they
// carry a marker.
var memberShapes = map[string]decl.Shape{
	"property_declaration":            decl.ShapeProperty,
	"indexer_declaration":             decl.ShapeProperty,
	"event_declaration":               decl.ShapeProperty,
	"field_declaration":               decl.ShapeField,
	"event_field_declaration":         decl.ShapeField,
	"constructor_declaration":         decl.ShapeType,
	"destructor_declaration":          decl.ShapeType,
	"operator_declaration":            decl.ShapeType,
	"conversion_operator_declaration": decl.ShapeType,
	"delegate_declaration":            decl.ShapeType,
	"enum_declaration":                decl.ShapeType,
}

// typeFrame is one enclosing type declaration.
type typeFrame struct {
	name      string
	valueType bool
}

// extractor walks one syntax tree.
type extractor struct {
	ctx  context.Context
	src  []byte
	file string

	extensionPoints map[string]struct{}
	fragments       map[string]struct{}
	knownTypes      map[string]struct{}

	out []decl.Declaration
}

func nodeText(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}

	return string(src[n.StartByte():n.EndByte()])
}

func (e *extractor) location(n *sitter.Node) decl.Location {
	loc := decl.Location{File: e.file}

	p := n.StartPoint()

	if line, err := safecast.Conv[int](p.Row); err == nil {
		loc.Line = line + 1
	}

	if col, err := safecast.Conv[int](p.Column); err == nil {
		loc.Column = col + 1
	}

	return loc
}

// walk visits the members of a compilation unit, namespace or type body.
func (e *extractor) walk(n *sitter.Node, sc *scope, types []typeFrame) error {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if err := e.ctx.Err(); err != nil {
			return err
		}

		child := n.NamedChild(i)
		kind := child.Type()

		switch {
		case kind == "using_directive":
			e.using(child, sc)
		case kind == "namespace_declaration":
			inner := sc.enter(nodeText(child.ChildByFieldName("name"), e.src))

			body := child.ChildByFieldName("body")
			if body == nil {
				body = child
			}

			if err := e.walk(body, &inner, nil); err != nil {
				return err
			}
		case kind == "file_scoped_namespace_declaration":
			// Later siblings belong to the namespace; some grammar versions
			// also nest them under this node.
			*sc = sc.enter(nodeText(child.ChildByFieldName("name"), e.src))

			if err := e.walk(child, sc, types); err != nil {
				return err
			}
		case isTypeDeclaration(kind):
			if err := e.typeDeclaration(child, sc, types); err != nil {
				return err
			}
		case kind == "method_declaration":
			e.method(child, sc, types)
		case kind == "local_function_statement":
			e.marked(child, sc, decl.ShapeLocalFunction)
		case kind == "global_statement", kind == "declaration_list", kind == "ERROR":
			if err := e.walk(child, sc, types); err != nil {
				return err
			}
		default:
			if shape, ok := memberShapes[kind]; ok {
				e.marked(child, sc, shape)
			}
		}
	}

	return nil
}

func isTypeDeclaration(kind string) bool {
	_, ok := typeDeclarations[kind]
	return ok
}

func (e *extractor) using(n *sitter.Node, sc *scope) {
	if u, ok := parseUsing(n, e.src); ok {
		u.apply(sc)
	}
}

// usingDirective is a namespace import or alias.
type usingDirective struct {
	alias  string
	target string
	global bool
}

// parseUsing reads a using directive. Static usings import members rather
// than names and are skipped.
func parseUsing(n *sitter.Node, src []byte) (usingDirective, bool) {
	var (
		u      usingDirective
		static bool
	)

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)

		switch child.Type() {
		case "global":
			u.global = true
		case "static":
			static = true
		case "name_equals":
			u.alias = nodeText(child.NamedChild(0), src)
		case "=":
			u.alias = u.target
			u.target = ""
		case "identifier", "qualified_name", "alias_qualified_name", "generic_name":
			u.target = nodeText(child, src)
		}
	}

	if aliasNode := n.ChildByFieldName("alias"); aliasNode != nil {
		u.alias = nodeText(aliasNode, src)
	}

	if u.target == "" || static {
		return u, false
	}

	u.target = normalizeName(u.target)

	return u, true
}

func (u usingDirective) apply(sc *scope) {
	if u.alias != "" {
		sc.addAlias(u.alias, u.target)
		return
	}

	sc.addUsing(u.target)
}

func (e *extractor) typeDeclaration(n *sitter.Node, sc *scope, types []typeFrame) error {
	name := nodeText(n.ChildByFieldName("name"), e.src)
	if params := n.ChildByFieldName("type_parameters"); params != nil {
		name += strings.Join(strings.Fields(nodeText(params, e.src)), "")
	}

	frame := typeFrame{name: name, valueType: isValueType(n)}

	e.marked(n, sc, decl.ShapeType)

	body := n.ChildByFieldName("body")
	if body == nil {
		body = firstChildOfType(n, "declaration_list")
	}

	if body == nil {
		return nil
	}

	inner := append(append([]typeFrame(nil), types...), frame)

	return e.walk(body, sc, inner)
}

func isValueType(n *sitter.Node) bool {
	switch n.Type() {
	case "struct_declaration", "record_struct_declaration":
		return true
	case "record_declaration":
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "struct" {
				return true
			}
		}
	}

	return false
}

func firstChildOfType(n *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == kind {
			return c
		}
	}

	return nil
}

// attribute is one attribute applied to a declaration.
type attribute struct {
	name    string
	arg     *string
	literal bool // arg is absent or a string literal
}

func (e *extractor) attributes(n *sitter.Node) []attribute {
	var out []attribute

	for i := 0; i < int(n.NamedChildCount()); i++ {
		list := n.NamedChild(i)
		if list.Type() != "attribute_list" {
			continue
		}

		for j := 0; j < int(list.NamedChildCount()); j++ {
			a := list.NamedChild(j)
			if a.Type() != "attribute" {
				continue
			}

			out = append(out, e.attribute(a))
		}
	}

	return out
}

func (e *extractor) attribute(n *sitter.Node) attribute {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = n.NamedChild(0)
	}

	attr := attribute{name: nodeText(nameNode, e.src), literal: true}

	args := firstChildOfType(n, "attribute_argument_list")
	if args == nil {
		return attr
	}

	arg := firstChildOfType(args, "attribute_argument")
	if arg == nil {
		return attr
	}

	count := int(arg.NamedChildCount())
	if count == 0 {
		return attr
	}

	expr := arg.NamedChild(count - 1)

	value, ok := stringLiteral(nodeText(expr, e.src))
	if !ok {
		attr.literal = false
		return attr
	}

	attr.arg = &value

	return attr
}

// stringLiteral decodes a regular or verbatim C# string literal.
func stringLiteral(text string) (string, bool) {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, `@"`) && strings.HasSuffix(text, `"`) && len(text) >= 3:
		return strings.ReplaceAll(text[2:len(text)-1], `""`, `"`), true
	case strings.HasPrefix(text, `"""`):
		return "", false
	case strings.HasPrefix(text, `"`):
		s, err := strconv.Unquote(text)
		if err != nil {
			return "", false
		}

		return s, true
	default:
		return "", false
	}
}

// markers maps the attributes of n to markers. ok is false when a marker
// attribute has an argument that is not a string literal.
func (e *extractor) markers(n *sitter.Node, sc *scope) ([]decl.Marker, bool) {
	var (
		out []decl.Marker
		ok  = true
	)

	for _, a := range e.attributes(n) {
		var kind decl.MarkerKind

		if _, found := sc.resolveAttribute(a.name, e.extensionPoints); found {
			kind = decl.MarkerExtensionPoint
		} else if _, found := sc.resolveAttribute(a.name, e.fragments); found {
			kind = decl.MarkerFragment
		} else {
			continue
		}

		if !a.literal {
			ok = false
		}

		out = append(out, decl.Marker{Kind: kind, Profile: a.arg})
	}

	return out, ok
}

// declarationName returns the identifier node naming n. Fields and events
// are named by their first variable declarator.
func declarationName(n *sitter.Node) *sitter.Node {
	if name := n.ChildByFieldName("name"); name != nil {
		return name
	}

	if vars := firstChildOfType(n, "variable_declaration"); vars != nil {
		if d := firstChildOfType(vars, "variable_declarator"); d != nil {
			if name := d.ChildByFieldName("name"); name != nil {
				return name
			}

			if d.NamedChildCount() > 0 {
				return d.NamedChild(0)
			}
		}
	}

	return n
}

// marked records a non-method declaration that carries a marker.
func (e *extractor) marked(n *sitter.Node, sc *scope, shape decl.Shape) {
	markers, _ := e.markers(n, sc)
	if len(markers) == 0 {
		return
	}

	nameNode := declarationName(n)

	e.out = append(e.out, decl.Declaration{
		Name:     nodeText(nameNode, e.src),
		Shape:    shape,
		Location: e.location(nameNode),
		Markers:  markers,
	})
}

func (e *extractor) method(n *sitter.Node, sc *scope, types []typeFrame) {
	e.localFunctions(n.ChildByFieldName("body"), sc)

	markers, literal := e.markers(n, sc)
	if len(markers) == 0 {
		return
	}

	nameNode := declarationName(n)

	d := decl.Declaration{
		Name:     nodeText(nameNode, e.src),
		Shape:    decl.ShapeMethod,
		Location: e.location(nameNode),
		Markers:  markers,
	}

	if literal && len(types) > 0 && !n.HasError() {
		d.Symbol = e.symbol(n, sc, types)
	}

	e.out = append(e.out, d)
}

// localFunctions records marked local functions anywhere inside body.
func (e *extractor) localFunctions(body *sitter.Node, sc *scope) {
	if body == nil {
		return
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "local_function_statement" {
			e.marked(child, sc, decl.ShapeLocalFunction)
		}

		e.localFunctions(child, sc)
	}
}

func (e *extractor) symbol(n *sitter.Node, sc *scope, types []typeFrame) *decl.Symbol {
	mods := modifiers(n, e.src)

	access, ok := decl.ParseAccessibility(slices.Collect(maps.Keys(mods)))
	if !ok {
		access = decl.AccessibilityNotApplicable
	}

	_, static := mods["static"]
	_, partial := mods["partial"]

	hasBody := n.ChildByFieldName("body") != nil ||
		firstChildOfType(n, "block") != nil ||
		firstChildOfType(n, "arrow_expression_clause") != nil

	returns := n.ChildByFieldName("returns")
	if returns == nil {
		returns = n.ChildByFieldName("type")
	}

	params, extension := e.parameters(n.ChildByFieldName("parameters"), sc)

	inner := types[len(types)-1]

	outer := make([]string, 0, len(types)-1)
	for _, t := range types[:len(types)-1] {
		outer = append(outer, t.name)
	}

	if len(outer) == 0 {
		outer = nil
	}

	return &decl.Symbol{
		ContainingType: decl.TypeRef{
			Namespace: sc.namespace,
			Name:      inner.name,
			Outer:     outer,
			ValueType: inner.valueType,
		},
		Accessibility:     access,
		Static:            static,
		PartialDefinition: partial && !hasBody,
		Extension:         extension,
		ReturnsVoid:       strings.TrimSpace(nodeText(returns, e.src)) == "void",
		Parameters:        params,
	}
}

// modifiers collects the modifier keywords of a declaration. Grammar
// versions differ in whether modifiers are wrapped in "modifier" nodes.
func modifiers(n *sitter.Node, src []byte) map[string]struct{} {
	out := make(map[string]struct{})

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)

		text := strings.TrimSpace(nodeText(child, src))
		if child.Type() != "modifier" && child.IsNamed() {
			continue
		}

		if _, ok := modifierKeywords[text]; ok {
			out[text] = struct{}{}
		}
	}

	return out
}

// parameters returns the resolved parameters of list and whether the first
// one carries the this modifier.
func (e *extractor) parameters(list *sitter.Node, sc *scope) ([]decl.Parameter, bool) {
	if list == nil {
		return nil, false
	}

	var (
		params    []decl.Parameter
		extension bool
	)

	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		if p.Type() != "parameter" {
			continue
		}

		typeNode := p.ChildByFieldName("type")

		if len(params) == 0 && hasThis(p, typeNode, e.src) {
			extension = true
		}

		params = append(params, decl.Parameter{
			Name: nodeText(p.ChildByFieldName("name"), e.src),
			Type: sc.resolve(nodeText(typeNode, e.src), e.knownTypes),
		})
	}

	return params, extension
}

// hasThis reports whether a "this" modifier precedes the parameter type.
func hasThis(p, typeNode *sitter.Node, src []byte) bool {
	for i := 0; i < int(p.ChildCount()); i++ {
		child := p.Child(i)
		if typeNode != nil && child.StartByte() >= typeNode.StartByte() {
			return false
		}

		if strings.TrimSpace(nodeText(child, src)) == "this" {
			return true
		}
	}

	return false
}

// Extract parses one source file with parser and returns its marked
// declarations in source order. file is recorded in locations. Names resolve
// against the implicit usings and the file's own directives.
func (f *Frontend) Extract(ctx context.Context, parser *sitter.Parser, src []byte, file string) ([]decl.Declaration, error) {
	return f.extract(ctx, parser, src, file, f.implicit())
}

func (f *Frontend) extract(ctx context.Context, parser *sitter.Parser, src []byte, file string, imports Imports) ([]decl.Declaration, error) {
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	defer tree.Close()

	e := &extractor{
		ctx:             ctx,
		src:             src,
		file:            file,
		extensionPoints: f.extensionPoints,
		fragments:       f.fragments,
		knownTypes:      f.knownTypes,
	}

	sc := imports.scope()
	if err := e.walk(tree.RootNode(), &sc, nil); err != nil {
		return nil, err
	}

	return e.out, nil
}

// Globals returns the global using directives of one source file. They may
// only appear at the top of a compilation unit.
func (f *Frontend) Globals(ctx context.Context, parser *sitter.Parser, src []byte, file string) (Imports, error) {
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return Imports{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	defer tree.Close()

	var imports Imports

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() != "using_directive" {
			continue
		}

		u, ok := parseUsing(n, src)
		if !ok || !u.global {
			continue
		}

		if u.alias != "" {
			imports.Merge(Imports{Aliases: map[string]string{u.alias: u.target}})
			continue
		}

		imports.Merge(Imports{Usings: []string{u.target}})
	}

	return imports, nil
}
