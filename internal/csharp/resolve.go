package csharp

import (
	"maps"
	"slices"
	"strings"
)

const (
	globalPrefix    = "global::"
	attributeSuffix = "Attribute"
)

// scope is the name-resolution context of a declaration.
type scope struct {
	namespace string
	usings    []string
	aliases   map[string]string
}

// enter returns the scope inside namespace name. Usings and aliases declared
// in the enclosing scope stay visible.
func (s scope) enter(name string) scope {
	ns := name
	if s.namespace != "" {
		ns = s.namespace + "." + name
	}

	return scope{
		namespace: ns,
		usings:    slices.Clone(s.usings),
		aliases:   maps.Clone(s.aliases),
	}
}

// Imports are using directives visible in every file of a project: the
// SDK implicit usings and the global using directives of all files.
type Imports struct {
	Usings  []string
	Aliases map[string]string
}

// Merge adds the directives of o, keeping the first target of an alias.
func (i *Imports) Merge(o Imports) {
	for _, u := range o.Usings {
		if !slices.Contains(i.Usings, u) {
			i.Usings = append(i.Usings, u)
		}
	}

	for alias, target := range o.Aliases {
		if i.Aliases == nil {
			i.Aliases = make(map[string]string)
		}

		if _, ok := i.Aliases[alias]; !ok {
			i.Aliases[alias] = target
		}
	}
}

// scope returns the file scope seeded with the imports.
func (i Imports) scope() scope {
	return scope{
		usings:  slices.Clone(i.Usings),
		aliases: maps.Clone(i.Aliases),
	}
}

func (s *scope) addUsing(ns string) {
	if !slices.Contains(s.usings, ns) {
		s.usings = append(s.usings, ns)
	}
}

func (s *scope) addAlias(alias, target string) {
	if s.aliases == nil {
		s.aliases = make(map[string]string)
	}

	s.aliases[alias] = target
}

// candidates lists the fully-qualified names a written name may refer to,
// most specific first: alias expansion, enclosing namespaces from the
// innermost outwards, using directives, then the name as written.
func (s scope) candidates(name string) []string {
	name = normalizeName(name)

	var out []string

	head, rest, qualified := strings.Cut(name, ".")
	if target, ok := s.aliases[head]; ok {
		if qualified {
			out = append(out, target+"."+rest)
		} else {
			out = append(out, target)
		}
	}

	for ns := s.namespace; ns != ""; {
		out = append(out, ns+"."+name)

		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			break
		}

		ns = ns[:i]
	}

	for _, u := range s.usings {
		out = append(out, u+"."+name)
	}

	return append(out, name)
}

// resolve returns the first candidate of name contained in known, or the
// normalized name when none is.
func (s scope) resolve(name string, known map[string]struct{}) string {
	for _, c := range s.candidates(name) {
		if _, ok := known[c]; ok {
			return c
		}
	}

	return normalizeName(name)
}

// resolveAttribute looks an attribute name up in known, trying the written
// name and the name with the Attribute suffix.
func (s scope) resolveAttribute(name string, known map[string]struct{}) (string, bool) {
	names := []string{name}
	if !strings.HasSuffix(name, attributeSuffix) {
		names = append(names, name+attributeSuffix)
	}

	for _, n := range names {
		for _, c := range s.candidates(n) {
			if _, ok := known[c]; ok {
				return c, true
			}
		}
	}

	return "", false
}

// normalizeName drops whitespace, the global:: qualifier and a nullable
// annotation.
func normalizeName(name string) string {
	name = strings.Join(strings.Fields(name), "")
	name = strings.TrimPrefix(name, globalPrefix)

	return strings.TrimSuffix(name, "?")
}

func setOf(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return set
}
