package diagnostic

import (
	"fmt"

	"fragment-generator/internal/decl"
)

// Info is an unrendered diagnostic: a Kind, where it happened, and the
// arguments for the Kind's message template.
type Info struct {
	Kind     Kind
	Location decl.Location
	// Args fill the descriptor's MessageFormat.
	Args []string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// NewInfo builds an Info for a member name.
func NewInfo(kind Kind, loc decl.Location, name string) *Info {
	return &Info{Kind: kind, Location: loc, Args: []string{name}}
}

// Diagnostic renders the Info with its descriptor.
func (i *Info) Diagnostic() Diagnostic {
	desc := MustLookup(i.Kind)

	args := make([]any, len(i.Args))
	for n, a := range i.Args {
		args[n] = a
	}

	return Diagnostic{
		Severity:    desc.Severity,
		Kind:        i.Kind,
		Code:        desc.ID,
		Message:     fmt.Sprintf(desc.MessageFormat, args...),
		Location:    i.Location,
		Suggestions: append([]string(nil), i.Suggestions...),
	}
}
