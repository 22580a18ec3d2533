package scan

import (
	"fmt"

	"fragment-generator/internal/common"
	"fragment-generator/internal/decl"
	"fragment-generator/internal/diagnostic"
)

// UnresolvedPolicy decides how declarations without a Symbol are handled.
type UnresolvedPolicy int

const (
	// PolicyDiagnose reports an UnresolvedDeclaration warning.
	PolicyDiagnose UnresolvedPolicy = iota
	// PolicyDrop discards the declaration without a diagnostic.
	PolicyDrop
)

// String returns the configuration spelling of the policy.
func (p UnresolvedPolicy) String() string {
	switch p {
	case PolicyDiagnose:
		return "diagnose"
	case PolicyDrop:
		return "drop"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p UnresolvedPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *UnresolvedPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "diagnose", "":
		*p = PolicyDiagnose
	case "drop":
		*p = PolicyDrop
	default:
		return fmt.Errorf("unknown unresolved policy %q (want diagnose or drop)", string(text))
	}

	return nil
}

// Target is a resolved candidate: the declaration, its symbol and the marker
// that selected it.
type Target struct {
	Declaration decl.Declaration
	Symbol      decl.Symbol
	Marker      decl.Marker
}

// Scanner resolves marked declarations.
type Scanner struct {
	Policy UnresolvedPolicy
}

// NewScanner creates a Scanner with the given policy.
func NewScanner(policy UnresolvedPolicy) *Scanner {
	return &Scanner{Policy: policy}
}

// Candidates returns the method-shaped declarations that carry a marker of
// the given kind, in their original order.
func Candidates(decls []decl.Declaration, kind decl.MarkerKind) []decl.Declaration {
	return common.FilterFunc(decls, func(d decl.Declaration) bool {
		return isMethodShaped(d) && d.HasMarker(kind)
	})
}

// Scan pre-filters decls for kind and resolves every candidate.
func (s *Scanner) Scan(decls []decl.Declaration, kind decl.MarkerKind) []diagnostic.Outcome[Target] {
	candidates := Candidates(decls, kind)

	out := make([]diagnostic.Outcome[Target], 0, len(candidates))
	for _, d := range candidates {
		out = append(out, s.resolve(d, kind))
	}

	return out
}

func (s *Scanner) resolve(d decl.Declaration, kind decl.MarkerKind) diagnostic.Outcome[Target] {
	if d.Symbol == nil {
		if s.Policy == PolicyDrop {
			return diagnostic.Failure[Target](nil)
		}

		return diagnostic.Failure[Target](diagnostic.NewInfo(diagnostic.UnresolvedDeclaration, d.Location, d.Name))
	}

	marker, _ := d.Marker(kind)

	return diagnostic.Success(Target{
		Declaration: d,
		Symbol:      *d.Symbol,
		Marker:      marker,
	})
}

// An empty shape is treated as a method; manifests default it anyway.
func isMethodShaped(d decl.Declaration) bool {
	return d.Shape == decl.ShapeMethod || d.Shape == ""
}
