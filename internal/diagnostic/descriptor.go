package diagnostic

import "fmt"

// Descriptor is the static metadata of a diagnostic Kind.
type Descriptor struct {
	ID            string
	Title         string
	MessageFormat string // a single %s receives the offending member or profile name
	Category      string
	Severity      DiagnosticSeverity
}

const categoryUsage = "Usage"

var descriptors = [KindTotal]Descriptor{
	InvalidExtensionMethodDefinition: {
		ID:            "AMFC0001",
		Title:         "Invalid extension method definition",
		MessageFormat: "Extension method must be static partial void extension method. method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticError,
	},
	InvalidExtensionMethodParameter: {
		ID:            "AMFC0002",
		Title:         "Invalid extension method parameter",
		MessageFormat: "Parameter type must be configuration builder and service provider(option). method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticError,
	},
	InvalidConfigMethodDefinition: {
		ID:            "AMFC0003",
		Title:         "Invalid config method definition",
		MessageFormat: "Config method must be static void. method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticError,
	},
	InvalidConfigMethodParameter: {
		ID:            "AMFC0004",
		Title:         "Invalid config method parameter",
		MessageFormat: "Parameter type must be profile builder and service provider(option). method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticError,
	},
	ProviderParameterRequired: {
		ID:            "AMFC0005",
		Title:         "Service provider parameter required",
		MessageFormat: "Service provider parameter required for extension. method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticWarning,
	},
	UnresolvedDeclaration: {
		ID:            "AMFC0006",
		Title:         "Unresolved declaration",
		MessageFormat: "Declaration could not be resolved. method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticWarning,
	},
	DuplicateOutputFilename: {
		ID:            "AMFC0007",
		Title:         "Duplicate output filename",
		MessageFormat: "Generated filename collides with an earlier extension point. method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticError,
	},
	OrphanFragment: {
		ID:            "AMFC0008",
		Title:         "Fragment without extension point",
		MessageFormat: "No extension point declares the fragment profile. method=[%s]",
		Category:      categoryUsage,
		Severity:      DiagnosticInfo,
	},
}

// Lookup returns the descriptor registered for kind.
func Lookup(kind Kind) (Descriptor, bool) {
	if kind <= 0 || int(kind) >= KindTotal {
		return Descriptor{}, false
	}

	return descriptors[kind], true
}

// MustLookup is like Lookup but panics for unregistered kinds.
func MustLookup(kind Kind) Descriptor {
	d, ok := Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("diagnostic: no descriptor for %v", kind))
	}

	return d
}

// Descriptors returns all registered descriptors in Kind order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, KindTotal-1)
	for k := Kind(1); int(k) < KindTotal; k++ {
		out = append(out, descriptors[k])
	}

	return out
}
