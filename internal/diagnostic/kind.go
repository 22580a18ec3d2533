package diagnostic

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies a class of diagnostic.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	InvalidExtensionMethodDefinition
	InvalidExtensionMethodParameter
	InvalidConfigMethodDefinition
	InvalidConfigMethodParameter
	ProviderParameterRequired
	UnresolvedDeclaration
	DuplicateOutputFilename
	OrphanFragment

	// KindTotal is the number of defined kinds plus the invalid zero value.
	KindTotal = int(iota)
)
