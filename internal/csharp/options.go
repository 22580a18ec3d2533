package csharp

import "fragment-generator/internal/model"

// Options configures a Frontend.
type Options struct {
	// ExtensionPointAttributes are the fully-qualified attribute names that
	// mark extension points.
	ExtensionPointAttributes []string
	// FragmentAttributes are the fully-qualified attribute names that mark
	// fragments.
	FragmentAttributes []string
	// KnownTypes are the fully-qualified type names parameter types resolve to.
	KnownTypes []string
	// ImplicitUsings are namespaces imported into every file, as the .NET SDK
	// does with ImplicitUsings enabled.
	ImplicitUsings []string
}

// DefaultImplicitUsings returns the namespaces Microsoft.NET.Sdk imports
// implicitly.
func DefaultImplicitUsings() []string {
	return []string{
		"System",
		"System.Collections.Generic",
		"System.IO",
		"System.Linq",
		"System.Net.Http",
		"System.Threading",
		"System.Threading.Tasks",
	}
}

// DefaultOptions returns the AutoMapper fragment attribute names, the
// default contract types and the SDK implicit usings.
func DefaultOptions() Options {
	return Options{
		ExtensionPointAttributes: []string{
			"AutoMapperFragmentConfig.MapExtensionAttribute",
			"AutoMapperFragmentConfig.MapConfigExtensionAttribute",
		},
		FragmentAttributes: []string{
			"AutoMapperFragmentConfig.MapConfigAttribute",
		},
		KnownTypes:     model.DefaultContracts().Names(),
		ImplicitUsings: DefaultImplicitUsings(),
	}
}
