package model

import "fragment-generator/internal/decl"

// DefaultProfile is the profile name of markers written without an argument.
const DefaultProfile = "_Fragment"

// Contracts names the external types whose identity is checked by exact,
// fully-qualified textual match.
type Contracts struct {
	ConfigurationBuilder string `toml:"configuration_builder" msgpack:"configuration_builder"`
	ProfileBuilder       string `toml:"profile_builder"       msgpack:"profile_builder"`
	ServiceProvider      string `toml:"service_provider"      msgpack:"service_provider"`
}

// DefaultContracts returns the AutoMapper contract names.
func DefaultContracts() Contracts {
	return Contracts{
		ConfigurationBuilder: "AutoMapper.IMapperConfigurationExpression",
		ProfileBuilder:       "AutoMapper.IProfileExpression",
		ServiceProvider:      "System.IServiceProvider",
	}
}

// Names returns the contract type names in declaration order.
func (c Contracts) Names() []string {
	return []string{c.ConfigurationBuilder, c.ProfileBuilder, c.ServiceProvider}
}

// ExtensionPointModel describes a stub to be completed.
type ExtensionPointModel struct {
	// Namespace of the containing type; empty for the global namespace.
	Namespace     string
	ClassName     string
	IsValueType   bool
	Accessibility decl.Accessibility
	MethodName    string
	// ReceiverParameter is the name of the configuration-builder parameter.
	ReceiverParameter string
	// ProviderParameter is empty when the stub takes no service provider.
	ProviderParameter string
	ProfileName       string
	Location          decl.Location
}

// HasProvider reports whether the stub declares a service-provider parameter.
func (m ExtensionPointModel) HasProvider() bool {
	return m.ProviderParameter != ""
}

// FragmentModel describes a configuration fragment.
type FragmentModel struct {
	FullClassName        string
	MethodName           string
	HasProviderParameter bool
	ProfileName          string
	Location             decl.Location
}

// QualifiedMethod returns FullClassName.MethodName.
func (m FragmentModel) QualifiedMethod() string {
	return m.FullClassName + "." + m.MethodName
}
