package decl

import (
	"fmt"

	"fragment-generator/internal/common"
)

// MarkerKind tells which role a marker assigns to a declaration.
type MarkerKind int

const (
	_ MarkerKind = iota // zero value is invalid

	// MarkerExtensionPoint marks an incomplete stub the generator completes.
	MarkerExtensionPoint
	// MarkerFragment marks a configuration fragment invoked from an extension point.
	MarkerFragment
)

// String returns the textual form used in manifests.
func (k MarkerKind) String() string {
	switch k {
	case MarkerExtensionPoint:
		return "extension-point"
	case MarkerFragment:
		return "fragment"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MarkerKind) MarshalText() ([]byte, error) {
	if k != MarkerExtensionPoint && k != MarkerFragment {
		return nil, fmt.Errorf("invalid marker kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MarkerKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "extension-point", "extension":
		*k = MarkerExtensionPoint
	case "fragment", "config":
		*k = MarkerFragment
	default:
		return fmt.Errorf("unknown marker kind %q", string(text))
	}

	return nil
}

// Marker is a tag on a declaration with an optional profile-name argument.
type Marker struct {
	Kind MarkerKind `yaml:"kind" toml:"kind" msgpack:"kind"`
	// Profile is nil when the marker was written without an argument.
	Profile *string `yaml:"profile,omitempty" toml:"profile" msgpack:"profile"`
}

// ProfileOr returns the marker argument, or def when the marker has none.
func (m Marker) ProfileOr(def string) string {
	if m.Profile == nil {
		return def
	}

	return *m.Profile
}

// Profile is a convenience for building markers with an explicit argument.
func Profile(name string) *string {
	return &name
}
