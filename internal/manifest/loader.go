package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"fragment-generator/internal/decl"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatMsgpack Format = "msgpack"
)

// Manifest is a declaration list.
type Manifest struct {
	Version      string             `yaml:"version"      toml:"version"      msgpack:"version"`
	Declarations []decl.Declaration `yaml:"declarations" toml:"declarations" msgpack:"declarations"`
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q", filepath.Ext(path))
	}
}

// LoadFile loads and parses a manifest, choosing the format by extension.
func LoadFile(path string) (*Manifest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse decodes manifest data in the given format.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest TOML: %w", err)
		}

		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown manifest keys: %v", undecoded)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}

	applyDefaults(&m)

	if err := validate(&m); err != nil {
		return nil, err
	}

	return &m, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = "1"
	}

	for i := range m.Declarations {
		d := &m.Declarations[i]
		if d.Shape == "" {
			d.Shape = decl.ShapeMethod
		}
	}
}

const pathSeparators = "/\\"

func validate(m *Manifest) error {
	if m.Version != "1" {
		return fmt.Errorf("unsupported manifest version %q", m.Version)
	}

	for i, d := range m.Declarations {
		if d.Name == "" {
			return fmt.Errorf("declaration %d: missing name", i)
		}

		for _, mk := range d.Markers {
			if mk.Kind != decl.MarkerExtensionPoint && mk.Kind != decl.MarkerFragment {
				return fmt.Errorf("declaration %s: marker without kind", d.Name)
			}
		}

		if d.Symbol == nil {
			continue
		}

		// Type names end up in output filenames.
		t := d.Symbol.ContainingType
		for _, name := range append([]string{t.Namespace, t.Name}, t.Outer...) {
			if strings.ContainsAny(name, pathSeparators) {
				return fmt.Errorf("declaration %s: type name %q contains a path separator", d.Name, name)
			}
		}
	}

	return nil
}

// Marshal serializes a manifest in the given format.
func Marshal(m *Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	case FormatMsgpack:
		return msgpack.Marshal(m)
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
}

// WriteFile writes a manifest to path, choosing the format by extension.
func WriteFile(m *Manifest, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Marshal(m, format)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
