package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a manifest.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatOf picks the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// LoadFile reads and parses a manifest file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	f, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f.Path = path

	return f, nil
}

// LoadFiles reads every manifest in paths, stopping at the first error.
func LoadFiles(paths []string) ([]*File, error) {
	files := make([]*File, 0, len(paths))

	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	return files, nil
}

// Parse decodes manifest data and applies defaults.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown manifest format %d", format)
	}

	applyDefaults(&f)

	return &f, nil
}

const varargsSuffix = "..."

// applyDefaults fills in optional fields.
func applyDefaults(f *File) {
	for i := range f.Types {
		t := &f.Types[i]
		if t.Kind == "" {
			t.Kind = kindClass
		}

		for j := range t.Methods {
			m := &t.Methods[j]
			if m.Returns == "" {
				m.Returns = "void"
			}

			for k := range m.Parameters {
				p := &m.Parameters[k]
				if p.Name == "" {
					p.Name = fmt.Sprintf("arg%d", k)
				}

				if k == len(m.Parameters)-1 && strings.HasSuffix(p.Type, varargsSuffix) {
					p.Type = strings.TrimSuffix(p.Type, varargsSuffix) + "[]"
					m.Variadic = true
				}
			}
		}
	}
}
