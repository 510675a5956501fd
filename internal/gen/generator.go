package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// DefaultHeader marks generated files. Clean only removes files carrying it.
const DefaultHeader = "// Code generated by weakwrap. DO NOT EDIT."

// GeneratedFile represents a generated source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in. For Java output it is
	// relative to the output root.
	Dir string
	// Filename is the base name of the file (e.g. "weakwrapshape.go").
	Filename string
	// Content is the final source text.
	Content []byte
}

// Path returns the file path under root. An absolute Dir ignores root.
func (f *GeneratedFile) Path(root string) string {
	return joinPath(root, f.Dir, f.Filename)
}

// IsGenerated reports whether content starts with a generated-code header.
func IsGenerated(content []byte, header string) bool {
	if header == "" {
		header = DefaultHeader
	}

	return bytes.HasPrefix(content, []byte(header))
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

func headerOrDefault(header string) string {
	if strings.TrimSpace(header) == "" {
		return DefaultHeader
	}

	return header
}
