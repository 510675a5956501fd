package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weakwrap-generator/internal/diagnostic"
)

func validateYAML(t *testing.T, src string) *diagnostic.Diagnostics {
	t.Helper()

	f, err := Parse([]byte(src), FormatYAML)
	require.NoError(t, err)

	f.Path = "test.yaml"

	return Validate([]*File{f})
}

func TestValidate_Valid(t *testing.T) {
	files, err := LoadFiles([]string{"testdata/listeners.yaml", "testdata/listeners.json"})
	require.NoError(t, err)

	diags := Validate(files)

	assert.False(t, diags.HasErrors(), "%v", diags.Error())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		code        string
		suggestions []string
	}{
		{
			name: "unknown kind",
			src:  "types:\n  - name: A\n    kind: interfce\n",
			code: diagnostic.CodeUnknownKind, suggestions: []string{"interface"},
		},
		{
			name: "unknown type modifier",
			src:  "types:\n  - name: A\n    modifiers: [pubic]\n",
			code: diagnostic.CodeUnknownModifier, suggestions: []string{"public"},
		},
		{
			name: "default methods are not supported",
			src:  "types:\n  - name: A\n    kind: interface\n    methods:\n      - name: m\n        modifiers: [default]\n",
			code: diagnostic.CodeUnknownModifier,
		},
		{
			name: "unknown supertype",
			src:  "types:\n  - name: Base\n  - name: A\n    extends: Bse\n",
			code: diagnostic.CodeUnknownSupertype, suggestions: []string{"Base"},
		},
		{
			name: "duplicate type",
			src:  "types:\n  - name: A\n  - name: A\n",
			code: diagnostic.CodeDuplicateType,
		},
		{
			name: "empty name",
			src:  "types:\n  - kind: class\n",
			code: diagnostic.CodeManifest,
		},
		{
			name: "empty nested segment",
			src:  "types:\n  - name: Outer..Inner\n",
			code: diagnostic.CodeManifest,
		},
		{
			name: "variadic without parameters",
			src:  "types:\n  - name: A\n    methods:\n      - name: m\n        variadic: true\n",
			code: diagnostic.CodeManifest,
		},
		{
			name: "variadic without array",
			src:  "types:\n  - name: A\n    methods:\n      - name: m\n        variadic: true\n        parameters: [{name: x, type: int}]\n",
			code: diagnostic.CodeManifest,
		},
		{
			name: "interface extends class",
			src:  "types:\n  - name: C\n  - name: I\n    kind: interface\n    extends: C\n",
			code: diagnostic.CodeManifest,
		},
		{
			name: "two superclasses",
			src:  "types:\n  - name: C\n  - name: D\n  - name: E\n    extends: [C, D]\n",
			code: diagnostic.CodeManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := validateYAML(t, tt.src)

			require.True(t, diags.HasErrors())
			assert.Equal(t, tt.code, diags.Errors[0].Code)

			if tt.suggestions != nil {
				assert.Equal(t, tt.suggestions, diags.Errors[0].Suggestions)
			}
		})
	}
}

func TestValidate_GenericSupertype(t *testing.T) {
	diags := validateYAML(t, `
types:
  - name: Box
    typeParameters: [T]
  - name: IntBox
    extends: "Box<Integer>"
`)

	assert.False(t, diags.HasErrors())
}
