package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_YAML(t *testing.T) {
	yaml := `
package: com.example
imports: java.util.List
types:
  - name: Service
    modifiers: public
    typeParameters: [T, {name: R, bound: Number}]
    methods:
      - name: run
        parameters:
          - {type: String}
          - {name: rest, type: "Object..."}
`

	f, err := Parse([]byte(yaml), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "com.example", f.Package)
	assert.Equal(t, StringOrArray{"java.util.List"}, f.Imports)
	require.Len(t, f.Types, 1)

	svc := f.Types[0]
	assert.Equal(t, "class", svc.Kind)
	assert.True(t, svc.ShouldWrap())
	assert.Equal(t, StringOrArray{"public"}, svc.Modifiers)
	assert.Equal(t, []TypeParamDecl{{Name: "T"}, {Name: "R", Bound: "Number"}}, svc.TypeParameters)

	require.Len(t, svc.Methods, 1)
	run := svc.Methods[0]
	assert.Equal(t, "void", run.Returns)
	assert.True(t, run.Variadic)
	assert.Equal(t, []ParamDecl{
		{Name: "arg0", Type: "String"},
		{Name: "rest", Type: "Object[]"},
	}, run.Parameters)
}

func TestParse_JSON(t *testing.T) {
	f, err := LoadFile("testdata/listeners.json")
	require.NoError(t, err)

	assert.Equal(t, "testdata/listeners.json", f.Path)
	assert.Equal(t, StringOrArray{"java.io.IOException"}, f.Imports)
	require.Len(t, f.Types, 1)

	reader := f.Types[0]
	assert.Equal(t, "interface", reader.Kind)
	assert.Equal(t, []TypeParamDecl{{Name: "T"}}, reader.TypeParameters)
	require.Len(t, reader.Methods, 3)
	assert.Equal(t, StringOrArray{"IOException"}, reader.Methods[0].Throws)
	assert.Equal(t, "void", reader.Methods[2].Returns)
}

func TestParse_WrapFalse(t *testing.T) {
	f, err := Parse([]byte("types:\n  - name: Base\n    wrap: false\n"), FormatYAML)
	require.NoError(t, err)

	assert.Empty(t, f.Package)
	assert.False(t, f.Types[0].ShouldWrap())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("types: [\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest YAML")

	_, err = Parse([]byte(`{"types": 3}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest JSON")

	_, err = Parse([]byte(`imports: {a: b}`), FormatYAML)
	require.Error(t, err)

	_, err = LoadFile("testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read manifest")
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("a/b.json"))
	assert.Equal(t, FormatJSON, FormatOf("B.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("a.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("a.yml"))
}
