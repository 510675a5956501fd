package gen

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weakwrap-generator/internal/manifest"
	"weakwrap-generator/internal/model"
	"weakwrap-generator/internal/plan"
)

var update = flag.Bool("update", false, "update golden files")

func loadManifestSpecs(t *testing.T, path string) map[string]*plan.WrapperSpec {
	t.Helper()

	files, err := manifest.LoadFiles([]string{path})
	require.NoError(t, err)

	tds, diags := manifest.Resolve(files)
	require.False(t, diags.HasErrors(), "%v", diags.Error())

	specs := make(map[string]*plan.WrapperSpec)

	for _, td := range tds {
		spec, err := plan.Generate(td)
		if err != nil {
			continue
		}

		specs[spec.WrapClassName] = spec
	}

	return specs
}

func assertGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if *update {
		require.NoError(t, os.WriteFile(path, got, filePerm))
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestJavaRenderer_Golden(t *testing.T) {
	specs := loadManifestSpecs(t, "../manifest/testdata/listeners.yaml")
	for name, spec := range loadManifestSpecs(t, "../manifest/testdata/listeners.json") {
		specs[name] = spec
	}

	// Handler.Inner is not static and yields no wrapper.
	require.Len(t, specs, 3)

	r := NewJavaRenderer(JavaConfig{})

	for _, name := range []string{"WeakWrapHandler", "WeakWrapHandlerCallback", "WeakWrapReader"} {
		t.Run(name, func(t *testing.T) {
			spec := specs[name]
			require.NotNil(t, spec)

			file, err := r.Render(spec)
			require.NoError(t, err)

			assert.Equal(t, "com/example/events", file.Dir)
			assert.Equal(t, name+".java", file.Filename)
			assertGolden(t, file.Filename, file.Content)
		})
	}
}

func TestJavaRenderer_Deterministic(t *testing.T) {
	specs := loadManifestSpecs(t, "../manifest/testdata/listeners.yaml")
	r := NewJavaRenderer(JavaConfig{})

	first, err := r.Render(specs["WeakWrapHandler"])
	require.NoError(t, err)

	second, err := r.Render(specs["WeakWrapHandler"])
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}

func TestJavaRenderer_DefaultPackageFinalClass(t *testing.T) {
	td := &model.TypeDescriptor{
		QualifiedName: "Point",
		SimpleName:    "Point",
		Kind:          model.KindClass,
		Modifiers:     model.NewModifierSet(model.Public, model.Final),
		Members: []model.MemberDescriptor{{
			Name:       "x",
			Modifiers:  model.NewModifierSet(model.Public),
			ReturnType: model.TypeRef{Name: "double", Category: model.CategoryOtherPrimitive, Primitive: "double"},
		}},
	}

	spec, err := plan.Generate(td)
	require.NoError(t, err)

	file, err := NewJavaRenderer(JavaConfig{Header: "// custom"}).Render(spec)
	require.NoError(t, err)

	content := string(file.Content)

	assert.Empty(t, file.Dir)
	assert.Equal(t, "WeakWrapPoint.java", file.Filename)
	assert.Contains(t, content, "// custom\n\nimport java.lang.ref.WeakReference;\n\npublic class WeakWrapPoint {\n")
	assert.NotContains(t, content, "package ")
	assert.Contains(t, content, "    public double x() {\n")
	assert.Contains(t, content, "        return 0;\n")
}

func TestJavaRenderer_UnsupportedResult(t *testing.T) {
	td := &model.TypeDescriptor{
		QualifiedName: "p.Box",
		SimpleName:    "Box",
		PackageName:   "p",
		Kind:          model.KindClass,
		Modifiers:     model.NewModifierSet(model.Public),
		Members: []model.MemberDescriptor{{
			Name:       "pair",
			Modifiers:  model.NewModifierSet(model.Public),
			ReturnType: model.TypeRef{Name: "Pair", Category: model.CategoryValue},
		}},
	}

	spec, err := plan.Generate(td)
	require.NoError(t, err)

	_, err = NewJavaRenderer(JavaConfig{}).Render(spec)
	require.ErrorIs(t, err, ErrUnsupportedResult)
	assert.Contains(t, err.Error(), "pair")
}

func TestJavaDir(t *testing.T) {
	assert.Equal(t, "", JavaDir(""))
	assert.Equal(t, "com/example", JavaDir("com.example"))
}

func TestJavaRenderer_InheritedGenericMembers(t *testing.T) {
	f, err := manifest.Parse([]byte(`
package: p
types:
  - name: Base
    wrap: false
    typeParameters: [T]
    methods:
      - name: get
        modifiers: public
        returns: T
      - name: put
        modifiers: public
        parameters: [{name: v, type: T}]
  - name: Sub
    modifiers: public
    extends: Base<String>
`), manifest.FormatYAML)
	require.NoError(t, err)

	tds, diags := manifest.Resolve([]*manifest.File{f})
	require.False(t, diags.HasErrors())
	require.Len(t, tds, 1)

	spec, err := plan.Generate(tds[0])
	require.NoError(t, err)

	file, err := NewJavaRenderer(JavaConfig{}).Render(spec)
	require.NoError(t, err)

	got := string(file.Content)
	assert.Contains(t, got, "    public String get() {\n")
	assert.Contains(t, got, "    public void put(String v) {\n")
	assert.NotContains(t, got, " T ")
	assert.NotContains(t, got, "(T ")
}
