package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weakwrap-generator/internal/model"
	"weakwrap-generator/internal/plan"
)

var (
	intRef    = model.TypeRef{Name: "int", Category: model.CategoryOtherPrimitive, Primitive: "int"}
	stringRef = model.TypeRef{Name: "string", Category: model.CategoryOtherPrimitive, Primitive: "string"}
	boolRef   = model.TypeRef{Name: "bool", Category: model.CategoryBooleanPrimitive, Primitive: "bool"}
	errorRef  = model.TypeRef{Name: "error", Category: model.CategoryReference}
)

func goMethod(name string, ret model.TypeRef, params ...model.Parameter) model.MemberDescriptor {
	return model.MemberDescriptor{
		Name:             name,
		Modifiers:        model.NewModifierSet(model.Public),
		DeclaringPackage: "example.com/shapes",
		Parameters:       params,
		ReturnType:       ret,
	}
}

func canvasDescriptor() *model.TypeDescriptor {
	add := goMethod("Add", intRef, model.Parameter{Name: "shapes", Type: "[]Shape"})
	add.Variadic = true

	return &model.TypeDescriptor{
		QualifiedName: "example.com/shapes.Canvas",
		SimpleName:    "Canvas",
		PackageName:   "example.com/shapes",
		Kind:          model.KindClass,
		Modifiers:     model.NewModifierSet(model.Public),
		Members: []model.MemberDescriptor{
			add,
			goMethod("Bounds", model.TypeRef{Name: "Rect", Category: model.CategoryValue}),
			goMethod("IsEmpty", boolRef),
			goMethod("Render", model.TypeRef{
				Category:   model.CategoryTuple,
				Components: []model.TypeRef{intRef, errorRef},
			}, model.Parameter{Name: "w", Type: "io.Writer"}),
			goMethod("Title", stringRef),
			goMethod("Updated", model.TypeRef{Name: "time.Time", Category: model.CategoryValue}),
			{
				Name:             "reset",
				DeclaringPackage: "example.com/shapes",
				ReturnType:       model.VoidType(),
			},
		},
		Imports: []model.Import{{Path: "io"}, {Path: "time"}},
	}
}

func renderGo(t *testing.T, td *model.TypeDescriptor, target GoTarget) *GeneratedFile {
	t.Helper()

	spec, err := plan.Generate(td)
	require.NoError(t, err)

	file, err := NewGoRenderer(DefaultGoConfig()).Render(spec, target)
	require.NoError(t, err, "%s", func() string {
		if file != nil {
			return string(file.Content)
		}

		return ""
	}())

	return file
}

func TestGoRenderer_Class(t *testing.T) {
	file := renderGo(t, canvasDescriptor(), GoTarget{PkgName: "shapes", Dir: "/src/shapes"})

	assert.Equal(t, "weakwrapcanvas.go", file.Filename)
	assert.Equal(t, "/src/shapes", file.Dir)

	content := string(file.Content)

	for _, want := range []string{
		"// Code generated by weakwrap. DO NOT EDIT.\n\npackage shapes\n",
		"import (\n\t\"io\"\n\t\"time\"\n\t\"weak\"\n)\n",
		"type WeakWrapCanvas struct {\n\tweakWrap weak.Pointer[Canvas]\n}\n",
		"func NewWeakWrapCanvas(canvas *Canvas) *WeakWrapCanvas {\n\treturn &WeakWrapCanvas{weakWrap: weak.Make(canvas)}\n}\n",
		"func (w *WeakWrapCanvas) Add(shapes ...Shape) int {\n" +
			"\toriginal := w.weakWrap.Value()\n" +
			"\tif original != nil {\n" +
			"\t\treturn original.Add(shapes...)\n" +
			"\t}\n\n" +
			"\treturn 0\n}\n",
		"\treturn Rect{}\n",
		"\treturn false\n",
		"\treturn time.Time{}\n",
		"\treturn \"\"\n",
		"func (w1 *WeakWrapCanvas) Render(w io.Writer) (int, error) {\n" +
			"\toriginal := w1.weakWrap.Value()\n",
		"\treturn 0, nil\n",
		"func (w *WeakWrapCanvas) reset() {\n" +
			"\toriginal := w.weakWrap.Value()\n" +
			"\tif original != nil {\n" +
			"\t\toriginal.reset()\n" +
			"\t}\n}\n",
		"func (w *WeakWrapCanvas) ClearWeakWrapRef() {\n\tw.weakWrap = weak.Pointer[Canvas]{}\n}\n",
	} {
		assert.Contains(t, content, want)
	}
}

func TestGoRenderer_Interface(t *testing.T) {
	td := &model.TypeDescriptor{
		QualifiedName: "example.com/shapes.Shape",
		SimpleName:    "Shape",
		PackageName:   "example.com/shapes",
		Kind:          model.KindInterface,
		Modifiers:     model.NewModifierSet(model.Public),
		Members: []model.MemberDescriptor{
			goMethod("Area", model.TypeRef{Name: "float64", Category: model.CategoryOtherPrimitive, Primitive: "float64"}),
			goMethod("Scale", model.VoidType(), model.Parameter{Name: "f", Type: "float64"}),
		},
	}

	file := renderGo(t, td, GoTarget{PkgName: "shapes", Filename: "shape_weak.go"})

	assert.Equal(t, "shape_weak.go", file.Filename)

	content := string(file.Content)

	for _, want := range []string{
		"type WeakWrapShapePointer[T any] interface {\n\t*T\n\tShape\n}\n",
		"type WeakWrapShape[T any, PT WeakWrapShapePointer[T]] struct {\n\tweakWrap weak.Pointer[T]\n}\n",
		"func NewWeakWrapShape[T any, PT WeakWrapShapePointer[T]](shape PT) *WeakWrapShape[T, PT] {\n" +
			"\treturn &WeakWrapShape[T, PT]{weakWrap: weak.Make((*T)(shape))}\n}\n",
		"func (w *WeakWrapShape[T, PT]) Area() float64 {\n" +
			"\toriginal := w.weakWrap.Value()\n" +
			"\tif original != nil {\n" +
			"\t\treturn PT(original).Area()\n",
		"\t\tPT(original).Scale(f)\n",
		"func (w *WeakWrapShape[T, PT]) ClearWeakWrapRef() {\n\tw.weakWrap = weak.Pointer[T]{}\n}\n",
	} {
		assert.Contains(t, content, want)
	}
}

func TestGoRenderer_GenericInterfaceAvoidsTypeParameterNames(t *testing.T) {
	td := &model.TypeDescriptor{
		QualifiedName:  "example.com/box.Source",
		SimpleName:     "Source",
		PackageName:    "example.com/box",
		Kind:           model.KindInterface,
		Modifiers:      model.NewModifierSet(model.Public),
		TypeParameters: []model.TypeParam{{Name: "T", Bound: "any"}},
		Members: []model.MemberDescriptor{
			goMethod("Next", model.TypeRef{
				Category: model.CategoryTuple,
				Components: []model.TypeRef{
					{Name: "T", Category: model.CategoryValue},
					boolRef,
				},
			}),
		},
	}

	content := string(renderGo(t, td, GoTarget{PkgName: "box"}).Content)

	assert.Contains(t, content, "type WeakWrapSourcePointer[T any, T1 any] interface {\n\t*T1\n\tSource[T]\n}\n")
	assert.Contains(t, content, "type WeakWrapSource[T any, T1 any, PT1 WeakWrapSourcePointer[T, T1]] struct {\n\tweakWrap weak.Pointer[T1]\n}\n")
	assert.Contains(t, content, "func (w *WeakWrapSource[T, T1, PT1]) Next() (T, bool) {\n")
	assert.Contains(t, content, "\t\treturn PT1(original).Next()\n")
	assert.Contains(t, content, "\treturn *new(T), false\n")
}

func TestGoRenderer_GenericClass(t *testing.T) {
	td := &model.TypeDescriptor{
		QualifiedName: "example.com/cache.Cache",
		SimpleName:    "Cache",
		PackageName:   "example.com/cache",
		Kind:          model.KindClass,
		Modifiers:     model.NewModifierSet(model.Public),
		TypeParameters: []model.TypeParam{
			{Name: "K", Bound: "comparable"},
			{Name: "V", Bound: "any"},
		},
		Members: []model.MemberDescriptor{
			goMethod("Get", model.TypeRef{
				Category: model.CategoryTuple,
				Components: []model.TypeRef{
					{Name: "V", Category: model.CategoryValue},
					boolRef,
				},
			}, model.Parameter{Name: "key", Type: "K"}),
			goMethod("Keys", model.TypeRef{Name: "[]K", Category: model.CategoryReference}),
		},
	}

	content := string(renderGo(t, td, GoTarget{PkgName: "cache"}).Content)

	assert.Contains(t, content, "type WeakWrapCache[K comparable, V any] struct {\n\tweakWrap weak.Pointer[Cache[K, V]]\n}\n")
	assert.Contains(t, content, "func NewWeakWrapCache[K comparable, V any](cache *Cache[K, V]) *WeakWrapCache[K, V] {\n")
	assert.Contains(t, content, "func (w *WeakWrapCache[K, V]) Get(key K) (V, bool) {\n")
	assert.Contains(t, content, "\treturn *new(V), false\n")
	assert.Contains(t, content, "\treturn nil\n")
	assert.NotContains(t, content, "Pointer[T any]")
}

func TestGoRenderer_ConstructorParamAvoidsKeywords(t *testing.T) {
	td := &model.TypeDescriptor{
		QualifiedName: "example.com/x.Func",
		SimpleName:    "Func",
		PackageName:   "example.com/x",
		Kind:          model.KindClass,
	}

	content := string(renderGo(t, td, GoTarget{PkgName: "x"}).Content)

	assert.Contains(t, content, "func NewWeakWrapFunc(funcRef *Func) *WeakWrapFunc {\n")
}

func TestGoRenderer_FormatFailureWritesSidecar(t *testing.T) {
	td := canvasDescriptor()
	td.Members = []model.MemberDescriptor{
		goMethod("Broken", model.TypeRef{Name: "map[", Category: model.CategoryReference}),
	}

	spec, err := plan.Generate(td)
	require.NoError(t, err)

	dir := t.TempDir()

	file, err := NewGoRenderer(DefaultGoConfig()).Render(spec, GoTarget{PkgName: "shapes", Dir: dir})
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, err.Error(), "unformatted code returned")

	sidecar, readErr := os.ReadFile(filepath.Join(dir, "weakwrapcanvas.unformatted.go"))
	require.NoError(t, readErr)
	assert.Equal(t, file.Content, sidecar)
}

func TestGoRenderer_FormatFailureWithoutSidecar(t *testing.T) {
	td := canvasDescriptor()
	td.Members = []model.MemberDescriptor{
		goMethod("Broken", model.TypeRef{Name: "map[", Category: model.CategoryReference}),
	}

	spec, err := plan.Generate(td)
	require.NoError(t, err)

	dir := t.TempDir()

	_, err = NewGoRenderer(GoConfig{}).Render(spec, GoTarget{PkgName: "shapes", Dir: dir})
	require.Error(t, err)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestGoRenderer_NameCollisions(t *testing.T) {
	tests := []struct {
		name   string
		method string
	}{
		{"clear method", "ClearWeakWrapRef"},
		{"reference field", "weakWrap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := canvasDescriptor()
			td.Members = append(td.Members, goMethod(tt.method, model.VoidType()))

			spec, err := plan.Generate(td)
			require.NoError(t, err)

			file, err := NewGoRenderer(DefaultGoConfig()).Render(spec, GoTarget{PkgName: "shapes", Dir: t.TempDir()})
			require.ErrorIs(t, err, ErrNameCollision)
			assert.Nil(t, file)
			assert.Contains(t, err.Error(), "Canvas."+tt.method)
		})
	}
}

func TestGoRenderer_Deterministic(t *testing.T) {
	target := GoTarget{PkgName: "shapes"}

	first := renderGo(t, canvasDescriptor(), target)
	second := renderGo(t, canvasDescriptor(), target)

	assert.Equal(t, first.Content, second.Content)
}
