package gen

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"weakwrap-generator/internal/plan"
)

// ErrNameCollision is returned when a forwarded method would clash with a
// name the wrapper declares itself.
var ErrNameCollision = errors.New("method name collides with a generated name")

// GoConfig holds configuration for Go code generation.
type GoConfig struct {
	// Header is the first line of every generated file.
	Header string
	// DebugUnformatted writes source that fails to format next to the
	// target as *.unformatted.go.
	DebugUnformatted bool
}

// DefaultGoConfig returns the default Go renderer configuration.
func DefaultGoConfig() GoConfig {
	return GoConfig{
		Header:           DefaultHeader,
		DebugUnformatted: true,
	}
}

// GoTarget places a wrapper in the package of the original type.
type GoTarget struct {
	// PkgName is the package clause name.
	PkgName string
	// Dir is the package directory.
	Dir string
	// Filename overrides the default file name when set.
	Filename string
}

// GoRenderer renders wrapper specs of Go types.
type GoRenderer struct {
	config GoConfig
}

// NewGoRenderer creates a new GoRenderer with the given configuration.
func NewGoRenderer(config GoConfig) *GoRenderer {
	return &GoRenderer{config: config}
}

// GoFilename returns the default file name of a wrapper.
func GoFilename(spec *plan.WrapperSpec) string {
	return strings.ToLower(spec.WrapClassName) + ".go"
}

// Render renders one wrapper. When formatting fails, the unformatted source
// is returned along with the error.
func (r *GoRenderer) Render(spec *plan.WrapperSpec, target GoTarget) (*GeneratedFile, error) {
	filename := target.Filename
	if filename == "" {
		filename = GoFilename(spec)
	}

	if err := checkGoNames(spec); err != nil {
		return nil, err
	}

	data := buildGoTemplateData(spec, target.PkgName, headerOrDefault(r.config.Header))

	src, err := execute(goWrapperTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", spec.WrapClassName, err)
	}

	formatted, err := imports.Process(filename, src, nil)
	if err != nil {
		if r.config.DebugUnformatted {
			_ = writeDebugUnformatted(target.Dir, filename, src)
		}

		return &GeneratedFile{
			Dir:      target.Dir,
			Filename: filename,
			Content:  src,
		}, fmt.Errorf("formatting %s: %w (unformatted code returned)", filename, err)
	}

	return &GeneratedFile{
		Dir:      target.Dir,
		Filename: filename,
		Content:  formatted,
	}, nil
}

// checkGoNames rejects methods named like the reference field or the clear
// method. Go allows neither a duplicate method nor a method sharing a field's
// name.
func checkGoNames(spec *plan.WrapperSpec) error {
	generated := map[string]string{
		spec.Field.Name:                 "field",
		exported(spec.ClearMethod.Name): "method",
	}

	for _, m := range spec.Methods {
		if what, ok := generated[m.Signature.Name]; ok {
			return fmt.Errorf("%w: %s.%s shadows the wrapper %s %s",
				ErrNameCollision, spec.Original.SimpleName, m.Signature.Name, what, m.Signature.Name)
		}
	}

	return nil
}

var goWrapperTemplate = template.Must(template.New("go_wrapper").Parse(`{{.Header}}

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

{{if .Constraint}}// {{.Constraint}} is satisfied by pointers to implementations of {{.Original}}.
type {{.Constraint}}[{{.ConstraintParams}}] interface {
	*{{.Pointee}}
	{{.Interface}}
}

{{end}}// {{.TypeName}} forwards calls to a weakly referenced {{.Original}}.
// Once the {{.Original}} has been garbage collected, every method returns zero values.
type {{.TypeName}}{{.TypeParams}} struct {
	{{.FieldName}} weak.Pointer[{{.Referent}}]
}

// {{.ConstructorName}} returns a wrapper holding a weak reference to {{.ParamName}}.
func {{.ConstructorName}}{{.TypeParams}}({{.ParamName}} {{.ParamType}}) *{{.TypeName}}{{.TypeArgs}} {
	return &{{.TypeName}}{{.TypeArgs}}{ {{- .FieldName}}: weak.Make({{.MakeArg}})}
}
{{range .Methods}}
func ({{.Receiver}} *{{$.TypeName}}{{$.TypeArgs}}) {{.Name}}({{.Params}}){{if .Results}} {{.Results}}{{end}} {
	{{.Local}} := {{.Receiver}}.{{$.FieldName}}.Value()
	if {{.Local}} != nil {
		{{if .ReturnsResult}}return {{end}}{{.Call}}
	}
{{- if .ReturnsResult}}

	return {{.Fallback}}
{{- end}}
}
{{end}}
// {{.ClearName}} drops the held reference.
func (w *{{.TypeName}}{{.TypeArgs}}) {{.ClearName}}() {
	w.{{.FieldName}} = weak.Pointer[{{.Referent}}]{}
}
`))
