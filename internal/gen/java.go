package gen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"weakwrap-generator/internal/model"
	"weakwrap-generator/internal/plan"
)

// weakReferenceImport is the reference type every Java wrapper holds.
const weakReferenceImport = "java.lang.ref.WeakReference"

// ErrUnsupportedResult is returned when a result has no Java default.
var ErrUnsupportedResult = errors.New("result type has no Java default value")

// JavaConfig holds configuration for Java code generation.
type JavaConfig struct {
	Header string
}

// JavaRenderer renders wrapper specs of manifest types as Java classes.
type JavaRenderer struct {
	config JavaConfig
}

// NewJavaRenderer creates a new JavaRenderer with the given configuration.
func NewJavaRenderer(config JavaConfig) *JavaRenderer {
	return &JavaRenderer{config: config}
}

// JavaDir returns the source directory of a package ("com/example").
func JavaDir(packageName string) string {
	if packageName == "" {
		return ""
	}

	return strings.ReplaceAll(packageName, ".", "/")
}

// Render renders one wrapper class. Dir of the result is relative to the
// output root.
func (r *JavaRenderer) Render(spec *plan.WrapperSpec) (*GeneratedFile, error) {
	data, err := buildJavaTemplateData(spec, headerOrDefault(r.config.Header))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", spec.WrapClassName, err)
	}

	src, err := execute(javaWrapperTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", spec.WrapClassName, err)
	}

	return &GeneratedFile{
		Dir:      JavaDir(spec.PackageName),
		Filename: spec.WrapClassName + ".java",
		Content:  src,
	}, nil
}

type javaTemplateData struct {
	Header      string
	PackageName string
	Imports     []string
	ClassName   string
	TypeParams  string
	// Supertype is the extends or implements clause, empty for none.
	Supertype string
	Referent  string
	FieldName string
	ParamName string
	Methods   []javaMethodData
	ClearName string
}

type javaMethodData struct {
	Declaration   string
	Local         string
	Call          string
	ReturnsResult bool
	Fallback      string
}

func buildJavaTemplateData(spec *plan.WrapperSpec, header string) (*javaTemplateData, error) {
	referent := spec.Original.NestedName + javaTypeArgs(spec.Original.TypeArguments())

	data := &javaTemplateData{
		Header:      header,
		PackageName: spec.PackageName,
		Imports:     javaImports(spec.Imports),
		ClassName:   spec.WrapClassName,
		TypeParams:  javaTypeParams(spec.Original.TypeParameters),
		Referent:    referent,
		FieldName:   spec.Field.Name,
		ParamName:   spec.Constructor.ParamName,
		ClearName:   spec.ClearMethod.Name,
	}

	if spec.Supertype.Relation != plan.NoSupertype {
		data.Supertype = " " + spec.Supertype.Relation.String() + " " + referent
	}

	for _, m := range spec.Methods {
		method, err := javaMethod(m, spec.LocalVarName)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Signature.Name, err)
		}

		data.Methods = append(data.Methods, method)
	}

	return data, nil
}

func javaMethod(m plan.ForwardingMethod, local string) (javaMethodData, error) {
	sig := m.Signature

	var decl strings.Builder
	if !sig.Modifiers.IsEmpty() {
		decl.WriteString(sig.Modifiers.String())
		decl.WriteByte(' ')
	}

	if tp := javaTypeParams(sig.TypeParameters); tp != "" {
		decl.WriteString(tp)
		decl.WriteByte(' ')
	}

	decl.WriteString(sig.ReturnType.Name)
	decl.WriteByte(' ')
	decl.WriteString(sig.Name)
	decl.WriteByte('(')

	for i, p := range sig.Parameters {
		if i > 0 {
			decl.WriteString(", ")
		}

		typ := p.Type
		if sig.Variadic && i == len(sig.Parameters)-1 {
			typ = strings.TrimSuffix(typ, "[]") + "..."
		}

		decl.WriteString(typ + " " + p.Name)
	}

	decl.WriteByte(')')

	if len(sig.ThrownTypes) > 0 {
		decl.WriteString(" throws " + strings.Join(sig.ThrownTypes, ", "))
	}

	args := make([]string, len(m.Body.Call.Args))
	for i, a := range m.Body.Call.Args {
		args[i] = a.Name
	}

	method := javaMethodData{
		Declaration:   decl.String(),
		Local:         local,
		Call:          local + "." + m.Body.Call.Method + "(" + strings.Join(args, ", ") + ")",
		ReturnsResult: m.Body.ReturnsResult,
	}

	if m.Body.ReturnsResult {
		if len(m.Body.Fallback) != 1 {
			return javaMethodData{}, fmt.Errorf("%w: %s", ErrUnsupportedResult, sig.ReturnType)
		}

		fallback, err := javaDefault(m.Body.Fallback[0])
		if err != nil {
			return javaMethodData{}, err
		}

		method.Fallback = fallback
	}

	return method, nil
}

func javaDefault(d plan.DefaultValue) (string, error) {
	switch d.Kind {
	case plan.DefaultFalse:
		return "false", nil
	case plan.DefaultZero:
		return "0", nil
	case plan.DefaultAbsent:
		return "null", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedResult, d.Type)
	}
}

func javaTypeParams(params []model.TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, tp := range params {
		parts[i] = tp.Name
		if tp.Bound != "" {
			parts[i] += " extends " + tp.Bound
		}
	}

	return "<" + strings.Join(parts, ", ") + ">"
}

func javaTypeArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return "<" + strings.Join(args, ", ") + ">"
}

func javaImports(imps []model.Import) []string {
	seen := map[string]bool{weakReferenceImport: true}
	paths := []string{weakReferenceImport}

	for _, imp := range imps {
		if seen[imp.Path] {
			continue
		}

		seen[imp.Path] = true
		paths = append(paths, imp.Path)
	}

	sort.Strings(paths)

	return paths
}

var javaWrapperTemplate = template.Must(template.New("java_wrapper").Parse(`{{.Header}}
{{if .PackageName}}
package {{.PackageName}};
{{end}}
{{range .Imports}}import {{.}};
{{end}}
public class {{.ClassName}}{{.TypeParams}}{{.Supertype}} {
    private final WeakReference<{{.Referent}}> {{.FieldName}};

    public {{.ClassName}}({{.Referent}} {{.ParamName}}) {
        {{.FieldName}} = new WeakReference<>({{.ParamName}});
    }
{{range .Methods}}
    {{.Declaration}} {
        {{$.Referent}} {{.Local}} = {{$.FieldName}}.get();
        if ({{.Local}} != null) {
            {{if .ReturnsResult}}return {{end}}{{.Call}};
        }
{{- if .ReturnsResult}}
        return {{.Fallback}};
{{- end}}
    }
{{end}}
    public void {{.ClearName}}() {
        {{.FieldName}}.clear();
    }
}
`))
