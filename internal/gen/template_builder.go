package gen

import (
	"go/token"
	"go/types"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"weakwrap-generator/internal/model"
	"weakwrap-generator/internal/plan"
)

// goTemplateData holds all data needed for the Go wrapper template.
type goTemplateData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	TypeName    string
	// Original is the wrapped type as named in doc comments.
	Original string
	// TypeParams is the type parameter list of the wrapper, empty when the
	// wrapper is not generic.
	TypeParams string
	TypeArgs   string
	// Referent is the type argument of weak.Pointer.
	Referent        string
	FieldName       string
	ConstructorName string
	ParamName       string
	ParamType       string
	MakeArg         string
	Methods         []goMethodData
	ClearName       string
	// Constraint names the pointer constraint of an interface wrapper.
	Constraint       string
	ConstraintParams string
	Pointee          string
	// Interface is the wrapped interface with its type arguments.
	Interface string
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// goMethodData represents a single forwarding method.
type goMethodData struct {
	Receiver      string
	Name          string
	Params        string
	Results       string
	Local         string
	Call          string
	ReturnsResult bool
	Fallback      string
}

func buildGoTemplateData(spec *plan.WrapperSpec, pkgName, header string) *goTemplateData {
	origArgs := spec.Original.TypeArguments()
	original := spec.Original.SimpleName + typeArgList(origArgs)

	data := &goTemplateData{
		Header:          header,
		PackageName:     pkgName,
		Imports:         goImports(spec.Imports),
		TypeName:        spec.WrapClassName,
		Original:        spec.Original.SimpleName,
		FieldName:       spec.Field.Name,
		ConstructorName: "New" + spec.WrapClassName,
		ParamName:       goConstructorParam(spec),
		ClearName:       exported(spec.ClearMethod.Name),
	}

	tparams := make([]string, 0, len(spec.Original.TypeParameters)+2)
	targs := append([]string(nil), origArgs...)

	for _, tp := range spec.Original.TypeParameters {
		tparams = append(tparams, tp.Name+" "+tp.Bound)
	}

	// zeroNames are type parameters whose zero value has no literal.
	zeroNames := make(map[string]bool, len(origArgs)+1)
	for _, a := range origArgs {
		zeroNames[a] = true
	}

	// An interface value cannot be held weakly, so the wrapper is generic
	// over the pointee of the implementation.
	if spec.Original.Kind == model.KindInterface {
		taken := takenNames(spec)
		pointee := freshName("T", taken)
		taken[pointee] = true
		ptr := freshName("P"+pointee, taken)

		cparams := append(tparams[:len(tparams):len(tparams)], pointee+" any")
		cargs := append(origArgs[:len(origArgs):len(origArgs)], pointee)

		data.Constraint = spec.WrapClassName + "Pointer"
		data.ConstraintParams = strings.Join(cparams, ", ")
		data.Pointee = pointee
		data.Interface = original

		tparams = append(tparams,
			pointee+" any",
			ptr+" "+data.Constraint+typeArgList(cargs))
		targs = append(targs, pointee, ptr)
		zeroNames[pointee] = true

		data.Referent = pointee
		data.ParamType = ptr
		data.MakeArg = "(*" + pointee + ")(" + data.ParamName + ")"
		data.Methods = goMethods(spec, ptr+"("+spec.LocalVarName+")", zeroNames)
	} else {
		data.Referent = original
		data.ParamType = "*" + original
		data.MakeArg = data.ParamName
		data.Methods = goMethods(spec, spec.LocalVarName, zeroNames)
	}

	if len(tparams) > 0 {
		data.TypeParams = "[" + strings.Join(tparams, ", ") + "]"
		data.TypeArgs = typeArgList(targs)
	}

	return data
}

func goMethods(spec *plan.WrapperSpec, callee string, zeroNames map[string]bool) []goMethodData {
	methods := make([]goMethodData, 0, len(spec.Methods))

	for _, m := range spec.Methods {
		sig := m.Signature

		params := make([]string, len(sig.Parameters))
		for i, p := range sig.Parameters {
			typ := p.Type
			if sig.Variadic && i == len(sig.Parameters)-1 {
				typ = "..." + strings.TrimPrefix(typ, "[]")
			}

			params[i] = p.Name + " " + typ
		}

		args := make([]string, len(m.Body.Call.Args))
		for i, a := range m.Body.Call.Args {
			args[i] = a.Name
			if a.Spread {
				args[i] += "..."
			}
		}

		fallback := make([]string, len(m.Body.Fallback))
		for i, d := range m.Body.Fallback {
			fallback[i] = goDefault(d, zeroNames)
		}

		methods = append(methods, goMethodData{
			Receiver:      goReceiver(sig.ParameterNames(), m.Body.Local),
			Name:          sig.Name,
			Params:        strings.Join(params, ", "),
			Results:       goResults(sig.ReturnType),
			Local:         m.Body.Local,
			Call:          callee + "." + m.Body.Call.Method + "(" + strings.Join(args, ", ") + ")",
			ReturnsResult: m.Body.ReturnsResult,
			Fallback:      strings.Join(fallback, ", "),
		})
	}

	return methods
}

func goResults(t model.TypeRef) string {
	switch t.Category {
	case model.CategoryVoid:
		return ""
	case model.CategoryTuple:
		return t.String()
	default:
		return t.Name
	}
}

// goDefault spells the zero value of a result.
func goDefault(d plan.DefaultValue, zeroNames map[string]bool) string {
	switch d.Kind {
	case plan.DefaultFalse:
		return "false"
	case plan.DefaultZero:
		if d.Type.Primitive == "string" {
			return `""`
		}

		return "0"
	case plan.DefaultZeroValue:
		if zeroNames[d.Type.Name] {
			return "*new(" + d.Type.Name + ")"
		}

		return d.Type.Name + "{}"
	default:
		return "nil"
	}
}

// goReceiver returns "w" unless a parameter already uses it.
func goReceiver(params []string, local string) string {
	taken := map[string]bool{local: true}
	for _, p := range params {
		taken[p] = true
	}

	return freshName("w", taken)
}

// goConstructorParam avoids keywords, predeclared identifiers, and the
// package names the file refers to.
func goConstructorParam(spec *plan.WrapperSpec) string {
	name := spec.Constructor.ParamName

	clash := token.IsKeyword(name) || types.Universe.Lookup(name) != nil || name == "weak"
	for _, imp := range spec.Imports {
		clash = clash || name == importName(imp)
	}

	if clash {
		name += "Ref"
	}

	return name
}

// takenNames collects every identifier a fresh type parameter must avoid.
func takenNames(spec *plan.WrapperSpec) map[string]bool {
	taken := map[string]bool{"weak": true}

	for _, a := range spec.Original.TypeArguments() {
		taken[a] = true
	}

	for _, imp := range spec.Imports {
		taken[importName(imp)] = true
	}

	for _, m := range spec.Methods {
		for _, p := range m.Signature.Parameters {
			taken[p.Name] = true
		}
	}

	return taken
}

func freshName(base string, taken map[string]bool) string {
	name := base
	for n := 1; taken[name]; n++ {
		name = base + strconv.Itoa(n)
	}

	return name
}

func importName(imp model.Import) string {
	if imp.Name != "" {
		return imp.Name
	}

	path := imp.Path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}

	// gopkg.in style version suffixes are not part of the name
	if i := strings.Index(path, "."); i > 0 {
		path = path[:i]
	}

	return path
}

func goImports(imps []model.Import) []importSpec {
	specs := make([]importSpec, 0, len(imps)+1)
	specs = append(specs, importSpec{Path: "weak"})

	for _, imp := range imps {
		specs = append(specs, importSpec{Alias: imp.Name, Path: imp.Path})
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})

	return specs
}

func typeArgList(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return "[" + strings.Join(args, ", ") + "]"
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToUpper(r)) + name[size:]
}
