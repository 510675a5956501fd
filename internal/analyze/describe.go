package analyze

import (
	"fmt"
	"go/types"
	"strconv"

	"weakwrap-generator/internal/diagnostic"
	"weakwrap-generator/internal/model"
	"weakwrap-generator/internal/plan"
)

// describe builds the descriptor of an annotated type. It returns false
// when the type cannot be described at all; problems with single members
// are reported and the member is skipped.
func describe(obj *types.TypeName, nesting model.NestingKind, diags *diagnostic.Diagnostics) (*model.TypeDescriptor, bool) {
	pkg := obj.Pkg()
	qualified := model.QualifiedNameOf(pkg.Path(), obj.Name())

	td := &model.TypeDescriptor{
		QualifiedName: qualified,
		SimpleName:    obj.Name(),
		PackageName:   pkg.Path(),
		NestingKind:   nesting,
		Kind:          model.KindClass,
	}

	if obj.Exported() {
		td.Modifiers = model.NewModifierSet(model.Public)
	}

	if obj.IsAlias() {
		diags.AddError(diagnostic.CodeUnsupportedType, "type aliases cannot be wrapped; annotate the aliased type", qualified, "")
		return nil, false
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		diags.AddError(diagnostic.CodeUnsupportedType, fmt.Sprintf("unsupported type %s", obj.Type()), qualified, "")
		return nil, false
	}

	// local types are rejected by validation; their members do not matter
	if nesting == model.InstanceMember {
		return td, true
	}

	if types.IsInterface(named) {
		td.Kind = model.KindInterface
	}

	q := newQualifier(pkg)

	if tparams := named.TypeParams(); tparams.Len() > 0 {
		td.TypeParameters = make([]model.TypeParam, tparams.Len())
		for i := range tparams.Len() {
			tp := tparams.At(i)
			td.TypeParameters[i] = model.TypeParam{
				Name:  tp.Obj().Name(),
				Bound: types.TypeString(tp.Constraint(), q.qualify),
			}
		}

		named = selfInstance(named)
	}

	var mset *types.MethodSet
	if td.Kind == model.KindInterface {
		mset = types.NewMethodSet(named)
	} else {
		mset = types.NewMethodSet(types.NewPointer(named))
	}

	for i := range mset.Len() {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}

		if !fn.Exported() && fn.Pkg() != pkg {
			// unexported methods of other packages cannot be called here
			if td.Kind == model.KindInterface {
				diags.AddWarning(diagnostic.CodeUnspellableMember,
					"interface has an unexported method of another package; the wrapper will not implement it",
					qualified, fn.Name())
			}

			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}

		if mentionsHidden(sig, pkg) {
			diags.AddWarning(diagnostic.CodeUnspellableMember,
				"signature uses unexported types of another package; member skipped", qualified, fn.Name())

			continue
		}

		td.Members = append(td.Members, describeMethod(fn, sig, td.Kind, q))
	}

	td.Imports = q.imports()
	renameParameters(td, q.usedNames())

	return td, true
}

// selfInstance instantiates a generic type with its own type parameters so
// method signatures use the names of the type declaration rather than the
// names chosen by each receiver.
func selfInstance(named *types.Named) *types.Named {
	tparams := named.TypeParams()

	args := make([]types.Type, tparams.Len())
	for i := range tparams.Len() {
		args[i] = tparams.At(i)
	}

	inst, err := types.Instantiate(nil, named, args, false)
	if err != nil {
		return named
	}

	if n, ok := inst.(*types.Named); ok {
		return n
	}

	return named
}

func describeMethod(fn *types.Func, sig *types.Signature, kind model.TypeKind, q *qualifier) model.MemberDescriptor {
	var mods model.ModifierSet
	if fn.Exported() {
		mods = mods.With(model.Public)
	}

	if kind == model.KindInterface {
		mods = mods.With(model.Abstract)
	}

	declaring := ""
	if fn.Pkg() != nil {
		declaring = fn.Pkg().Path()
	}

	params := make([]model.Parameter, sig.Params().Len())
	for i := range sig.Params().Len() {
		v := sig.Params().At(i)
		params[i] = model.Parameter{
			Name: v.Name(),
			Type: types.TypeString(v.Type(), q.qualify),
		}
	}

	return model.MemberDescriptor{
		Name:             fn.Name(),
		Modifiers:        mods,
		DeclaringPackage: declaring,
		Parameters:       params,
		Variadic:         sig.Variadic(),
		ReturnType:       resultType(sig.Results(), q),
	}
}

func resultType(results *types.Tuple, q *qualifier) model.TypeRef {
	switch results.Len() {
	case 0:
		return model.VoidType()
	case 1:
		return typeRef(results.At(0).Type(), q)
	default:
		components := make([]model.TypeRef, results.Len())
		for i := range results.Len() {
			components[i] = typeRef(results.At(i).Type(), q)
		}

		return model.TypeRef{Category: model.CategoryTuple, Components: components}
	}
}

// typeRef classifies t by the zero value a forwarding method falls back to.
func typeRef(t types.Type, q *qualifier) model.TypeRef {
	ref := model.TypeRef{Name: types.TypeString(t, q.qualify)}

	if _, ok := t.(*types.TypeParam); ok {
		ref.Category = model.CategoryValue
		return ref
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Kind() == types.UnsafePointer:
			ref.Category = model.CategoryReference
		case u.Info()&types.IsBoolean != 0:
			ref.Category = model.CategoryBooleanPrimitive
			ref.Primitive = u.Name()
		default:
			ref.Category = model.CategoryOtherPrimitive
			ref.Primitive = u.Name()
		}
	case *types.Struct, *types.Array:
		ref.Category = model.CategoryValue
	default:
		ref.Category = model.CategoryReference
	}

	return ref
}

// renameParameters names blank and unnamed parameters argN and moves
// parameters away from the generated local and from import names.
func renameParameters(td *model.TypeDescriptor, importNames []string) {
	reserved := map[string]bool{plan.LocalVarName: true}
	for _, name := range importNames {
		reserved[name] = true
	}

	for i := range td.Members {
		params := td.Members[i].Parameters

		taken := make(map[string]bool, len(params))
		for _, p := range params {
			taken[p.Name] = true
		}

		for j := range params {
			name := params[j].Name
			if name == "" || name == "_" {
				name = "arg" + strconv.Itoa(j)
			}

			if reserved[name] || (name != params[j].Name && taken[name]) {
				base := name
				for n := 1; reserved[name] || taken[name]; n++ {
					name = base + strconv.Itoa(n)
				}
			}

			if name != params[j].Name {
				taken[name] = true
				params[j].Name = name
			}
		}
	}
}

// mentionsHidden reports whether t refers to an unexported named type of a
// package other than pkg.
func mentionsHidden(t types.Type, pkg *types.Package) bool {
	return (&hiddenFinder{pkg: pkg, seen: map[types.Type]bool{}}).find(t)
}

type hiddenFinder struct {
	pkg  *types.Package
	seen map[types.Type]bool
}

func (h *hiddenFinder) find(t types.Type) bool {
	if t == nil || h.seen[t] {
		return false
	}

	h.seen[t] = true

	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg() != h.pkg && !obj.Exported() {
			return true
		}

		for i := range tt.TypeArgs().Len() {
			if h.find(tt.TypeArgs().At(i)) {
				return true
			}
		}

		return false
	case *types.Alias:
		return h.find(types.Unalias(tt))
	case *types.Pointer:
		return h.find(tt.Elem())
	case *types.Slice:
		return h.find(tt.Elem())
	case *types.Array:
		return h.find(tt.Elem())
	case *types.Chan:
		return h.find(tt.Elem())
	case *types.Map:
		return h.find(tt.Key()) || h.find(tt.Elem())
	case *types.Signature:
		return h.findTuple(tt.Params()) || h.findTuple(tt.Results())
	case *types.Tuple:
		return h.findTuple(tt)
	case *types.Struct:
		for i := range tt.NumFields() {
			if h.find(tt.Field(i).Type()) {
				return true
			}
		}

		return false
	case *types.Interface:
		for i := range tt.NumMethods() {
			if h.find(tt.Method(i).Type()) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

func (h *hiddenFinder) findTuple(t *types.Tuple) bool {
	for i := range t.Len() {
		if h.find(t.At(i).Type()) {
			return true
		}
	}

	return false
}
