package manifest

import (
	"fmt"
	"slices"
	"strings"

	"weakwrap-generator/internal/diagnostic"
	"weakwrap-generator/internal/model"
)

// Resolve builds a TypeDescriptor for every type of files marked for
// wrapping. Invalid types, and types inheriting from them, are reported and
// skipped; the rest are still resolved.
func Resolve(files []*File) ([]*model.TypeDescriptor, *diagnostic.Diagnostics) {
	idx, diags := buildIndex(files)

	pos := make(map[string]int, len(idx.order))
	for i, e := range idx.order {
		pos[e.qualified] = i
	}

	order, cyclic := topoSort(len(idx.order), func(i int) []int {
		supers := idx.order[i].supers
		deps := make([]int, len(supers))

		for j, s := range supers {
			deps[j] = pos[s]
		}

		return deps
	})

	for _, i := range cyclic {
		e := idx.order[i]
		e.invalid = true

		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeInheritanceCycle,
			Message:  "type is part of or inherits from an inheritance cycle",
			Type:     e.qualified,
			Position: e.position(),
		})
	}

	members := make(map[string][]model.MemberDescriptor, len(idx.order))

	for _, i := range order {
		e := idx.order[i]
		if e.invalid {
			continue
		}

		if bad := idx.invalidSupertype(e); bad != "" {
			e.invalid = true

			diags.AddWarning(diagnostic.CodeUnknownSupertype,
				fmt.Sprintf("skipped: supertype %s is invalid", bad), e.qualified, "")

			continue
		}

		members[e.qualified] = idx.completeMembers(e, members)
	}

	var out []*model.TypeDescriptor

	for _, e := range idx.order {
		if e.invalid || !e.decl.ShouldWrap() {
			continue
		}

		out = append(out, idx.descriptor(e, members[e.qualified]))
	}

	return out, diags
}

func (idx *index) invalidSupertype(e *entry) string {
	for _, s := range e.supers {
		if idx.byName[s].invalid {
			return s
		}
	}

	return ""
}

// memberSet keeps members in first-declaration order, keyed by name and
// parameter types.
type memberSet struct {
	list []model.MemberDescriptor
	pos  map[string]int
}

func newMemberSet() *memberSet {
	return &memberSet{pos: make(map[string]int)}
}

// inherit adds an inherited member. Root members are already present and
// never replace an override, and a concrete member is not replaced by an
// abstract redeclaration.
func (s *memberSet) inherit(m model.MemberDescriptor) {
	i, ok := s.pos[m.Key()]
	if ok {
		existing := s.list[i]
		if m.DeclaringPackage == RootPackage && existing.DeclaringPackage != RootPackage {
			return
		}

		if m.Modifiers.Has(model.Abstract) && !existing.Modifiers.Has(model.Abstract) {
			return
		}
	}

	s.put(m)
}

// put adds m or overrides the member with the same key in place.
func (s *memberSet) put(m model.MemberDescriptor) {
	key := m.Key()
	if i, ok := s.pos[key]; ok {
		s.list[i] = m
		return
	}

	s.pos[key] = len(s.list)
	s.list = append(s.list, m)
}

// completeMembers returns root members, then inherited members in supertype
// order, then declared members. Inherited members are spelled with the type
// arguments of the extends clause.
func (idx *index) completeMembers(e *entry, resolved map[string][]model.MemberDescriptor) []model.MemberDescriptor {
	set := newMemberSet()

	for _, m := range rootMembers(e.kind) {
		set.put(m)
	}

	for i, s := range e.supers {
		bound := bindings(idx.byName[s].decl.TypeParameters, e.superArgs[i])

		for _, m := range resolved[s] {
			set.inherit(substituteMember(m, bound))
		}
	}

	for i := range e.decl.Methods {
		set.put(idx.declaredMember(e, &e.decl.Methods[i]))
	}

	return set.list
}

func (idx *index) declaredMember(e *entry, decl *MethodDecl) model.MemberDescriptor {
	// already validated
	mods, _ := parseModifiers(decl.Modifiers, e, decl.Name, &diagnostic.Diagnostics{})

	if e.kind == model.KindInterface && !mods.Has(model.Private) {
		mods = mods.With(model.Public)
		if !mods.Has(model.Static) {
			mods = mods.With(model.Abstract)
		}
	}

	params := make([]model.Parameter, len(decl.Parameters))
	for i, p := range decl.Parameters {
		params[i] = model.Parameter{Name: p.Name, Type: strings.TrimSpace(p.Type)}
	}

	return model.MemberDescriptor{
		Name:             decl.Name,
		Modifiers:        mods,
		DeclaringPackage: e.file.Package,
		TypeParameters:   typeParams(decl.TypeParameters),
		Parameters:       params,
		Variadic:         decl.Variadic,
		ThrownTypes:      slices.Clone(decl.Throws),
		ReturnType:       typeRefOf(decl.Returns),
	}
}

func (idx *index) descriptor(e *entry, members []model.MemberDescriptor) *model.TypeDescriptor {
	nesting := model.TopLevel
	mods := e.modifiers

	if outer, _, nested := cutLast(e.decl.Name); nested {
		nesting = model.StaticMember

		enclosing, ok := idx.byName[model.QualifiedNameOf(e.file.Package, outer)]
		if e.kind == model.KindInterface || (ok && enclosing.kind == model.KindInterface) {
			mods = mods.With(model.Static)
		}
	}

	imports := make([]model.Import, len(e.file.Imports))
	for i, path := range e.file.Imports {
		imports[i] = model.Import{Path: path}
	}

	return &model.TypeDescriptor{
		QualifiedName:  e.qualified,
		SimpleName:     model.SimpleNameOf(e.decl.Name),
		PackageName:    e.file.Package,
		NestingKind:    nesting,
		Kind:           e.kind,
		Modifiers:      mods,
		TypeParameters: typeParams(e.decl.TypeParameters),
		Members:        members,
		Imports:        imports,
		Position:       e.position(),
	}
}

func typeParams(decls []TypeParamDecl) []model.TypeParam {
	if len(decls) == 0 {
		return nil
	}

	out := make([]model.TypeParam, len(decls))
	for i, d := range decls {
		out[i] = model.TypeParam{Name: d.Name, Bound: d.Bound}
	}

	return out
}

func cutLast(name string) (before, after string, found bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, "", false
	}

	return name[:i], name[i+1:], true
}
