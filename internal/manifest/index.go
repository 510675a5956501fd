package manifest

import (
	"fmt"
	"slices"
	"strings"

	"weakwrap-generator/internal/diagnostic"
	"weakwrap-generator/internal/match"
	"weakwrap-generator/internal/model"
)

const (
	kindClass     = "class"
	kindInterface = "interface"
)

var kindNames = []string{kindClass, kindInterface}

// entry is one declared type with its resolved supertypes.
type entry struct {
	file      *File
	decl      *TypeDecl
	qualified string
	kind      model.TypeKind
	modifiers model.ModifierSet
	// supers holds the qualified names of declared supertypes, in order.
	// java.lang.Object is implicit and never listed.
	supers []string
	// superArgs holds the type arguments given to each entry of supers.
	superArgs [][]string
	// invalid marks a type that cannot be resolved.
	invalid bool
}

func (e *entry) position() string {
	return e.file.Path
}

// index holds every type of a manifest set by qualified name.
type index struct {
	byName map[string]*entry
	// order is declaration order across files.
	order []*entry
}

// Validate checks a set of manifests and reports every problem found.
func Validate(files []*File) *diagnostic.Diagnostics {
	_, diags := buildIndex(files)
	return diags
}

func buildIndex(files []*File) (*index, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	idx := &index{byName: make(map[string]*entry)}

	for _, f := range files {
		for i := range f.Types {
			e := newEntry(f, &f.Types[i], diags)
			if e == nil {
				continue
			}

			if prev, ok := idx.byName[e.qualified]; ok {
				diags.Add(diagnostic.Diagnostic{
					Severity: diagnostic.SeverityError,
					Code:     diagnostic.CodeDuplicateType,
					Message:  fmt.Sprintf("type already declared in %s", prev.position()),
					Type:     e.qualified,
					Position: e.position(),
				})

				continue
			}

			idx.byName[e.qualified] = e
			idx.order = append(idx.order, e)
		}
	}

	for _, e := range idx.order {
		idx.resolveSupertypes(e, diags)
	}

	return idx, diags
}

func newEntry(f *File, decl *TypeDecl, diags *diagnostic.Diagnostics) *entry {
	if !validTypeName(decl.Name) {
		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeManifest,
			Message:  fmt.Sprintf("invalid type name %q", decl.Name),
			Position: f.Path,
		})

		return nil
	}

	e := &entry{
		file:      f,
		decl:      decl,
		qualified: model.QualifiedNameOf(f.Package, decl.Name),
	}

	switch decl.Kind {
	case kindClass:
		e.kind = model.KindClass
	case kindInterface:
		e.kind = model.KindInterface
	default:
		e.invalid = true
		diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityError,
			Code:        diagnostic.CodeUnknownKind,
			Message:     fmt.Sprintf("unknown kind %q", decl.Kind),
			Type:        e.qualified,
			Position:    e.position(),
			Suggestions: match.Suggest(decl.Kind, kindNames, match.DefaultSuggestions),
		})
	}

	mods, ok := parseModifiers(decl.Modifiers, e, "", diags)
	if !ok {
		e.invalid = true
	}

	e.modifiers = mods

	for i := range decl.Methods {
		if !validateMethod(&decl.Methods[i], e, diags) {
			e.invalid = true
		}
	}

	return e
}

func validTypeName(name string) bool {
	if name == "" {
		return false
	}

	return !slices.Contains(strings.Split(name, "."), "")
}

func validateMethod(m *MethodDecl, e *entry, diags *diagnostic.Diagnostics) bool {
	ok := true

	fail := func(msg string) {
		ok = false

		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeManifest,
			Message:  msg,
			Type:     e.qualified,
			Member:   m.Name,
			Position: e.position(),
		})
	}

	if m.Name == "" {
		fail("method without a name")
	}

	if _, valid := parseModifiers(m.Modifiers, e, m.Name, diags); !valid {
		ok = false
	}

	if m.Variadic {
		switch {
		case len(m.Parameters) == 0:
			fail("variadic method without parameters")
		case !strings.HasSuffix(m.Parameters[len(m.Parameters)-1].Type, "[]"):
			fail("last parameter of a variadic method must be an array type")
		}
	}

	for _, p := range m.Parameters {
		if p.Type == "" {
			fail(fmt.Sprintf("parameter %q has no type", p.Name))
		}
	}

	return ok
}

func modifierNames() []string {
	all := model.AllModifiers()
	names := make([]string, len(all))

	for i, m := range all {
		names[i] = m.String()
	}

	return names
}

func parseModifiers(names []string, e *entry, member string, diags *diagnostic.Diagnostics) (model.ModifierSet, bool) {
	var set model.ModifierSet

	ok := true

	for _, name := range names {
		m, found := model.ParseModifier(name)
		if !found {
			ok = false

			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        diagnostic.CodeUnknownModifier,
				Message:     fmt.Sprintf("unknown modifier %q", name),
				Type:        e.qualified,
				Member:      member,
				Position:    e.position(),
				Suggestions: match.Suggest(name, modifierNames(), match.DefaultSuggestions),
			})

			continue
		}

		set = set.With(m)
	}

	return set, ok
}

// resolveSupertypes maps each declared supertype spelling to a qualified
// name in the index.
func (idx *index) resolveSupertypes(e *entry, diags *diagnostic.Diagnostics) {
	classSupers := 0

	for _, spelling := range e.decl.Extends {
		base := eraseTypeArguments(spelling)
		if isRootType(base) {
			continue
		}

		qualified, found := idx.lookup(e.file, base)
		if !found {
			e.invalid = true

			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        diagnostic.CodeUnknownSupertype,
				Message:     fmt.Sprintf("unknown supertype %q", spelling),
				Type:        e.qualified,
				Position:    e.position(),
				Suggestions: match.Suggest(base, idx.knownNames(e.file), match.DefaultSuggestions),
			})

			continue
		}

		parent := idx.byName[qualified]
		if parent.kind == model.KindClass {
			classSupers++

			if e.kind == model.KindInterface {
				e.invalid = true

				diags.AddError(diagnostic.CodeManifest,
					fmt.Sprintf("interface cannot extend class %s", qualified), e.qualified, "")
			}
		}

		args := typeArguments(spelling)
		if len(args) > 0 && len(args) != len(parent.decl.TypeParameters) {
			e.invalid = true

			diags.AddError(diagnostic.CodeManifest,
				fmt.Sprintf("supertype %q has %d type arguments, %s declares %d type parameters",
					spelling, len(args), qualified, len(parent.decl.TypeParameters)), e.qualified, "")

			continue
		}

		e.supers = append(e.supers, qualified)
		e.superArgs = append(e.superArgs, args)
	}

	if classSupers > 1 {
		e.invalid = true

		diags.AddError(diagnostic.CodeManifest, "a class can extend at most one class", e.qualified, "")
	}
}

// lookup finds a type spelled from inside file: a type of the same package
// (nested names included), then an imported type or a member of one, then
// a fully qualified name.
func (idx *index) lookup(file *File, name string) (string, bool) {
	candidates := []string{model.QualifiedNameOf(file.Package, name)}

	first, rest, nested := strings.Cut(name, ".")
	for _, imp := range file.Imports {
		if model.SimpleNameOf(imp) != first {
			continue
		}

		if nested {
			candidates = append(candidates, imp+"."+rest)
		} else {
			candidates = append(candidates, imp)
		}
	}

	candidates = append(candidates, name)

	for _, c := range candidates {
		if _, ok := idx.byName[c]; ok {
			return c, true
		}
	}

	return "", false
}

// knownNames lists the spellings a type in file may use for other types.
func (idx *index) knownNames(file *File) []string {
	names := make([]string, 0, len(idx.order))

	for _, e := range idx.order {
		if e.file.Package == file.Package {
			names = append(names, e.decl.Name)
			continue
		}

		names = append(names, e.qualified)
	}

	return names
}

func eraseTypeArguments(spelling string) string {
	if i := strings.IndexByte(spelling, '<'); i >= 0 {
		return strings.TrimSpace(spelling[:i])
	}

	return strings.TrimSpace(spelling)
}
