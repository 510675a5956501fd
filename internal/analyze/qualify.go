package analyze

import (
	"go/types"
	"sort"
	"strconv"

	"weakwrap-generator/internal/model"
)

// qualifier spells types relative to the target package and records the
// imports the spelling needs. Packages sharing a name get numbered aliases.
type qualifier struct {
	target *types.Package
	// names maps import path to the name used in generated code.
	names map[string]string
	// owners maps a used name back to its import path.
	owners map[string]string
	// declared maps import path to the package clause name.
	declared map[string]string
	// reserved are names the generated file already uses.
	reserved map[string]bool
}

func newQualifier(target *types.Package) *qualifier {
	return &qualifier{
		target:   target,
		names:    make(map[string]string),
		owners:   make(map[string]string),
		declared: make(map[string]string),
		reserved: map[string]bool{
			"weak": true,
		},
	}
}

// qualify implements types.Qualifier.
func (q *qualifier) qualify(p *types.Package) string {
	if p == q.target {
		return ""
	}

	if name, ok := q.names[p.Path()]; ok {
		return name
	}

	base := p.Name()
	name := base

	for n := 2; q.reserved[name] || (q.owners[name] != "" && q.owners[name] != p.Path()); n++ {
		name = base + strconv.Itoa(n)
	}

	q.names[p.Path()] = name
	q.owners[name] = p.Path()
	q.declared[p.Path()] = base

	return name
}

// imports returns the recorded imports sorted by path. The alias is set
// only when it differs from the package name.
func (q *qualifier) imports() []model.Import {
	if len(q.names) == 0 {
		return nil
	}

	paths := make([]string, 0, len(q.names))
	for p := range q.names {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	out := make([]model.Import, len(paths))
	for i, p := range paths {
		out[i] = model.Import{Path: p}
		if name := q.names[p]; name != q.declared[p] {
			out[i].Name = name
		}
	}

	return out
}

// usedNames returns the identifiers the recorded imports occupy.
func (q *qualifier) usedNames() []string {
	names := make([]string, 0, len(q.owners))
	for name := range q.owners {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
