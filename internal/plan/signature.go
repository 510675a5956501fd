package plan

import (
	"slices"

	"weakwrap-generator/internal/model"
)

// Signature is the declaration of a forwarding method.
type Signature struct {
	Name           string
	Modifiers      model.ModifierSet
	TypeParameters []model.TypeParam `json:",omitempty"`
	Parameters     []model.Parameter `json:",omitempty"`
	Variadic       bool              `json:",omitempty"`
	ThrownTypes    []string          `json:",omitempty"`
	ReturnType     model.TypeRef
}

// strippedModifiers never appear on a forwarding method, which always has a
// concrete body.
var strippedModifiers = []model.Modifier{model.Abstract, model.Native}

// CopySignature reproduces the declaration of m for the forwarding method.
func CopySignature(m *model.MemberDescriptor) Signature {
	mods := m.Modifiers
	for _, s := range strippedModifiers {
		mods = mods.Without(s)
	}

	return Signature{
		Name:           m.Name,
		Modifiers:      mods,
		TypeParameters: cloneOrEmpty(m.TypeParameters),
		Parameters:     cloneOrEmpty(m.Parameters),
		Variadic:       m.Variadic,
		ThrownTypes:    cloneOrEmpty(m.ThrownTypes),
		ReturnType:     m.ReturnType,
	}
}

// ParameterNames returns the parameter names in declaration order.
func (s *Signature) ParameterNames() []string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = p.Name
	}

	return names
}

func cloneOrEmpty[S ~[]E, E any](s S) S {
	if len(s) == 0 {
		return S{}
	}

	return slices.Clone(s)
}
