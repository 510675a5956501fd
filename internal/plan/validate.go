package plan

import (
	"weakwrap-generator/internal/model"
)

// Validate checks that a type can be wrapped. Top level types are always
// accepted; member types only when they carry the static modifier, since an
// instance-bound type needs an enclosing instance the wrapper cannot supply.
func Validate(td *model.TypeDescriptor) error {
	switch td.NestingKind {
	case model.TopLevel:
		return nil
	case model.StaticMember:
		if td.Modifiers.Has(model.Static) {
			return nil
		}
	case model.InstanceMember:
	}

	return &TypeNotProxyableError{TypeName: td.QualifiedName}
}
