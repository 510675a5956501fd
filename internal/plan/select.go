package plan

import (
	"weakwrap-generator/internal/model"
)

// Select returns the members of td eligible for forwarding, in member order.
// The type is expected to have passed Validate.
func Select(td *model.TypeDescriptor) []model.MemberDescriptor {
	var selected []model.MemberDescriptor

	for i := range td.Members {
		if IsEligible(&td.Members[i], td.PackageName) {
			selected = append(selected, td.Members[i])
		}
	}

	return selected
}

// IsEligible applies the forwarding rules to one member of a type living in
// targetPackage:
//   - private, static and final members are never forwarded
//   - protected members only when declared in targetPackage
//   - everything else (public, package-default, abstract) is forwarded
func IsEligible(m *model.MemberDescriptor, targetPackage string) bool {
	mods := m.Modifiers
	if mods.Has(model.Private) || mods.Has(model.Static) || mods.Has(model.Final) {
		return false
	}

	if mods.Has(model.Protected) {
		return m.DeclaringPackage == targetPackage
	}

	return true
}
