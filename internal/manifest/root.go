package manifest

import (
	"weakwrap-generator/internal/model"
)

// RootPackage declares the universal root type.
const RootPackage = "java.lang"

const rootTypeName = "Object"

func isRootType(name string) bool {
	return name == rootTypeName || name == RootPackage+"."+rootTypeName
}

// rootMembers returns the instance methods of java.lang.Object in
// declaration order. Interfaces see only the public ones.
func rootMembers(kind model.TypeKind) []model.MemberDescriptor {
	public := model.NewModifierSet(model.Public)
	publicNative := public.With(model.Native)
	publicFinal := public.With(model.Final)
	publicFinalNative := publicFinal.With(model.Native)
	protected := model.NewModifierSet(model.Protected)

	intT := primitiveType("int")
	voidT := model.VoidType()
	objectParam := model.Parameter{Name: "arg0", Type: rootTypeName}
	interrupted := []string{"InterruptedException"}

	members := []model.MemberDescriptor{
		rootMethod("hashCode", publicNative, intT),
		rootMethod("equals", public, primitiveType("boolean"), objectParam),
		rootMethod("toString", public, referenceType("String")),
		withThrows(rootMethod("clone", protected.With(model.Native), referenceType(rootTypeName)),
			"CloneNotSupportedException"),
		withThrows(rootMethod("finalize", protected, voidT), "Throwable"),
		rootMethod("getClass", publicFinalNative, referenceType("Class<?>")),
		rootMethod("notify", publicFinalNative, voidT),
		rootMethod("notifyAll", publicFinalNative, voidT),
		withThrows(rootMethod("wait", publicFinal, voidT), interrupted...),
		withThrows(rootMethod("wait", publicFinalNative, voidT,
			model.Parameter{Name: "arg0", Type: "long"}), interrupted...),
		withThrows(rootMethod("wait", publicFinal, voidT,
			model.Parameter{Name: "arg0", Type: "long"}, model.Parameter{Name: "arg1", Type: "int"}), interrupted...),
	}

	if kind == model.KindClass {
		return members
	}

	var visible []model.MemberDescriptor

	for _, m := range members {
		if m.Modifiers.Has(model.Public) {
			visible = append(visible, m)
		}
	}

	return visible
}

func rootMethod(name string, mods model.ModifierSet, ret model.TypeRef, params ...model.Parameter) model.MemberDescriptor {
	return model.MemberDescriptor{
		Name:             name,
		Modifiers:        mods,
		DeclaringPackage: RootPackage,
		Parameters:       params,
		ReturnType:       ret,
	}
}

func withThrows(m model.MemberDescriptor, thrown ...string) model.MemberDescriptor {
	m.ThrownTypes = thrown
	return m
}
