package plan

import (
	"weakwrap-generator/internal/model"
)

var (
	voidT    = model.VoidType()
	boolT    = model.TypeRef{Name: "boolean", Category: model.CategoryBooleanPrimitive, Primitive: "boolean"}
	intT     = model.TypeRef{Name: "int", Category: model.CategoryOtherPrimitive, Primitive: "int"}
	objectT  = model.TypeRef{Name: "Object", Category: model.CategoryReference}
	stringT  = model.TypeRef{Name: "String", Category: model.CategoryReference}
	classT   = model.TypeRef{Name: "Class<?>", Category: model.CategoryReference}
	publicM  = model.NewModifierSet(model.Public)
	pubFinal = model.NewModifierSet(model.Public, model.Final, model.Native)
)

func method(name string, mods model.ModifierSet, ret model.TypeRef, params ...model.Parameter) model.MemberDescriptor {
	return model.MemberDescriptor{
		Name:             name,
		Modifiers:        mods,
		DeclaringPackage: "java.lang",
		Parameters:       params,
		ReturnType:       ret,
	}
}

// rootMembers mirrors the members every class inherits from java.lang.Object.
func rootMembers() []model.MemberDescriptor {
	protected := model.NewModifierSet(model.Protected)

	return []model.MemberDescriptor{
		method("hashCode", model.NewModifierSet(model.Public, model.Native), intT),
		method("equals", publicM, boolT, model.Parameter{Name: "arg0", Type: "Object"}),
		method("toString", publicM, stringT),
		method("clone", protected.With(model.Native), objectT),
		method("finalize", protected, voidT),
		method("getClass", pubFinal, classT),
		method("notify", pubFinal, voidT),
		method("notifyAll", pubFinal, voidT),
		method("wait", model.NewModifierSet(model.Public, model.Final), voidT),
		method("wait", pubFinal, voidT, model.Parameter{Name: "arg0", Type: "long"}),
		method("wait", model.NewModifierSet(model.Public, model.Final), voidT,
			model.Parameter{Name: "arg0", Type: "long"}, model.Parameter{Name: "arg1", Type: "int"}),
	}
}

func classDescriptor(pkg, nested string, members ...model.MemberDescriptor) *model.TypeDescriptor {
	return &model.TypeDescriptor{
		QualifiedName: model.QualifiedNameOf(pkg, nested),
		SimpleName:    model.SimpleNameOf(nested),
		PackageName:   pkg,
		NestingKind:   model.TopLevel,
		Kind:          model.KindClass,
		Modifiers:     publicM,
		Members:       append(rootMembers(), members...),
	}
}
