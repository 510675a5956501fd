package manifest

import (
	"strings"

	"weakwrap-generator/internal/model"
)

var numericPrimitives = map[string]bool{
	"byte":   true,
	"short":  true,
	"int":    true,
	"long":   true,
	"float":  true,
	"double": true,
	"char":   true,
}

// typeRefOf classifies a Java type spelling. Arrays, boxed types, type
// variables and generic types are all references.
func typeRefOf(spelling string) model.TypeRef {
	spelling = strings.TrimSpace(spelling)

	switch {
	case spelling == "" || spelling == "void":
		return model.VoidType()
	case spelling == "boolean" || numericPrimitives[spelling]:
		return primitiveType(spelling)
	default:
		return referenceType(spelling)
	}
}

func primitiveType(name string) model.TypeRef {
	if name == "boolean" {
		return model.TypeRef{Name: name, Category: model.CategoryBooleanPrimitive, Primitive: name}
	}

	return model.TypeRef{Name: name, Category: model.CategoryOtherPrimitive, Primitive: name}
}

func referenceType(name string) model.TypeRef {
	return model.TypeRef{Name: name, Category: model.CategoryReference}
}
