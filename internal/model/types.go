package model

import (
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// TypeKind tells whether the original type is a class or an interface.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindInterface
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	default:
		return UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// NestingKind describes where a type is declared.
type NestingKind int

const (
	TopLevel       NestingKind = iota // package-level declaration
	StaticMember                      // member type; needs the static modifier to be wrapped
	InstanceMember                    // local or anonymous type bound to an enclosing scope
)

// String returns a human-readable representation of the NestingKind.
func (k NestingKind) String() string {
	switch k {
	case TopLevel:
		return "top_level"
	case StaticMember:
		return "static_member"
	case InstanceMember:
		return "instance_member"
	default:
		return UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k NestingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Category classifies a return type by the default value a forwarding
// method falls back to.
type Category int

const (
	CategoryVoid             Category = iota // no result
	CategoryBooleanPrimitive                 // false
	CategoryOtherPrimitive                   // zero of the primitive
	CategoryReference                        // absent (null / nil)
	CategoryValue                            // zero value of a by-value composite
	CategoryTuple                            // several results, one default each
)

// String returns a human-readable representation of the Category.
func (c Category) String() string {
	switch c {
	case CategoryVoid:
		return "void"
	case CategoryBooleanPrimitive:
		return "boolean_primitive"
	case CategoryOtherPrimitive:
		return "other_primitive"
	case CategoryReference:
		return "reference"
	case CategoryValue:
		return "value"
	case CategoryTuple:
		return "tuple"
	default:
		return UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// TypeRef is a type as spelled in the host language, tagged with its category.
type TypeRef struct {
	// Name is the source spelling, e.g. "List<Long>" or "map[string]int".
	Name string
	// Category selects the fallback value of a forwarding method.
	Category Category
	// Primitive is the underlying primitive spelling for primitive categories
	// (e.g. "string" for a Go type declared as `type Status string`).
	Primitive string `json:",omitempty"`
	// Components lists the individual results of a CategoryTuple.
	Components []TypeRef `json:",omitempty"`
}

// VoidType returns the TypeRef of a member without a result.
func VoidType() TypeRef {
	return TypeRef{Name: "void", Category: CategoryVoid}
}

// IsVoid reports whether the type denotes "no result".
func (t TypeRef) IsVoid() bool {
	return t.Category == CategoryVoid
}

// String returns the source spelling of the type.
func (t TypeRef) String() string {
	if t.Category == CategoryTuple && t.Name == "" {
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.Name
		}

		return "(" + strings.Join(parts, ", ") + ")"
	}

	return t.Name
}

// TypeParam is a generic type parameter with an optional bound.
type TypeParam struct {
	Name  string
	Bound string `json:",omitempty"`
}

// Parameter is one formal parameter of a member.
type Parameter struct {
	Name string
	// Type is the declared type. For a variadic last parameter this is the
	// array/slice form ("Object[]", "[]any").
	Type string
}

// Import is a package the host syntax needs in order to spell member types.
type Import struct {
	Name string `json:",omitempty"` // explicit alias, empty for the default name
	Path string
}

// MemberDescriptor describes one method of the original type.
type MemberDescriptor struct {
	Name      string
	Modifiers ModifierSet
	// DeclaringPackage is the package of the type declaring this member.
	DeclaringPackage string
	TypeParameters   []TypeParam `json:",omitempty"`
	Parameters       []Parameter `json:",omitempty"`
	// Variadic marks the last parameter as variadic.
	Variadic    bool     `json:",omitempty"`
	ThrownTypes []string `json:",omitempty"`
	ReturnType  TypeRef
}

// Key returns the overriding identity of the member: its name and parameter types.
func (m *MemberDescriptor) Key() string {
	types := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		types[i] = p.Type
	}

	return m.Name + "(" + strings.Join(types, ",") + ")"
}

// TypeDescriptor describes the original type to be wrapped.
type TypeDescriptor struct {
	// QualifiedName is the dotted full name, e.g. "com.example.Outer.Inner".
	QualifiedName string
	// SimpleName is the last segment of QualifiedName.
	SimpleName string
	// PackageName is empty for the default package.
	PackageName    string
	NestingKind    NestingKind
	Kind           TypeKind
	Modifiers      ModifierSet
	TypeParameters []TypeParam `json:",omitempty"`
	// Members is the complete member set, inherited members included.
	Members []MemberDescriptor
	Imports []Import `json:",omitempty"`
	// Position locates the declaration for diagnostics. It never affects output.
	Position string `json:",omitempty"`
}

// NestedName returns the qualified name without its package prefix
// ("Outer.Inner" for "com.example.Outer.Inner").
func (t *TypeDescriptor) NestedName() string {
	if t.PackageName == "" {
		return t.QualifiedName
	}

	return strings.TrimPrefix(t.QualifiedName, t.PackageName+".")
}

// TypeArguments returns the type parameter names, used to spell the original
// type inside generated code ("T, V"). Empty when the type is not generic.
func (t *TypeDescriptor) TypeArguments() []string {
	names := make([]string, len(t.TypeParameters))
	for i, tp := range t.TypeParameters {
		names[i] = tp.Name
	}

	return names
}

// QualifiedNameOf joins a package name and a nested type name.
func QualifiedNameOf(packageName, nestedName string) string {
	if packageName == "" {
		return nestedName
	}

	return packageName + "." + nestedName
}

// SimpleNameOf returns the last dot-separated segment of name.
func SimpleNameOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}

	return name
}
