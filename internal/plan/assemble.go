package plan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"weakwrap-generator/internal/model"
)

// Fixed identifiers of the generated code. Golden files depend on them.
const (
	ClassNamePrefix    = "WeakWrap"
	ReferenceFieldName = "weakWrap"
	LocalVarName       = "original"
	ClearMethodName    = "clearWeakWrapRef"
)

// SupertypeRelation is how the wrapper relates to the original type.
type SupertypeRelation int

const (
	NoSupertype SupertypeRelation = iota // a final class cannot be extended
	Extends
	Implements
)

// String returns a human-readable representation of the SupertypeRelation.
func (r SupertypeRelation) String() string {
	switch r {
	case NoSupertype:
		return "none"
	case Extends:
		return "extends"
	case Implements:
		return "implements"
	default:
		return model.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r SupertypeRelation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// OriginalType identifies the wrapped type inside a WrapperSpec.
type OriginalType struct {
	QualifiedName  string
	NestedName     string
	SimpleName     string
	Kind           model.TypeKind
	TypeParameters []model.TypeParam `json:",omitempty"`
}

// TypeArguments returns the type parameter names of the original type.
func (o *OriginalType) TypeArguments() []string {
	names := make([]string, len(o.TypeParameters))
	for i, tp := range o.TypeParameters {
		names[i] = tp.Name
	}

	return names
}

// Field is the held weak reference.
type Field struct {
	Name string
	// Referent is the nested name of the weakly referenced type.
	Referent string
}

// Constructor takes one instance of the original type and stores a weak
// reference to it.
type Constructor struct {
	ParamName string
	ParamType string
}

// ForwardingMethod is one generated method: a copied signature plus the
// forward-or-default body.
type ForwardingMethod struct {
	Signature Signature
	Body      Body
}

// ClearMethod releases the held reference unconditionally.
type ClearMethod struct {
	Name string
}

// Supertype is the inheritance relationship to the original type.
type Supertype struct {
	Relation SupertypeRelation
	Name     string
}

// WrapperSpec is the complete description of one generated wrapper type.
type WrapperSpec struct {
	WrapClassName string
	PackageName   string
	Original      OriginalType
	Imports       []model.Import `json:",omitempty"`
	Field         Field
	LocalVarName  string
	Constructor   Constructor
	Methods       []ForwardingMethod `json:",omitempty"`
	ClearMethod   ClearMethod
	Supertype     Supertype
}

// Generate runs the whole pipeline for one type. A rejected type yields a
// *TypeNotProxyableError and no spec.
func Generate(td *model.TypeDescriptor) (*WrapperSpec, error) {
	if err := Validate(td); err != nil {
		return nil, err
	}

	spec := Assemble(td, Select(td))

	return &spec, nil
}

// Assemble builds the WrapperSpec of td from its selected members.
func Assemble(td *model.TypeDescriptor, selected []model.MemberDescriptor) WrapperSpec {
	nested := td.NestedName()

	methods := make([]ForwardingMethod, 0, len(selected))
	for i := range selected {
		methods = append(methods, ForwardingMethod{
			Signature: CopySignature(&selected[i]),
			Body:      SynthesizeBody(&selected[i]),
		})
	}

	relation := Extends
	if td.Kind == model.KindInterface {
		relation = Implements
	} else if td.Modifiers.Has(model.Final) {
		relation = NoSupertype
	}

	return WrapperSpec{
		WrapClassName: WrapClassName(nested),
		PackageName:   td.PackageName,
		Original: OriginalType{
			QualifiedName:  td.QualifiedName,
			NestedName:     nested,
			SimpleName:     td.SimpleName,
			Kind:           td.Kind,
			TypeParameters: cloneOrEmpty(td.TypeParameters),
		},
		Imports: cloneOrEmpty(td.Imports),
		Field: Field{
			Name:     ReferenceFieldName,
			Referent: nested,
		},
		LocalVarName: LocalVarName,
		Constructor: Constructor{
			ParamName: ConstructorParamName(nested),
			ParamType: nested,
		},
		Methods:     methods,
		ClearMethod: ClearMethod{Name: ClearMethodName},
		Supertype: Supertype{
			Relation: relation,
			Name:     nested,
		},
	}
}

// WrapClassName returns the wrapper name for a nested type name
// ("Outer.Inner" -> "WeakWrapOuterInner").
func WrapClassName(nestedName string) string {
	return ClassNamePrefix + strings.ReplaceAll(nestedName, ".", "")
}

// ConstructorParamName lowers the first letter of a nested type name and drops
// the separators ("SomeInterface.View" -> "someInterfaceView"). A result that
// would shadow the reference field gets a "Ref" suffix.
func ConstructorParamName(nestedName string) string {
	name := strings.ReplaceAll(nestedName, ".", "")
	if name == "" {
		return name
	}

	r, size := utf8.DecodeRuneInString(name)
	name = string(unicode.ToLower(r)) + name[size:]

	if name == ReferenceFieldName {
		name += "Ref"
	}

	return name
}
