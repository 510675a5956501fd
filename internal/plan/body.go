package plan

import (
	"weakwrap-generator/internal/model"
)

// DefaultKind selects the value returned when the weak reference is empty.
type DefaultKind int

const (
	DefaultFalse     DefaultKind = iota // boolean primitive
	DefaultZero                         // zero of a numeric or string primitive
	DefaultAbsent                       // null / nil
	DefaultZeroValue                    // zero value of a by-value composite
)

// String returns a human-readable representation of the DefaultKind.
func (k DefaultKind) String() string {
	switch k {
	case DefaultFalse:
		return "false"
	case DefaultZero:
		return "zero"
	case DefaultAbsent:
		return "absent"
	case DefaultZeroValue:
		return "zero_value"
	default:
		return model.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DefaultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// DefaultValue is one fallback result of a forwarding method.
type DefaultValue struct {
	Kind DefaultKind
	// Type is the result type the value stands in for.
	Type model.TypeRef
}

// Argument is one argument forwarded to the original member.
type Argument struct {
	Name string
	// Spread marks a variadic parameter passed through as a list.
	Spread bool `json:",omitempty"`
}

// Call is the invocation of the original member on the local variable.
type Call struct {
	Method string
	Args   []Argument `json:",omitempty"`
}

// Body is the null-safe forward-or-default body of a forwarding method:
//
//	local := deref(field)
//	if local is present { [return] local.Method(args...) }
//	[return fallback]
type Body struct {
	// Field is the held weak reference.
	Field string
	// Local receives the dereferenced value.
	Local string
	Call  Call
	// ReturnsResult is false for void members; the call is then a statement
	// and nothing follows the conditional.
	ReturnsResult bool
	// Fallback holds one value per result, empty for void members.
	Fallback []DefaultValue `json:",omitempty"`
}

// SynthesizeBody builds the forwarding body for m.
func SynthesizeBody(m *model.MemberDescriptor) Body {
	args := make([]Argument, len(m.Parameters))
	for i, p := range m.Parameters {
		args[i] = Argument{
			Name:   p.Name,
			Spread: m.Variadic && i == len(m.Parameters)-1,
		}
	}

	body := Body{
		Field: ReferenceFieldName,
		Local: LocalVarName,
		Call: Call{
			Method: m.Name,
			Args:   args,
		},
		ReturnsResult: !m.ReturnType.IsVoid(),
	}

	if body.ReturnsResult {
		body.Fallback = Defaults(m.ReturnType)
	}

	return body
}

// Defaults returns the fallback values for a result type: none for void,
// one per component for a tuple, one otherwise.
func Defaults(t model.TypeRef) []DefaultValue {
	switch t.Category {
	case model.CategoryVoid:
		return nil
	case model.CategoryTuple:
		var values []DefaultValue
		for _, c := range t.Components {
			values = append(values, Defaults(c)...)
		}

		return values
	default:
		return []DefaultValue{DefaultFor(t)}
	}
}

// DefaultFor maps a single non-void result type to its fallback value.
func DefaultFor(t model.TypeRef) DefaultValue {
	var kind DefaultKind

	switch t.Category {
	case model.CategoryBooleanPrimitive:
		kind = DefaultFalse
	case model.CategoryOtherPrimitive:
		kind = DefaultZero
	case model.CategoryValue:
		kind = DefaultZeroValue
	case model.CategoryReference, model.CategoryVoid, model.CategoryTuple:
		kind = DefaultAbsent
	default:
		kind = DefaultAbsent
	}

	return DefaultValue{Kind: kind, Type: t}
}
