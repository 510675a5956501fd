package plan

import (
	"errors"
)

// TypeValidationMessage is the fixed message reported for types that cannot be wrapped.
const TypeValidationMessage = "only top level and static nested types can be weak-wrapped"

// ErrTypeNotProxyable matches every *TypeNotProxyableError via errors.Is.
var ErrTypeNotProxyable = errors.New(TypeValidationMessage)

// TypeNotProxyableError reports a type rejected by Validate.
type TypeNotProxyableError struct {
	// TypeName is the qualified name of the rejected type.
	TypeName string
}

// Error implements the error interface.
func (e *TypeNotProxyableError) Error() string {
	return e.TypeName + ": " + TypeValidationMessage
}

// Is makes errors.Is(err, ErrTypeNotProxyable) true.
func (e *TypeNotProxyableError) Is(target error) bool {
	return target == ErrTypeNotProxyable
}
