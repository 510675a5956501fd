// Package plan provides the synthesis pipeline that turns a TypeDescriptor
// into a WrapperSpec consumed by the renderers.
//
// Pipeline:
//  1. Validate: reject types bound to an enclosing instance
//  2. Select: keep the members a caller of the wrapper could legally invoke
//  3. For each selected member:
//     - CopySignature: reproduce the declaration minus abstract/native
//     - SynthesizeBody: dereference, forward if present, else fall back
//  4. Assemble: name, weak reference field, constructor, forwarding
//     methods, clear method and supertype relation
//
// The pipeline is a pure function of its input. Generate runs all steps and
// never returns a partial spec for a rejected type.
package plan
