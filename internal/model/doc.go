// Package model defines the immutable descriptors exchanged between the
// drivers, the planning core and the renderers.
//
// A driver (Go packages, YAML/JSON manifests) builds one TypeDescriptor per
// annotated type, including the complete member set with inherited members
// already merged. The plan package turns it into a wrapper spec.
//
// Key types:
//   - TypeDescriptor: the original class or interface
//   - MemberDescriptor: one method of the original type
//   - TypeRef: a type spelling tagged with its default-value category
//   - ModifierSet: modifier flags of types and members
package model
