// Package manifest reads type manifests: YAML or JSON descriptions of
// Java-style classes and interfaces, for hosts without a Go front end.
//
// A manifest declares a package, its imports and a list of types with their
// supertypes and methods. Resolve turns a set of manifests into
// model.TypeDescriptors carrying the complete member set of every type:
// the members of java.lang.Object first, then inherited members in
// supertype order, then declared members, each override replacing the
// inherited entry in place.
package manifest
