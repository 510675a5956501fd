// Package analyze is the Go front end of the generator.
//
// It loads packages with golang.org/x/tools/go/packages, finds type
// declarations annotated with a //weakwrap:wrap directive, and describes each
// one as a model.TypeDescriptor: its kind, nesting, type parameters and the
// complete method set, with every type spelled relative to the declaring
// package.
//
// Key types:
//   - Analyzer: loads packages and collects targets
//   - Target: one annotated type plus where its wrapper goes
//   - Directive: the parsed //weakwrap:wrap comment
package analyze
