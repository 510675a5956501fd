// Package gen renders plan.WrapperSpecs into source files.
//
// Both renderers use text/template and are deterministic: equal specs give
// byte-identical files.
//
//   - GoRenderer emits a wrapper around a weak.Pointer, formatted with
//     golang.org/x/tools/imports. Interfaces get a wrapper that is generic
//     over the concrete implementation, since only pointers can be held
//     weakly.
//   - JavaRenderer emits a class holding a java.lang.ref.WeakReference,
//     placed in the package directory of the original type.
package gen
