// Package match ranks known names by edit distance so diagnostics can offer
// "did you mean" suggestions for misspelled modifiers, kinds and type names.
//
// Key functions:
//   - Levenshtein: edit distance between two strings
//   - Similarity: distance normalized to a 0..1 score
//   - Suggest: closest candidates for an unknown name
package match
