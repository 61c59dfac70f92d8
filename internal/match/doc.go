// Package match provides name normalization and Levenshtein similarity for
// resolving answers typed by name and suggesting control types in lint output.
//
// Key functions:
//   - NormalizeName: folds case and separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks close candidates for a misspelled name
package match
