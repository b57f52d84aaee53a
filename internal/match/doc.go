// Package match provides datatype normalization, the source/target datatype
// compatibility table and "did you mean" suggestions for unknown names.
//
// Key functions:
//   - NormalizeDatatype: canonical spelling of a datatype through an alias table
//   - CompatibilityTable.Check: verdict for a source/target datatype pair
//   - Suggest: closest allowed names by Levenshtein distance
package match
