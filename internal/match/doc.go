// Package match finds company names that resemble a name with no company
// record, so that data-quality diagnostics can say "did you mean ...".
//
// Key functions:
//   - NormalizeName: folds case, punctuation and legal suffixes ("Ltd", "& Co")
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names by distance
package match
