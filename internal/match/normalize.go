package match

import (
	"strings"
	"unicode"
)

// legalTokens are dropped by NormalizeName; they vary between records for
// the same firm ("Alfred Meakin" vs "Alfred Meakin Ltd.").
var legalTokens = map[string]struct{}{
	"and":     {},
	"co":      {},
	"company": {},
	"inc":     {},
	"limited": {},
	"ltd":     {},
	"plc":     {},
}

// NormalizeName normalizes a company name for fuzzy matching.
// The pipeline:
// 1. Case-fold to lower.
// 2. Split into alphanumeric tokens (punctuation and spaces are separators).
// 3. Drop legal-form tokens.
// 4. Join the remaining tokens without separators.
func NormalizeName(s string) string {
	tokens := TokenizeName(s)

	var b strings.Builder

	for _, tok := range tokens {
		if _, ok := legalTokens[tok]; ok {
			continue
		}

		b.WriteString(tok)
	}

	return b.String()
}

// TokenizeName splits a name into lowercase alphanumeric tokens.
//   - "J. & G. Meakin" -> ["j", "g", "meakin"]
//   - "Wood & Sons Ltd" -> ["wood", "sons", "ltd"]
func TokenizeName(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
