// Package slug builds the identifiers used for item IDs, page filenames and
// HTML element IDs.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumeric matches a run of characters outside [0-9a-zA-Z].
var nonAlphanumeric = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// Make lowercases s and collapses every run of non-alphanumeric characters
// into a single underscore.
//
// Examples:
//   - "J&G Meakin" -> "j_g_meakin"
//   - "Royal Doulton (Burslem)" -> "royal_doulton_burslem_"
//
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "_")
}
