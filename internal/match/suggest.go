package match

import (
	"sort"
)

// DefaultSuggestionLimit is the number of suggestions diagnostics carry.
const DefaultSuggestionLimit = 3

type scored struct {
	name     string
	distance int
}

// Suggest returns up to limit candidates whose normalized form is close to
// the normalized form of name, closest first. Candidates equal to name are
// skipped. Ties are broken by candidate name so the result is deterministic.
//
// A candidate qualifies when its distance is at most a third of the length
// of the normalized name (and at least 1).
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	target := NormalizeName(name)
	threshold := max(1, len([]rune(target))/3)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		d := Levenshtein(target, NormalizeName(c))
		if d > threshold {
			continue
		}

		hits = append(hits, scored{name: c, distance: d})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].distance != hits[j].distance {
			return hits[i].distance < hits[j].distance
		}

		return hits[i].name < hits[j].name
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
