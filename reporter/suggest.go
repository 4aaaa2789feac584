package reporter

import "github.com/agnivade/levenshtein"

// maxSuggestionDistance bounds how different a candidate name may be from
// the unresolved reference before it's not worth suggesting; beyond this,
// "did you mean" is more confusing than helpful.
const maxSuggestionDistance = 3

// Suggest returns the candidate closest to name by edit distance, or "" if
// no candidate is within maxSuggestionDistance.
func Suggest(name string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1

	for _, candidate := range candidates {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}

	return best
}
