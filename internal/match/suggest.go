package match

import "sort"

// DefaultSuggestScore is the minimum similarity for a suggestion.
const DefaultSuggestScore = 0.6

// Suggest returns the candidates scoring at least minScore against name,
// best first. Exact normalized matches are included.
func Suggest(name string, candidates []string, minScore float64) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if s := Score(name, c); s >= minScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}

// Find returns the index of the first candidate equal to name after normalization.
func Find(name string, candidates []string) (int, bool) {
	for i, c := range candidates {
		if SameName(name, c) {
			return i, true
		}
	}

	return -1, false
}
