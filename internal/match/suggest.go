package match

import (
	"sort"
	"strings"
)

// MinSimilarity is the lowest score a candidate needs to be suggested.
const MinSimilarity = 0.5

// DefaultSuggestions caps the number of suggestions in a diagnostic.
const DefaultSuggestions = 3

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates closest to name, best first.
// Comparison ignores case; ties keep candidate order. An exact match is
// not a suggestion.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 || name == "" {
		return nil
	}

	lower := strings.ToLower(name)

	var ranked []scored

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		score := Similarity(lower, strings.ToLower(c))
		if strings.EqualFold(c, name) {
			score = 1.0
		}

		if score >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
