package match

import "sort"

// Suggestion is a candidate name and its distance from the query.
type Suggestion struct {
	Name     string
	Distance int
}

// Suggest returns up to limit candidates within maxDistance edits of name,
// closest first. Ties keep the order of candidates; duplicates and exact
// matches are skipped.
func Suggest(name string, candidates []string, maxDistance, limit int) []string {
	seen := make(map[string]struct{}, len(candidates))

	var ranked []Suggestion

	for _, c := range candidates {
		if c == name {
			continue
		}

		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}

		if d := Levenshtein(name, c); d <= maxDistance {
			ranked = append(ranked, Suggestion{Name: c, Distance: d})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Name)
	}

	return out
}
