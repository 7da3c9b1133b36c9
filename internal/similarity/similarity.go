// Package similarity ranks candidate strings for "did you mean" suggestions
// and fuzzy element mapping.
package similarity

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// DefaultSuggestionCutoff is the lowest ratio Suggest will return
const DefaultSuggestionCutoff = 0.5

// Normalize lowercases text, collapses whitespace, decomposes unicode and drops
// everything that is not a letter, digit, underscore or space.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	text = norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Ratio returns a similarity score in [0, 1] between two strings after normalization.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	na, nb := Normalize(a), Normalize(b)
	longest := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(distance)/float64(longest)
}

// Match is a scored candidate
type Match struct {
	Value string
	Score float64
}

// BestMatch returns the highest scoring candidate at or above threshold.
// Ties keep the earlier candidate.
func BestMatch(query string, candidates []string, threshold float64) (Match, bool) {
	if query == "" || len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{}
	for _, candidate := range candidates {
		score := Ratio(query, candidate)
		if score > best.Score {
			best = Match{Value: candidate, Score: score}
		}
	}

	if best.Value == "" || best.Score < threshold {
		return Match{}, false
	}
	return best, true
}

// Suggest returns up to limit candidates closest to query. Candidates that start
// with or contain the query rank ahead of pure edit-distance matches.
func Suggest(query string, candidates []string, limit int) []string {
	if query == "" || len(candidates) == 0 || limit <= 0 {
		return nil
	}

	q := Normalize(query)
	type ranked struct {
		value string
		tier  int
		score float64
		index int
	}

	var scored []ranked
	for i, candidate := range candidates {
		c := Normalize(candidate)
		score := Ratio(query, candidate)

		tier := 2
		switch {
		case q != "" && strings.HasPrefix(c, q):
			tier = 0
		case q != "" && strings.Contains(c, q):
			tier = 1
		case score < DefaultSuggestionCutoff:
			continue
		}
		scored = append(scored, ranked{value: candidate, tier: tier, score: score, index: i})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].tier != scored[j].tier {
			return scored[i].tier < scored[j].tier
		}
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	suggestions := make([]string, 0, len(scored))
	for _, s := range scored {
		suggestions = append(suggestions, s.value)
	}
	return suggestions
}
