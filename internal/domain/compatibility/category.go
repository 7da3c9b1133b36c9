package compatibility

import "strings"

// Category is the label of a compatibility band
type Category string

const (
	Perfect  Category = "Perfect"
	Best     Category = "Best"
	Good     Category = "Good"
	Neutral  Category = "Neutral"
	Moderate Category = "Moderate"
	Weak     Category = "Weak"
)

// NeutralValue is used for a pair the table does not define
const NeutralValue = 50

// bands are ordered highest value first
var bands = []struct {
	category Category
	value    int
}{
	{Perfect, 100},
	{Best, 80},
	{Good, 60},
	{Neutral, 50},
	{Moderate, 40},
	{Weak, 20},
}

// Value returns the canonical percentage of a band
func (c Category) Value() (int, bool) {
	for _, b := range bands {
		if b.category == c {
			return b.value, true
		}
	}
	return 0, false
}

// ParseCategory matches a band word case-insensitively
func ParseCategory(word string) (Category, bool) {
	for _, b := range bands {
		if strings.EqualFold(string(b.category), word) {
			return b.category, true
		}
	}
	return "", false
}

// IsCanonicalValue reports whether pct belongs to {0,20,40,50,60,80,100}
func IsCanonicalValue(pct int) bool {
	if pct == 0 {
		return true
	}
	for _, b := range bands {
		if b.value == pct {
			return true
		}
	}
	return false
}

// CategoryFor labels a percentage. Values outside the band set take the
// nearest band, with ties going to the higher band.
func CategoryFor(pct int) Category {
	best := bands[0]
	bestDist := abs(pct - best.value)
	for _, b := range bands[1:] {
		if d := abs(pct - b.value); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best.category
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
