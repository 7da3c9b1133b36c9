package calculator

import (
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/dice"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// Level adjustment thresholds, in percent
const (
	BoostThreshold   = 60
	PenaltyThreshold = 40
)

// EffectiveLevel applies at most one step per threshold. At 60% or more a
// preferred element gains a level. Below 40% the level drops by one unless
// the specialty prefers the element. The result stays within [1, 10].
// Restricted elements are handled by the flat bonus, not here.
func EffectiveLevel(baseLevel, compat int, spec *specialty.Specialty, el element.Element) int {
	level := baseLevel
	preferred := spec.IsPreferred(el)

	switch {
	case compat >= BoostThreshold && preferred:
		level++
	case compat < PenaltyThreshold && !preferred:
		level--
	}

	return clamp(level, MinSpellLevel, MaxSpellLevel)
}

var descriptors = []struct {
	min  int
	text string
}{
	{100, "Perfect Harmony"},
	{80, "Strong Affinity"},
	{60, "Compatible"},
	{50, "Sun's Balance"},
	{40, "Moderate Resonance"},
	{20, "Weak Connection"},
}

// Descriptor names the compatibility band, checked highest first
func Descriptor(compat int) string {
	for _, d := range descriptors {
		if compat >= d.min {
			return d.text
		}
	}
	return "Elemental Rejection"
}

// Formula renders the static damage notation "{level}d{die}"
func Formula(effectiveLevel, die int) string {
	return dice.Notation{Count: effectiveLevel, Sides: die}.Dice()
}

// FinalFormula appends a nonzero flat bonus, "3d8 + 5" or "3d8 - 2"
func FinalFormula(effectiveLevel, die, bonus int) string {
	return dice.Notation{Count: effectiveLevel, Sides: die, Bonus: bonus}.String()
}

var rankDice = map[string]int{
	"novice":     4,
	"apprentice": 6,
	"adept":      8,
	"expert":     10,
	"master":     12,
}

// ClassDieForRank maps a caster rank to its class die
func ClassDieForRank(rank string) (int, error) {
	die, ok := rankDice[strings.ToLower(strings.TrimSpace(rank))]
	if !ok {
		return 0, dnderr.InvalidParameter("rank", rank,
			"invalid rank: '%s'. Available ranks: novice, apprentice, adept, expert, master", rank)
	}
	return die, nil
}

// ValidateClassDie accepts d4, d6, d8, d10 and d12
func ValidateClassDie(die int) error {
	for _, d := range rankDice {
		if d == die {
			return nil
		}
	}
	return dnderr.InvalidParameter("class_die", die, "invalid class die d%d. Use 4, 6, 8, 10 or 12", die)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
