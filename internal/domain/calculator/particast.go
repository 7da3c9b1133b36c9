package calculator

import (
	"math"

	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// ParticastResult is the outcome of an ambient, low-power cast
type ParticastResult struct {
	Success       bool    `json:"success"`
	Chance        float64 `json:"chance"`
	Compatibility int     `json:"compatibility"`
	Difficulty    int     `json:"difficulty"`
	Strength      int     `json:"effect_strength"`
	Duration      int     `json:"duration"`
}

// ParticastChance is min(0.9, 0.4 + fraction*0.5)
func ParticastChance(fraction float64) float64 {
	return math.Min(0.9, 0.4+fraction*0.5)
}

// Particast draws against ParticastChance. On success the strength is
// round((d4 + affinity/2 + difficulty/2) * fraction) and the duration is
// difficulty/2 + 1. A failed cast has no strength and no duration.
func (c *Calculator) Particast(bloodline, el element.Element, affinity, difficulty int) (*ParticastResult, error) {
	if difficulty < 0 {
		return nil, dnderr.InvalidParameter("difficulty", difficulty, "difficulty cannot be negative")
	}

	compat := c.Compatibility(bloodline, el)
	result := &ParticastResult{
		Chance:        ParticastChance(compat.Fraction()),
		Compatibility: compat.Value,
		Difficulty:    difficulty,
	}

	draw, err := c.roller.Chance()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to draw particast chance")
	}
	if draw >= result.Chance {
		return result, nil
	}

	roll, err := c.roller.Roll(1, 4, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll particast strength")
	}

	base := roll.Total + floorDiv(affinity, 2) + difficulty/2
	result.Success = true
	result.Strength = int(math.Round(float64(base) * compat.Fraction()))
	result.Duration = difficulty/2 + 1

	return result, nil
}
