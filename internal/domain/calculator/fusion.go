package calculator

import (
	"math"

	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// FusionThreshold is the minimum compatibility, in percent, two elements need to fuse
const FusionThreshold = 30

// FusionResult is the outcome of combining two elements. An incompatible
// pair yields a zero result with Incompatible set and Err describing why;
// it is not returned as an error.
type FusionResult struct {
	Primary       element.Element `json:"primary"`
	Secondary     element.Element `json:"secondary"`
	Compatibility int             `json:"compatibility"`
	Incompatible  bool            `json:"incompatible"`
	Chance        float64         `json:"chance"`
	Success       bool            `json:"success"`
	BaseDamage    int             `json:"base_damage"`
	FusionBonus   int             `json:"fusion_bonus"`
	TotalDamage   int             `json:"total_damage"`
	Err           error           `json:"-"`
}

// FusionChance is min(0.9, 0.3 + fraction*0.5 + affinity*0.02)
func FusionChance(fraction float64, affinity int) float64 {
	return math.Min(0.9, 0.3+fraction*0.5+float64(affinity)*0.02)
}

// Fusion combines primary and secondary at the given spell level. The
// primary contributes d6 x level and the secondary d4 x level plus the
// caster's affinity. The sum is scaled by the pair's compatibility.
func (c *Calculator) Fusion(primary, secondary element.Element, level, affinity int) (*FusionResult, error) {
	if level < MinSpellLevel || level > MaxSpellLevel {
		return nil, dnderr.InvalidParameter("level", level,
			"spell level %d is out of range. It must be between %d and %d", level, MinSpellLevel, MaxSpellLevel)
	}

	if !primary.IsValid() {
		return nil, dnderr.InvalidParameter("primary", primary, "invalid primary element: '%s'", primary)
	}
	if !secondary.IsValid() {
		return nil, dnderr.InvalidParameter("secondary", secondary, "invalid secondary element: '%s'", secondary)
	}

	compat := c.table.Get(primary, secondary)
	result := &FusionResult{
		Primary:       primary,
		Secondary:     secondary,
		Compatibility: compat.Value,
	}

	if compat.Value < FusionThreshold {
		result.Incompatible = true
		result.Err = dnderr.IncompatibleElementsf("%s and %s are too incompatible to fuse (%d%% < %d%%)",
			primary, secondary, compat.Value, FusionThreshold)
		return result, nil
	}

	result.Chance = FusionChance(compat.Fraction(), affinity)
	draw, err := c.roller.Chance()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to draw fusion chance")
	}
	if draw >= result.Chance {
		return result, nil
	}

	primaryRoll, err := c.roller.Roll(1, 6, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll primary element")
	}
	secondaryRoll, err := c.roller.Roll(1, 4, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll secondary element")
	}

	result.Success = true
	result.BaseDamage = primaryRoll.Total * level
	result.FusionBonus = secondaryRoll.Total*level + affinity
	result.TotalDamage = int(math.Round(float64(result.BaseDamage+result.FusionBonus) * compat.Fraction()))

	return result, nil
}
