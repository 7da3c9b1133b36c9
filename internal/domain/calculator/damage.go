package calculator

import (
	"math"

	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// DamageParams are the inputs to a damage roll
type DamageParams struct {
	Bloodline       element.Element
	Element         element.Element
	Level           int
	ClassDie        int
	MagicalAffinity int
	BlessingPercent int
}

// DamageBreakdown shows each step of a damage roll
type DamageBreakdown struct {
	Rolls         []int `json:"rolls"`
	Raw           int   `json:"raw"`
	Compatibility int   `json:"compatibility"`
	Scaled        int   `json:"scaled"`
	Affinity      int   `json:"affinity"`
	Blessing      int   `json:"blessing"`
	Total         int   `json:"total"`
}

// CalculateDamage rolls Level dice of ClassDie. With a bloodline the sum is
// scaled by compatibility, rounded and floored at 0. The flat affinity and a
// blessing of round(die * percent / 100) are then added.
func (c *Calculator) CalculateDamage(p DamageParams) (*DamageBreakdown, error) {
	if p.Level < MinSpellLevel || p.Level > MaxSpellLevel {
		return nil, dnderr.InvalidParameter("level", p.Level,
			"spell level %d is out of range. It must be between %d and %d", p.Level, MinSpellLevel, MaxSpellLevel)
	}
	if err := ValidateClassDie(p.ClassDie); err != nil {
		return nil, err
	}

	roll, err := c.roller.Roll(p.Level, p.ClassDie, 0)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll damage")
	}

	compat := c.Compatibility(p.Bloodline, p.Element)
	scaled := roll.RawTotal
	if p.Bloodline != "" {
		scaled = max(0, int(math.Round(float64(roll.RawTotal)*compat.Fraction())))
	}

	blessing := int(math.Round(float64(p.ClassDie) * float64(p.BlessingPercent) / 100))

	return &DamageBreakdown{
		Rolls:         roll.Rolls,
		Raw:           roll.RawTotal,
		Compatibility: compat.Value,
		Scaled:        scaled,
		Affinity:      p.MagicalAffinity,
		Blessing:      blessing,
		Total:         scaled + p.MagicalAffinity + blessing,
	}, nil
}
