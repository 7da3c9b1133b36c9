// Package calculator turns bloodline compatibility into spell power: the
// effective level, the damage formula, rolled damage and the particast,
// fusion and ritual casting modes.
package calculator

import (
	"github.com/KirkDiggler/bloodbond/internal/dice"
	"github.com/KirkDiggler/bloodbond/internal/domain/compatibility"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

const (
	MinSpellLevel = 1
	MaxSpellLevel = 10
)

// Calculator reads the compatibility table and rolls through an injected roller
type Calculator struct {
	table  *compatibility.Table
	roller dice.Roller
}

// New creates a calculator. A nil roller uses a clock-seeded random roller.
func New(table *compatibility.Table, roller dice.Roller) *Calculator {
	if table == nil {
		panic("compatibility table is required")
	}
	if roller == nil {
		roller = dice.NewRandomRoller()
	}
	return &Calculator{
		table:  table,
		roller: roller,
	}
}

// Params are the inputs to an effectiveness calculation
type Params struct {
	Element         element.Element
	Level           int
	MagicalAffinity int

	// Bloodline is empty when the caster has none
	Bloodline element.Element

	// Specialty may be nil for no specialty
	Specialty *specialty.Specialty

	// ClassDie overrides the specialty's die when set
	ClassDie int
}

// Compatibility returns the table entry for the pair. A caster without a
// bloodline is treated as neutral and no diagnostic is raised.
func (c *Calculator) Compatibility(bloodline, el element.Element) compatibility.Result {
	if bloodline == "" {
		return compatibility.Result{Element: el, Value: compatibility.NeutralValue}
	}
	return c.table.Get(bloodline, el)
}

// Effectiveness is the compatibility as a fraction in [0, 1]
func (c *Calculator) Effectiveness(bloodline, el element.Element) float64 {
	return c.Compatibility(bloodline, el).Fraction()
}

// GetBloodlineCompatibility resolves raw names and returns the percentage for display
func (c *Calculator) GetBloodlineCompatibility(bloodline, el string) (int, error) {
	e, err := element.Parse(el)
	if err != nil {
		return 0, err
	}
	if bloodline == "" {
		return compatibility.NeutralValue, nil
	}
	b, err := element.ParseBloodline(bloodline)
	if err != nil {
		return 0, err
	}
	return c.table.Get(b, e).Value, nil
}

// GetElementAffinity returns the compatibility fraction of an ordered element pair
func (c *Calculator) GetElementAffinity(primary, secondary string) (float64, error) {
	result, err := c.table.Lookup(primary, secondary)
	if err != nil {
		return 0, err
	}
	return result.Fraction(), nil
}

// Chart lists a bloodline's entries in canonical element order. An empty
// bloodline lists every bloodline the table defines. Missing pairs show the
// neutral default with Fallback set and raise no diagnostic.
func (c *Calculator) Chart(bloodline string) ([]compatibility.Result, error) {
	bloodlines := c.table.Bloodlines()
	if bloodline != "" {
		b, err := element.ParseBloodline(bloodline)
		if err != nil {
			return nil, err
		}
		bloodlines = []element.Element{b}
	}

	chart := make([]compatibility.Result, 0, len(bloodlines)*len(element.All()))
	for _, b := range bloodlines {
		row := c.table.Row(b)
		for _, e := range element.All() {
			v, ok := row[e]
			if !ok {
				chart = append(chart, compatibility.Result{Bloodline: b, Element: e, Value: compatibility.NeutralValue, Fallback: true})
				continue
			}
			chart = append(chart, compatibility.Result{Bloodline: b, Element: e, Value: v})
		}
	}
	return chart, nil
}

// Roll rolls a dice formula such as an Effectiveness.FinalFormula
func (c *Calculator) Roll(formula string) (*dice.RollResult, error) {
	n, err := dice.ParseNotation(formula)
	if err != nil {
		return nil, dnderr.InvalidParameter("formula", formula, "cannot roll %q: %v", formula, err)
	}
	result, err := c.roller.Roll(n.Count, n.Sides, n.Bonus)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to roll %s", formula)
	}
	return result, nil
}

// Calculate derives the full effectiveness block for a spell
func (c *Calculator) Calculate(p Params) (*spell.Effectiveness, error) {
	if p.Level < MinSpellLevel || p.Level > MaxSpellLevel {
		return nil, dnderr.InvalidParameter("level", p.Level,
			"spell level %d is out of range. It must be between %d and %d", p.Level, MinSpellLevel, MaxSpellLevel)
	}

	spec := p.Specialty
	if spec == nil {
		spec = specialty.None()
	}
	if !spec.CanCast(p.Element) {
		return nil, dnderr.Validationf("%s cannot cast %s spells", spec.Name, p.Element).
			WithMeta(dnderr.MetaField, "element")
	}

	die := p.ClassDie
	if die == 0 {
		die = spec.ClassDie
	}
	if err := ValidateClassDie(die); err != nil {
		return nil, err
	}

	compat := c.Compatibility(p.Bloodline, p.Element)
	effective := EffectiveLevel(p.Level, compat.Value, spec, p.Element)
	bonus := p.MagicalAffinity + spec.SpellBonus(p.Element, p.Level)

	return &spell.Effectiveness{
		Compatibility:   compat.Value,
		UsedFallback:    compat.Fallback,
		Category:        string(compatibility.CategoryFor(compat.Value)),
		EffectiveLevel:  effective,
		LevelAdjustment: effective - p.Level,
		ClassDie:        die,
		Formula:         Formula(effective, die),
		FinalFormula:    FinalFormula(effective, die, bonus),
		AffinityBonus:   bonus,
		Descriptor:      Descriptor(compat.Value),
	}, nil
}
