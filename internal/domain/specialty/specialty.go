// Package specialty models the caster specialties. Every specialty, including
// the neutral "no specialty" case, is the same record driven by data rules.
package specialty

import (
	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
)

// NeutralKey names the neutral specialty
const NeutralKey = "none"

// DefaultClassDie is the die used when no specialty applies
const DefaultClassDie = 8

const (
	matchPreferred  = "preferred"
	matchRestricted = "restricted"
	matchAny        = "any"
	modeReplace     = "replace"
)

// Specialty is a caster specialty at a given level. Forbidden elements
// cannot be cast at all; restricted ones only carry a penalty.
type Specialty struct {
	Key        string
	Name       string
	Level      int
	ClassDie   int
	Preferred  element.Set
	Restricted element.Set
	Forbidden  element.Set
	Abilities  []data.Ability

	bonusRules    []data.BonusRule
	durationRules []data.ScaleRule
	rangeRules    []data.ScaleRule
}

// None returns the neutral specialty: a d8, no element preferences, and
// identity duration, range and bonus.
func None() *Specialty {
	return &Specialty{
		Key:      NeutralKey,
		Name:     "No Specialty",
		Level:    1,
		ClassDie: DefaultClassDie,
	}
}

// IsNeutral reports whether s is the neutral specialty
func (s *Specialty) IsNeutral() bool {
	return s == nil || s.Key == NeutralKey
}

// IsPreferred reports whether el is one of the specialty's preferred elements
func (s *Specialty) IsPreferred(el element.Element) bool {
	return s != nil && s.Preferred.Has(el)
}

// IsRestricted reports whether el is one of the specialty's restricted elements
func (s *Specialty) IsRestricted(el element.Element) bool {
	return s != nil && s.Restricted.Has(el)
}

// CanCast is false only for forbidden elements. Restricted elements can be
// cast with a penalty.
func (s *Specialty) CanCast(el element.Element) bool {
	return s == nil || !s.Forbidden.Has(el)
}

// SpellBonus returns the flat bonus the specialty adds to a spell of el.
// Preferred elements give level + spellLevel/2 and restricted elements give
// floor(-level/2). Element rules then add to or replace that value.
func (s *Specialty) SpellBonus(el element.Element, spellLevel int) int {
	if s == nil {
		return 0
	}

	bonus := 0
	switch {
	case s.IsPreferred(el):
		bonus = s.Level + spellLevel/2
	case s.IsRestricted(el):
		bonus = floorDiv(-s.Level, 2)
	}

	for _, rule := range s.bonusRules {
		if !s.matches(rule.Match, el) {
			continue
		}
		v := s.Level*rule.LevelMultiplier + rule.Flat
		if rule.SpellLevelDivisor > 0 {
			v += spellLevel / rule.SpellLevelDivisor
		}
		if rule.Mode == modeReplace {
			bonus = v
		} else {
			bonus += v
		}
	}

	return bonus
}

// ModifyDuration scales a duration in rounds. Unbounded durations are returned unchanged.
func (s *Specialty) ModifyDuration(baseRounds int, el element.Element) int {
	if s == nil {
		return baseRounds
	}
	return s.scale(s.durationRules, baseRounds, el)
}

// ModifyRange scales a range in feet. Unbounded ranges are returned unchanged.
func (s *Specialty) ModifyRange(baseFeet int, el element.Element) int {
	if s == nil {
		return baseFeet
	}
	return s.scale(s.rangeRules, baseFeet, el)
}

// AbilityNames lists the specialty's abilities in data order
func (s *Specialty) AbilityNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Abilities))
	for i, a := range s.Abilities {
		names[i] = a.Name
	}
	return names
}

// Info summarizes the specialty's effect on a spell for the assembled record
func (s *Specialty) Info(el element.Element, spellLevel int, duration spell.Duration, rng spell.Range) *spell.SpecialtyInfo {
	if s == nil {
		s = None()
	}

	info := &spell.SpecialtyInfo{
		Key:        s.Key,
		Name:       s.Name,
		Level:      s.Level,
		ClassDie:   s.ClassDie,
		Preferred:  s.IsPreferred(el),
		Restricted: s.IsRestricted(el),
		SpellBonus: s.SpellBonus(el, spellLevel),
		Abilities:  s.AbilityNames(),
	}

	if base, ok := duration.BaseRounds(); ok {
		modified := s.ModifyDuration(base, el)
		info.BaseRounds = &base
		info.Rounds = &modified
	}
	if base, ok := rng.BaseFeet(); ok {
		modified := s.ModifyRange(base, el)
		info.BaseFeet = &base
		info.Feet = &modified
	}

	return info
}

func (s *Specialty) scale(rules []data.ScaleRule, base int, el element.Element) int {
	if base < 0 {
		return base
	}
	for _, rule := range rules {
		if s.matches(rule.Match, el) {
			return int(float64(base) * (rule.Base + rule.PerLevel*float64(s.Level)))
		}
	}
	return base
}

func (s *Specialty) matches(match string, el element.Element) bool {
	switch match {
	case matchPreferred:
		return s.IsPreferred(el)
	case matchRestricted:
		return s.IsRestricted(el)
	case matchAny:
		return true
	default:
		return element.Element(match) == el
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
