// Package spell holds the assembled spell record.
package spell

import (
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
)

// Spell is a fully assembled spell. Records handed out by the service are
// shared and must not be mutated; use Clone to derive a new one.
type Spell struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Effect          string          `json:"effect"`
	Element         element.Element `json:"element"`
	MappedElement   string          `json:"mapped_element"`
	Duration        Duration        `json:"duration"`
	Range           Range           `json:"range"`
	Level           int             `json:"level"`
	Bloodline       element.Element `json:"bloodline,omitempty"`
	MagicalAffinity int             `json:"magical_affinity"`
	Incantation     string          `json:"incantation"`
	Description     string          `json:"description"`
	Effectiveness   Effectiveness   `json:"effectiveness"`
	Specialty       *SpecialtyInfo  `json:"specialty,omitempty"`

	AdditionalEffects []string       `json:"additional_effects,omitempty"`
	PowerBoost        *float64       `json:"power_boost,omitempty"`
	SpecialProperties []string       `json:"special_properties,omitempty"`
	Extra             map[string]any `json:"extra,omitempty"`
}

// Effectiveness is the compatibility-driven power of a spell
type Effectiveness struct {
	Compatibility   int    `json:"compatibility"`
	UsedFallback    bool   `json:"used_fallback,omitempty"`
	Category        string `json:"category"`
	EffectiveLevel  int    `json:"effective_level"`
	LevelAdjustment int    `json:"level_adjustment"`
	ClassDie        int    `json:"class_die"`
	Formula         string `json:"formula"`
	FinalFormula    string `json:"final_formula"`
	AffinityBonus   int    `json:"affinity_bonus"`
	Descriptor      string `json:"descriptor"`
}

// SpecialtyInfo describes how the caster's specialty shaped the spell
type SpecialtyInfo struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Level      int      `json:"level"`
	ClassDie   int      `json:"class_die"`
	Preferred  bool     `json:"preferred"`
	Restricted bool     `json:"restricted"`
	SpellBonus int      `json:"spell_bonus"`
	BaseRounds *int     `json:"base_rounds,omitempty"`
	Rounds     *int     `json:"rounds,omitempty"`
	BaseFeet   *int     `json:"base_feet,omitempty"`
	Feet       *int     `json:"feet,omitempty"`
	Abilities  []string `json:"abilities,omitempty"`
}

// Clone returns a deep copy
func (s *Spell) Clone() *Spell {
	if s == nil {
		return nil
	}

	c := *s
	c.AdditionalEffects = cloneStrings(s.AdditionalEffects)
	c.SpecialProperties = cloneStrings(s.SpecialProperties)

	if s.PowerBoost != nil {
		pb := *s.PowerBoost
		c.PowerBoost = &pb
	}

	if s.Extra != nil {
		c.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = v
		}
	}

	if s.Specialty != nil {
		info := *s.Specialty
		info.Abilities = cloneStrings(s.Specialty.Abilities)
		info.BaseRounds = cloneInt(s.Specialty.BaseRounds)
		info.Rounds = cloneInt(s.Specialty.Rounds)
		info.BaseFeet = cloneInt(s.Specialty.BaseFeet)
		info.Feet = cloneInt(s.Specialty.Feet)
		c.Specialty = &info
	}

	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
