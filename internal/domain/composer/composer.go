// Package composer renders the spoken incantation and the prose description
// of a spell from its effect, element, duration, range and level.
package composer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
)

// Params are the canonical inputs to composition
type Params struct {
	Effect   string
	Element  element.Element
	Duration spell.Duration
	Range    spell.Range
	Level    int
}

// Composer builds incantations and descriptions from the dataset vocabulary
type Composer struct {
	spoken     data.SpokenSpellTable
	strategies []Strategy
}

// New creates a composer. Without strategies it uses DefaultStrategies.
func New(spoken data.SpokenSpellTable, descriptions data.DescriptionData, strategies ...Strategy) *Composer {
	if len(strategies) == 0 {
		strategies = DefaultStrategies(descriptions)
	}

	return &Composer{
		spoken:     spoken,
		strategies: strategies,
	}
}

// Incantation joins the spoken tokens for each parameter. Parameters without
// a token are left out.
func (c *Composer) Incantation(p Params) string {
	tokens := []string{
		c.spoken.EffectPrefix[p.Effect],
		c.spoken.ElementPrefix[string(p.Element)],
		c.spoken.DurationModifier[string(p.Duration)],
		c.spoken.LevelModifier[strconv.Itoa(p.Level)],
		c.spoken.RangeSuffix[string(p.Range)],
	}

	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token != "" {
			parts = append(parts, token)
		}
	}

	return strings.Join(parts, " ")
}

// BaseDescription returns the first sentence produced by the strategies
func (c *Composer) BaseDescription(p Params) string {
	for _, strategy := range c.strategies {
		if text, ok := strategy(p); ok {
			return text
		}
	}
	return generic(p)
}

// Description is the base sentence followed by the duration, range and level clauses
func (c *Composer) Description(p Params) string {
	return fmt.Sprintf("%s %s. %s. Level %d.",
		c.BaseDescription(p), DurationText(p.Duration), RangeText(p.Range), p.Level)
}

// sortedKeys returns map keys in lexical order so searches are repeatable
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
