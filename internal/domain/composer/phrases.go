package composer

import (
	"fmt"

	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
)

var durationPhrases = map[spell.Duration]string{
	spell.DurationInstant:   "The effect is instantaneous",
	spell.Duration1Minute:   "The spell lasts for 1 minute",
	spell.Duration5Minute:   "The spell persists for 5 minutes",
	spell.Duration10Minute:  "The spell lasts for 10 minutes",
	spell.Duration30Minute:  "The spell endures for 30 minutes",
	spell.Duration1Hour:     "The spell lasts for 1 hour",
	spell.Duration5Hour:     "The spell persists for 5 hours",
	spell.Duration24Hour:    "The spell lasts for a full day",
	spell.Duration1Week:     "The spell lasts for a full week",
	spell.DurationPermanent: "The spell's effect is permanent until dispelled",
}

var rangePhrases = map[spell.Range]string{
	spell.RangeSelf:  "It affects only the caster",
	spell.RangeTouch: "It requires touching the target",
	spell.Range5Ft:   "It affects targets within 5 feet",
	spell.Range30Ft:  "It reaches targets up to 30 feet away",
	spell.Range100Ft: "It extends to targets up to 100 feet distant",
	spell.RangeSight: "It affects any target the caster can see",
}

// DurationText is the duration clause of a description
func DurationText(d spell.Duration) string {
	if phrase, ok := durationPhrases[d]; ok {
		return phrase
	}
	return fmt.Sprintf("The spell lasts for %s", d)
}

// RangeText is the range clause of a description
func RangeText(r spell.Range) string {
	if phrase, ok := rangePhrases[r]; ok {
		return phrase
	}
	return fmt.Sprintf("It has a range of %s", r)
}
