package composer_test

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/composer"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer(t *testing.T) *composer.Composer {
	t.Helper()
	ds, err := data.Default()
	require.NoError(t, err)
	return composer.New(ds.Spoken, ds.Descriptions)
}

func TestIncantation(t *testing.T) {
	c := newComposer(t)

	tests := []struct {
		name   string
		params composer.Params
		want   string
	}{
		{
			name:   "all tokens",
			params: composer.Params{Effect: "damage", Element: element.Fire, Duration: spell.DurationInstant, Range: spell.RangeSelf, Level: 1},
			want:   "Vul Ign ka prim ipsa",
		},
		{
			name:   "higher level and range",
			params: composer.Params{Effect: "healing", Element: element.Moon, Duration: spell.Duration1Week, Range: spell.Range100Ft, Level: 10},
			want:   "Sana Lun hebdo dec ultra",
		},
		{
			name:   "unknown parameters contribute nothing",
			params: composer.Params{Effect: "explode", Element: element.Fire, Duration: "3_rounds", Range: spell.RangeSelf, Level: 11},
			want:   "Ign ipsa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Incantation(tt.params))
		})
	}
}

func TestBaseDescription_Strategies(t *testing.T) {
	c := newComposer(t)

	tests := []struct {
		name    string
		effect  string
		element element.Element
		want    string
	}{
		{
			name:    "exact",
			effect:  "damage",
			element: element.Fire,
			want:    "A burst of flame engulfs the target, scorching everything it touches.",
		},
		{
			name:    "sub-effect under control",
			effect:  "binding",
			element: element.Earth,
			want:    "Roots and stone coil around the target and hold it fast.",
		},
		{
			name:    "sub-effect under divination",
			effect:  "communication",
			element: element.Song,
			want:    "A shared melody carries thoughts between kindred minds.",
		},
		{
			name:    "effect without entries borrows a phrase",
			effect:  "movement",
			element: element.Wind,
			want:    "A movement spell that works similar to control. The winds turn and gust at the caster's command.",
		},
		{
			name:    "sub-effect missing the element borrows a phrase",
			effect:  "binding",
			element: element.Water,
			want:    "A binding spell that works similar to control. Currents bend to the caster's will and move as directed.",
		},
		{
			name:    "known effect missing the element borrows a phrase",
			effect:  "healing",
			element: element.Fire,
			want:    "A healing spell that works similar to creation. A steady flame springs into being and burns without fuel.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.BaseDescription(composer.Params{Effect: tt.effect, Element: tt.element, Level: 1})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseDescription_GenericFallback(t *testing.T) {
	c := composer.New(data.SpokenSpellTable{}, data.DescriptionData{})

	got := c.BaseDescription(composer.Params{Effect: "damage", Element: element.Fire})
	assert.Equal(t, "A fire spell using the power of damage.", got)
}

func TestNew_CustomStrategies(t *testing.T) {
	calls := 0
	skip := func(composer.Params) (string, bool) {
		calls++
		return "", false
	}
	fixed := func(composer.Params) (string, bool) { return "Fixed.", true }

	c := composer.New(data.SpokenSpellTable{}, data.DescriptionData{}, skip, fixed, skip)

	assert.Equal(t, "Fixed.", c.BaseDescription(composer.Params{}))
	assert.Equal(t, 1, calls, "strategies after the first hit are not tried")
}

func TestDescription(t *testing.T) {
	c := newComposer(t)

	got := c.Description(composer.Params{
		Effect:   "damage",
		Element:  element.Fire,
		Duration: spell.DurationInstant,
		Range:    spell.RangeSelf,
		Level:    1,
	})

	assert.Equal(t, "A burst of flame engulfs the target, scorching everything it touches. "+
		"The effect is instantaneous. It affects only the caster. Level 1.", got)
}

func TestPhrases(t *testing.T) {
	assert.Equal(t, "The spell persists for 5 hours", composer.DurationText(spell.Duration5Hour))
	assert.Equal(t, "The spell lasts for a full week", composer.DurationText(spell.Duration1Week))
	assert.Equal(t, "The spell lasts for 3_rounds", composer.DurationText("3_rounds"))
	assert.Equal(t, "It reaches targets up to 30 feet away", composer.RangeText(spell.Range30Ft))
	assert.Equal(t, "It has a range of 60ft", composer.RangeText("60ft"))

	for _, d := range []spell.Duration{
		spell.DurationInstant, spell.Duration1Minute, spell.Duration5Minute, spell.Duration10Minute,
		spell.Duration30Minute, spell.Duration1Hour, spell.Duration5Hour, spell.Duration24Hour,
		spell.Duration1Week, spell.DurationPermanent,
	} {
		assert.NotEqual(t, "The spell lasts for "+string(d), composer.DurationText(d), "canonical duration %s has its own phrase", d)
	}
}

func TestFormatSpellName(t *testing.T) {
	tests := []struct {
		effect  string
		element string
		want    string
	}{
		{effect: "damage", element: "fire", want: "Fire Damage"},
		{effect: "Summon", element: "wind", want: "Summon Wind"},
		{effect: " create ", element: "FIRE", want: "Create Fire"},
		{effect: "form", element: "earth", want: "Form Earth"},
		{effect: "healing", element: "", want: ""},
		{effect: "", element: "moon", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.effect+"/"+tt.element, func(t *testing.T) {
			assert.Equal(t, tt.want, composer.FormatSpellName(tt.effect, tt.element))
		})
	}
}

func TestCapitalizeProperly(t *testing.T) {
	assert.Equal(t, "The Lord of the Rings", composer.CapitalizeProperly("the lord of the rings"))
	assert.Equal(t, "Of Mice and Men", composer.CapitalizeProperly("of   mice AND men"))
	assert.Equal(t, "", composer.CapitalizeProperly("   "))
}
