package specialty_test

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(t *testing.T) *specialty.Registry {
	t.Helper()
	ds, err := data.Default()
	require.NoError(t, err)
	r, err := specialty.NewRegistry(ds.Specialties)
	require.NoError(t, err)
	return r
}

func lookup(t *testing.T, key string, level int) *specialty.Specialty {
	t.Helper()
	s, err := registry(t).Lookup(key, level)
	require.NoError(t, err)
	return s
}

func TestLookup_KeyNormalization(t *testing.T) {
	r := registry(t)

	for _, key := range []string{"war_mage", "War Mage", "warmage", "WAR-MAGE"} {
		s, err := r.Lookup(key, 3)
		require.NoError(t, err, key)
		assert.Equal(t, "war_mage", s.Key)
		assert.Equal(t, 12, s.ClassDie)
		assert.Equal(t, 3, s.Level)
	}
}

func TestLookup_Errors(t *testing.T) {
	r := registry(t)

	_, err := r.Lookup("chrono", 1)
	require.Error(t, err)
	assert.True(t, dnderr.IsInvalidArgument(err))
	assert.Equal(t, "specialty", dnderr.GetField(err))
	assert.Equal(t, []string{"chronomage"}, dnderr.GetSuggestions(err))

	for _, level := range []int{0, 21} {
		_, err = r.Lookup("siren", level)
		require.Error(t, err)
		assert.Equal(t, "specialty_level", dnderr.GetField(err))
	}
}

func TestLookup_NeutralKeys(t *testing.T) {
	r := registry(t)

	for _, key := range []string{"", "none", "None"} {
		s, err := r.Lookup(key, 2)
		require.NoError(t, err)
		assert.True(t, s.IsNeutral())
		assert.Equal(t, 8, s.ClassDie)
		assert.Equal(t, []string{"Versatility"}, s.AbilityNames())
	}
}

func TestClassDiceAndSets(t *testing.T) {
	tests := []struct {
		key        string
		die        int
		preferred  []element.Element
		restricted []element.Element
	}{
		{"chronomage", 8, []element.Element{element.Moon, element.Wind, element.Song}, []element.Element{element.Earth, element.Death}},
		{"graveturgy", 10, []element.Element{element.Moon, element.Wind, element.Earth}, []element.Element{element.Fire, element.Love, element.Song}},
		{"illusionist", 6, []element.Element{element.Moon, element.Wind, element.Song}, []element.Element{element.Fire, element.Earth, element.Sun}},
		{"siren", 8, []element.Element{element.Wind, element.Love, element.Song}, []element.Element{element.Earth, element.Death}},
		{"war_mage", 12, []element.Element{element.Fire, element.Earth, element.Protection}, []element.Element{element.Love, element.Song}},
		{"alchemist", 8, []element.Element{element.Water, element.Fire, element.Earth}, []element.Element{element.Moon, element.Song}},
		{"nature_shaman", 10, []element.Element{element.Wind, element.Water, element.Earth}, []element.Element{element.Fire, element.Death}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			s := lookup(t, tt.key, 1)
			assert.Equal(t, tt.die, s.ClassDie)
			assert.Equal(t, tt.preferred, s.Preferred.Sorted())
			assert.Equal(t, tt.restricted, s.Restricted.Sorted())
			assert.NotEmpty(t, s.Abilities)
		})
	}
}

func TestSpellBonus(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		level      int
		element    element.Element
		spellLevel int
		want       int
	}{
		{"preferred default", "alchemist", 4, element.Fire, 3, 5},
		{"restricted floors down", "alchemist", 3, element.Moon, 3, -2},
		{"restricted even level", "alchemist", 4, element.Song, 1, -2},
		{"unlisted element", "alchemist", 4, element.Love, 5, 0},
		{"graveturgy earth replaces", "graveturgy", 2, element.Earth, 5, 7},
		{"graveturgy other preferred", "graveturgy", 2, element.Moon, 5, 4},
		{"siren song adds", "siren", 2, element.Song, 4, 8},
		{"war mage protection adds", "war_mage", 3, element.Protection, 4, 12},
		{"war mage restricted", "war_mage", 3, element.Love, 4, -2},
		{"neutral", "none", 5, element.Fire, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lookup(t, tt.key, tt.level)
			assert.Equal(t, tt.want, s.SpellBonus(tt.element, tt.spellLevel))
		})
	}
}

func TestModifyDurationAndRange(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		level    int
		element  element.Element
		duration int
		rng      int
		wantDur  int
		wantRng  int
	}{
		{"chronomage preferred duration", "chronomage", 1, element.Moon, 10, 30, 16, 30},
		{"chronomage higher level", "chronomage", 5, element.Song, 600, 30, 1200, 30},
		{"chronomage other element", "chronomage", 5, element.Fire, 600, 30, 600, 30},
		{"graveturgy earth range", "graveturgy", 4, element.Earth, 100, 30, 100, 45},
		{"illusionist preferred duration", "illusionist", 3, element.Wind, 50, 5, 85, 5},
		{"siren song range", "siren", 2, element.Song, 10, 100, 10, 184},
		{"war mage fire range", "war_mage", 5, element.Fire, 10, 30, 10, 48},
		{"nature shaman duration", "nature_shaman", 2, element.Water, 100, 5, 150, 5},
		{"unbounded untouched", "chronomage", 5, element.Moon, spell.Unbounded, spell.Unbounded, spell.Unbounded, spell.Unbounded},
		{"neutral identity", "none", 7, element.Moon, 300, 100, 300, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lookup(t, tt.key, tt.level)
			assert.Equal(t, tt.wantDur, s.ModifyDuration(tt.duration, tt.element))
			assert.Equal(t, tt.wantRng, s.ModifyRange(tt.rng, tt.element))
		})
	}
}

func TestCanCast_Forbidden(t *testing.T) {
	d := data.SpecialtyData{Specialties: []data.SpecialtyProfile{{
		Key:       "pyrophobe",
		Name:      "Pyrophobe",
		ClassDie:  6,
		Forbidden: []string{"fire"},
	}}}
	r, err := specialty.NewRegistry(d)
	require.NoError(t, err)

	s, err := r.Lookup("pyrophobe", 1)
	require.NoError(t, err)

	assert.False(t, s.CanCast(element.Fire))
	assert.True(t, s.CanCast(element.Water))
	assert.True(t, lookup(t, "war_mage", 1).CanCast(element.Love), "restricted is not forbidden")
}

func TestNewRegistry_InvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile data.SpecialtyProfile
	}{
		{"bad die", data.SpecialtyProfile{Key: "x", ClassDie: 7}},
		{"unknown element", data.SpecialtyProfile{Key: "x", ClassDie: 8, Preferred: []string{"shadow"}}},
		{"unknown rule match", data.SpecialtyProfile{Key: "x", ClassDie: 8, RangeRules: []data.ScaleRule{{Match: "shadow"}}}},
		{"unknown mode", data.SpecialtyProfile{Key: "x", ClassDie: 8, BonusRules: []data.BonusRule{{Match: "fire", Mode: "double"}}}},
		{"missing key", data.SpecialtyProfile{Name: "Nameless", ClassDie: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := specialty.NewRegistry(data.SpecialtyData{Specialties: []data.SpecialtyProfile{tt.profile}})
			require.Error(t, err)
			assert.True(t, dnderr.IsDataIntegrity(err))
		})
	}
}

func TestInfo(t *testing.T) {
	s := lookup(t, "siren", 2)

	info := s.Info(element.Song, 4, spell.Duration1Minute, spell.Range100Ft)

	assert.Equal(t, "siren", info.Key)
	assert.True(t, info.Preferred)
	assert.False(t, info.Restricted)
	assert.Equal(t, 8, info.SpellBonus)
	require.NotNil(t, info.Rounds)
	assert.Equal(t, 10, *info.BaseRounds)
	assert.Equal(t, 10, *info.Rounds)
	assert.Equal(t, 100, *info.BaseFeet)
	assert.Equal(t, 184, *info.Feet)
	assert.Equal(t, []string{"Enchanting Voice", "Emotional Resonance", "Sonic Disruption"}, info.Abilities)

	// Free-form duration and range have no canonical base
	info = s.Info(element.Song, 4, spell.Duration("3_turns"), spell.Range("1mile"))
	assert.Nil(t, info.Rounds)
	assert.Nil(t, info.Feet)
}

func TestNilSpecialtyIsNeutral(t *testing.T) {
	var s *specialty.Specialty
	assert.True(t, s.IsNeutral())
	assert.Equal(t, 0, s.SpellBonus(element.Fire, 5))
	assert.Equal(t, 10, s.ModifyDuration(10, element.Fire))
	assert.True(t, s.CanCast(element.Fire))
	assert.Equal(t, specialty.DefaultClassDie, specialty.None().ClassDie)
}
