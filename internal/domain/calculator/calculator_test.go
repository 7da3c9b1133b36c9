package calculator_test

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/data"
	mockdice "github.com/KirkDiggler/bloodbond/internal/dice/mock"
	"github.com/KirkDiggler/bloodbond/internal/domain/calculator"
	"github.com/KirkDiggler/bloodbond/internal/domain/compatibility"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	calc     *calculator.Calculator
	roller   *mockdice.ManualMockRoller
	table    *compatibility.Table
	registry *specialty.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ds, err := data.Default()
	require.NoError(t, err)

	registry, err := specialty.NewRegistry(ds.Specialties)
	require.NoError(t, err)

	table := compatibility.FromData(ds.Compatibility, nil)
	roller := mockdice.NewManualMockRoller()

	return &fixture{
		calc:     calculator.New(table, roller),
		roller:   roller,
		table:    table,
		registry: registry,
	}
}

func (f *fixture) specialty(t *testing.T, key string, level int) *specialty.Specialty {
	t.Helper()
	s, err := f.registry.Lookup(key, level)
	require.NoError(t, err)
	return s
}

func TestCalculate(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		params     calculator.Params
		wantCompat int
		wantLevel  int
		wantAdj    int
		wantDie    int
		formula    string
		final      string
		bonus      int
		category   string
		descriptor string
	}{
		{
			name:       "moon song without specialty",
			params:     calculator.Params{Bloodline: element.Moon, Element: element.Song, Level: 3, MagicalAffinity: 2},
			wantCompat: 80, wantLevel: 3, wantDie: 8,
			formula: "3d8", final: "3d8 + 2", bonus: 2,
			category: "Best", descriptor: "Strong Affinity",
		},
		{
			name:       "preferred element with good compatibility gains a level",
			params:     calculator.Params{Bloodline: element.Moon, Element: element.Song, Level: 3, Specialty: f.specialty(t, "chronomage", 2)},
			wantCompat: 80, wantLevel: 4, wantAdj: 1, wantDie: 8,
			formula: "4d8", final: "4d8 + 3", bonus: 3,
			category: "Best", descriptor: "Strong Affinity",
		},
		{
			name:       "weak compatibility loses a level",
			params:     calculator.Params{Bloodline: element.Moon, Element: element.Fire, Level: 3},
			wantCompat: 20, wantLevel: 2, wantAdj: -1, wantDie: 8,
			formula: "2d8", final: "2d8",
			category: "Weak", descriptor: "Weak Connection",
		},
		{
			name:       "preferred element shields the penalty",
			params:     calculator.Params{Bloodline: element.Death, Element: element.Love, Level: 3, Specialty: f.specialty(t, "siren", 1)},
			wantCompat: 20, wantLevel: 3, wantDie: 8,
			formula: "3d8", final: "3d8 + 2", bonus: 2,
			category: "Weak", descriptor: "Weak Connection",
		},
		{
			name:       "restricted element only lowers the bonus",
			params:     calculator.Params{Bloodline: element.Moon, Element: element.Love, Level: 3, Specialty: f.specialty(t, "war_mage", 3)},
			wantCompat: 60, wantLevel: 3, wantDie: 12,
			formula: "3d12", final: "3d12 - 2", bonus: -2,
			category: "Good", descriptor: "Compatible",
		},
		{
			name:       "no bloodline is neutral",
			params:     calculator.Params{Element: element.Fire, Level: 1},
			wantCompat: 50, wantLevel: 1, wantDie: 8,
			formula: "1d8", final: "1d8",
			category: "Neutral", descriptor: "Sun's Balance",
		},
		{
			name:       "clamped at ten",
			params:     calculator.Params{Bloodline: element.Fire, Element: element.Earth, Level: 10, Specialty: f.specialty(t, "war_mage", 1)},
			wantCompat: 60, wantLevel: 10, wantDie: 12,
			formula: "10d12", final: "10d12 + 6", bonus: 6,
			category: "Good", descriptor: "Compatible",
		},
		{
			name:       "clamped at one",
			params:     calculator.Params{Bloodline: element.Water, Element: element.Death, Level: 1},
			wantCompat: 20, wantLevel: 1, wantDie: 8,
			formula: "1d8", final: "1d8",
			category: "Weak", descriptor: "Weak Connection",
		},
		{
			name:       "class die override",
			params:     calculator.Params{Bloodline: element.Sun, Element: element.Sun, Level: 3, ClassDie: 4, MagicalAffinity: 1},
			wantCompat: 100, wantLevel: 3, wantDie: 4,
			formula: "3d4", final: "3d4 + 1", bonus: 1,
			category: "Perfect", descriptor: "Perfect Harmony",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff, err := f.calc.Calculate(tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCompat, eff.Compatibility)
			assert.False(t, eff.UsedFallback)
			assert.Equal(t, tt.wantLevel, eff.EffectiveLevel)
			assert.Equal(t, tt.wantAdj, eff.LevelAdjustment)
			assert.Equal(t, tt.wantDie, eff.ClassDie)
			assert.Equal(t, tt.formula, eff.Formula)
			assert.Equal(t, tt.final, eff.FinalFormula)
			assert.Equal(t, tt.bonus, eff.AffinityBonus)
			assert.Equal(t, tt.category, eff.Category)
			assert.Equal(t, tt.descriptor, eff.Descriptor)
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	f := newFixture(t)

	for _, level := range []int{0, 11} {
		_, err := f.calc.Calculate(calculator.Params{Element: element.Fire, Level: level})
		require.Error(t, err)
		assert.True(t, dnderr.IsInvalidArgument(err))
		assert.Equal(t, "level", dnderr.GetField(err))
	}

	_, err := f.calc.Calculate(calculator.Params{Element: element.Fire, Level: 1, ClassDie: 7})
	require.Error(t, err)
	assert.Equal(t, "class_die", dnderr.GetField(err))

	forbidding, err := specialty.NewRegistry(data.SpecialtyData{Specialties: []data.SpecialtyProfile{
		{Key: "pyrophobe", Name: "Pyrophobe", ClassDie: 6, Forbidden: []string{"fire"}},
	}})
	require.NoError(t, err)
	spec, err := forbidding.Lookup("pyrophobe", 1)
	require.NoError(t, err)

	_, err = f.calc.Calculate(calculator.Params{Element: element.Fire, Level: 1, Specialty: spec})
	require.Error(t, err)
	assert.True(t, dnderr.IsValidation(err))
}

func TestCalculate_FallbackIsReported(t *testing.T) {
	table := compatibility.NewTable(map[element.Element]map[element.Element]int{
		element.Moon: {element.Song: 80},
	}, nil)
	calc := calculator.New(table, mockdice.NewManualMockRoller())

	eff, err := calc.Calculate(calculator.Params{Bloodline: element.Moon, Element: element.Fire, Level: 2})
	require.NoError(t, err)

	assert.True(t, eff.UsedFallback)
	assert.Equal(t, 50, eff.Compatibility)
}

func TestEffectiveLevel_AlwaysInRange(t *testing.T) {
	f := newFixture(t)
	specs := []*specialty.Specialty{nil, f.specialty(t, "chronomage", 20), f.specialty(t, "war_mage", 1)}

	for base := 1; base <= 10; base++ {
		for compat := 0; compat <= 100; compat++ {
			for _, spec := range specs {
				for _, el := range element.All() {
					level := calculator.EffectiveLevel(base, compat, spec, el)
					assert.GreaterOrEqual(t, level, 1)
					assert.LessOrEqual(t, level, 10)
					assert.LessOrEqual(t, abs(level-base), 1, "at most one step")
				}
			}
		}
	}
}

func TestDescriptor_Breakpoints(t *testing.T) {
	tests := []struct {
		compat int
		want   string
	}{
		{0, "Elemental Rejection"},
		{19, "Elemental Rejection"},
		{20, "Weak Connection"},
		{39, "Weak Connection"},
		{40, "Moderate Resonance"},
		{49, "Moderate Resonance"},
		{50, "Sun's Balance"},
		{59, "Sun's Balance"},
		{60, "Compatible"},
		{79, "Compatible"},
		{80, "Strong Affinity"},
		{99, "Strong Affinity"},
		{100, "Perfect Harmony"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calculator.Descriptor(tt.compat), "compat=%d", tt.compat)
	}
}

func TestEffectiveness_MatchesTable(t *testing.T) {
	f := newFixture(t)

	for _, b := range element.All() {
		for _, e := range element.All() {
			assert.Equal(t, float64(f.table.Get(b, e).Value)/100, f.calc.Effectiveness(b, e))
		}
	}
	assert.Equal(t, 0.5, f.calc.Effectiveness("", element.Moon))
}

func TestGetBloodlineCompatibility(t *testing.T) {
	f := newFixture(t)

	pct, err := f.calc.GetBloodlineCompatibility("MOON", "song")
	require.NoError(t, err)
	assert.Equal(t, 80, pct)

	pct, err = f.calc.GetBloodlineCompatibility("", "song")
	require.NoError(t, err)
	assert.Equal(t, 50, pct)

	_, err = f.calc.GetBloodlineCompatibility("Shadow", "song")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestGetElementAffinity(t *testing.T) {
	f := newFixture(t)

	affinity, err := f.calc.GetElementAffinity("Protection", "Sun")
	require.NoError(t, err)
	assert.Equal(t, 0.6, affinity)

	affinity, err = f.calc.GetElementAffinity("Sun", "Protection")
	require.NoError(t, err)
	assert.Equal(t, 0.5, affinity)

	_, err = f.calc.GetElementAffinity("moon", "fier")
	require.Error(t, err)
	assert.Equal(t, []string{"fire"}, dnderr.GetSuggestions(err))
}

func TestClassDieForRank(t *testing.T) {
	tests := map[string]int{"novice": 4, "Apprentice": 6, "adept": 8, " expert ": 10, "MASTER": 12}
	for rank, want := range tests {
		die, err := calculator.ClassDieForRank(rank)
		require.NoError(t, err, rank)
		assert.Equal(t, want, die)
	}

	_, err := calculator.ClassDieForRank("archmage")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestChart(t *testing.T) {
	f := newFixture(t)

	chart, err := f.calc.Chart("moon")
	require.NoError(t, err)
	require.Len(t, chart, 10)

	assert.Equal(t, element.Moon, chart[0].Element)
	assert.Equal(t, 100, chart[0].Value)
	assert.Equal(t, element.Water, chart[2].Element)
	assert.Equal(t, 80, chart[2].Value)
	assert.Equal(t, element.Song, chart[8].Element)
	assert.Equal(t, 80, chart[8].Value)
	for _, entry := range chart {
		assert.Equal(t, element.Moon, entry.Bloodline)
		assert.False(t, entry.Fallback)
	}

	all, err := f.calc.Chart("")
	require.NoError(t, err)
	assert.Len(t, all, 100)
	assert.Equal(t, element.Sun, all[99].Bloodline)

	_, err = f.calc.Chart("vampire")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestChart_MissingPairsShowNeutral(t *testing.T) {
	table := compatibility.NewTable(map[element.Element]map[element.Element]int{
		element.Moon: {element.Song: 80},
	}, nil)
	calc := calculator.New(table, mockdice.NewManualMockRoller())

	chart, err := calc.Chart("")
	require.NoError(t, err)
	require.Len(t, chart, 10)

	for _, entry := range chart {
		switch entry.Element {
		case element.Moon:
			assert.Equal(t, 100, entry.Value)
		case element.Song:
			assert.Equal(t, 80, entry.Value)
		default:
			assert.Equal(t, compatibility.NeutralValue, entry.Value)
			assert.True(t, entry.Fallback)
		}
	}
}

func TestRoll(t *testing.T) {
	f := newFixture(t)
	f.roller.SetRolls([]int{2, 7, 3})

	result, err := f.calc.Roll("3d8 + 5")
	require.NoError(t, err)
	assert.Equal(t, 17, result.Total)
	assert.Equal(t, []int{2, 7, 3}, result.Rolls)
	assert.Equal(t, 5, result.Bonus)

	_, err = f.calc.Roll("three dice")
	assert.True(t, dnderr.IsInvalidArgument(err))
	assert.Equal(t, "formula", dnderr.GetField(err))

	// Exhausted rolls are a roller failure, not bad input
	_, err = f.calc.Roll("1d8")
	require.Error(t, err)
	assert.False(t, dnderr.IsInvalidArgument(err))
}
