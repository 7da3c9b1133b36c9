package calculator_test

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/dice"
	mockdice "github.com/KirkDiggler/bloodbond/internal/dice/mock"
	"github.com/KirkDiggler/bloodbond/internal/domain/calculator"
	"github.com/KirkDiggler/bloodbond/internal/domain/compatibility"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name   string
		params calculator.DamageParams
		rolls  []int
		want   calculator.DamageBreakdown
	}{
		{
			name:   "scaled by compatibility",
			params: calculator.DamageParams{Bloodline: element.Moon, Element: element.Song, Level: 3, ClassDie: 8, MagicalAffinity: 2, BlessingPercent: 25},
			rolls:  []int{4, 5, 6},
			want:   calculator.DamageBreakdown{Rolls: []int{4, 5, 6}, Raw: 15, Compatibility: 80, Scaled: 12, Affinity: 2, Blessing: 2, Total: 16},
		},
		{
			name:   "no bloodline is unscaled",
			params: calculator.DamageParams{Element: element.Fire, Level: 2, ClassDie: 6, MagicalAffinity: 1},
			rolls:  []int{6, 3},
			want:   calculator.DamageBreakdown{Rolls: []int{6, 3}, Raw: 9, Compatibility: 50, Scaled: 9, Affinity: 1, Total: 10},
		},
		{
			name:   "half rounds away from zero",
			params: calculator.DamageParams{Bloodline: element.Sun, Element: element.Moon, Level: 1, ClassDie: 10, BlessingPercent: 15},
			rolls:  []int{7},
			want:   calculator.DamageBreakdown{Rolls: []int{7}, Raw: 7, Compatibility: 50, Scaled: 4, Blessing: 2, Total: 6},
		},
		{
			name:   "negative affinity is not floored",
			params: calculator.DamageParams{Bloodline: element.Moon, Element: element.Fire, Level: 1, ClassDie: 4, MagicalAffinity: -3},
			rolls:  []int{1},
			want:   calculator.DamageBreakdown{Rolls: []int{1}, Raw: 1, Compatibility: 20, Scaled: 0, Affinity: -3, Total: -3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.roller.SetRolls(tt.rolls)

			got, err := f.calc.CalculateDamage(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCalculateDamage_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.calc.CalculateDamage(calculator.DamageParams{Element: element.Fire, Level: 1, ClassDie: 20})
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = f.calc.CalculateDamage(calculator.DamageParams{Element: element.Fire, Level: 2, ClassDie: 8})
	assert.Error(t, err, "roller has nothing queued")
}

func TestParticast(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.roller.SetChances([]float64{0.5})
		f.roller.SetRolls([]int{3})

		result, err := f.calc.Particast(element.Moon, element.Song, 3, 5)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.InDelta(t, 0.8, result.Chance, 1e-9)
		assert.Equal(t, 80, result.Compatibility)
		assert.Equal(t, 5, result.Strength) // round((3 + 1 + 2) * 0.8)
		assert.Equal(t, 3, result.Duration)
	})

	t.Run("failure has no effect", func(t *testing.T) {
		f := newFixture(t)
		f.roller.SetChances([]float64{0.85})

		result, err := f.calc.Particast(element.Moon, element.Song, 3, 5)
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.Zero(t, result.Strength)
		assert.Zero(t, result.Duration)
		assert.Equal(t, 0, f.roller.Remaining(), "no strength roll on failure")
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.calc.Particast(element.Moon, element.Song, 0, -1)
		assert.True(t, dnderr.IsInvalidArgument(err))
	})
}

func TestParticastChance(t *testing.T) {
	assert.InDelta(t, 0.9, calculator.ParticastChance(1.0), 1e-9)
	assert.InDelta(t, 0.65, calculator.ParticastChance(0.5), 1e-9)
	assert.InDelta(t, 0.4, calculator.ParticastChance(0), 1e-9)
}

func TestParticast_ReproducibleWithSeed(t *testing.T) {
	table := newFixture(t).table

	a := calculator.New(table, dice.NewSeededRoller(7))
	b := calculator.New(table, dice.NewSeededRoller(7))

	for i := 0; i < 20; i++ {
		ra, err := a.Particast(element.Wind, element.Fire, 2, 4)
		require.NoError(t, err)
		rb, err := b.Particast(element.Wind, element.Fire, 2, 4)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
	}
}

func TestFusion(t *testing.T) {
	t.Run("incompatible pair yields a zero result", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.calc.Fusion(element.Death, element.Love, 3, 2)
		require.NoError(t, err)

		assert.True(t, result.Incompatible)
		assert.Equal(t, 20, result.Compatibility)
		assert.Zero(t, result.TotalDamage)
		assert.False(t, result.Success)
		assert.True(t, dnderr.IsIncompatibleElements(result.Err))
	})

	t.Run("compatible pair fuses", func(t *testing.T) {
		f := newFixture(t)
		f.roller.SetChances([]float64{0.1})
		f.roller.SetRolls([]int{4, 3})

		result, err := f.calc.Fusion(element.Moon, element.Death, 2, 2)
		require.NoError(t, err)

		assert.False(t, result.Incompatible)
		assert.Nil(t, result.Err)
		assert.True(t, result.Success)
		assert.InDelta(t, 0.54, result.Chance, 1e-9)
		assert.Equal(t, 8, result.BaseDamage)
		assert.Equal(t, 8, result.FusionBonus)
		assert.Equal(t, 6, result.TotalDamage) // round(16 * 0.4)
	})

	t.Run("failed gate", func(t *testing.T) {
		f := newFixture(t)
		f.roller.SetChances([]float64{0.9})

		result, err := f.calc.Fusion(element.Moon, element.Song, 2, 0)
		require.NoError(t, err)

		assert.False(t, result.Incompatible)
		assert.False(t, result.Success)
		assert.Zero(t, result.TotalDamage)
	})

	t.Run("invalid element", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.calc.Fusion("shadow", element.Moon, 1, 0)
		assert.Equal(t, "primary", dnderr.GetField(err))
	})
}

func TestFusion_ThresholdBoundary(t *testing.T) {
	table := compatibility.NewTable(map[element.Element]map[element.Element]int{
		element.Moon: {element.Fire: 30, element.Earth: 29},
	}, nil)
	roller := mockdice.NewManualMockRoller()
	calc := calculator.New(table, roller)

	roller.SetChances([]float64{0.99})
	atThreshold, err := calc.Fusion(element.Moon, element.Fire, 1, 0)
	require.NoError(t, err)
	assert.False(t, atThreshold.Incompatible, "30%% is inclusive")
	assert.Nil(t, atThreshold.Err)

	below, err := calc.Fusion(element.Moon, element.Earth, 1, 0)
	require.NoError(t, err)
	assert.True(t, below.Incompatible)
	assert.True(t, dnderr.IsIncompatibleElements(below.Err))
	assert.Equal(t, 29, below.Compatibility)
}

func TestRitual(t *testing.T) {
	f := newFixture(t)
	siren := f.specialty(t, "siren", 4)
	warMage := f.specialty(t, "war_mage", 10)

	tests := []struct {
		name   string
		params calculator.RitualParams
		want   calculator.RitualResult
	}{
		{
			name: "small circle",
			params: calculator.RitualParams{
				LeaderLevel: 5, LeaderAffinity: 3, Target: element.Song, Difficulty: 3,
				Participants: []calculator.Participant{{Level: 4, Specialty: siren}, {Level: 2}},
			},
			want: calculator.RitualResult{Success: true, BasePower: 20, ParticipantBonus: 15, TotalPower: 35, DurationHours: 1, RangeFeet: 30},
		},
		{
			name: "too difficult",
			params: calculator.RitualParams{
				LeaderLevel: 5, LeaderAffinity: 3, Target: element.Song, Difficulty: 4,
				Participants: []calculator.Participant{{Level: 4, Specialty: siren}, {Level: 2}},
			},
			want: calculator.RitualResult{BasePower: 20, ParticipantBonus: 15, TotalPower: 35},
		},
		{
			name:   "power equal to threshold fails",
			params: calculator.RitualParams{LeaderLevel: 5, LeaderAffinity: 1, Target: element.Fire, Difficulty: 1},
			want:   calculator.RitualResult{BasePower: 10, TotalPower: 10},
		},
		{
			name: "strong ritual",
			params: calculator.RitualParams{
				LeaderLevel: 10, LeaderAffinity: 15, Target: element.Fire, Difficulty: 10,
				Participants: []calculator.Participant{{Level: 10, Specialty: warMage}},
			},
			want: calculator.RitualResult{Success: true, BasePower: 160, ParticipantBonus: 23, TotalPower: 183, DurationHours: 8, RangeFeet: 500},
		},
		{
			name:   "top tier",
			params: calculator.RitualParams{LeaderLevel: 10, LeaderAffinity: 19, Target: element.Fire},
			want:   calculator.RitualResult{Success: true, BasePower: 200, TotalPower: 200, DurationHours: 24, RangeFeet: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := calculator.Ritual(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *first)

			second, err := calculator.Ritual(tt.params)
			require.NoError(t, err)
			assert.Equal(t, first, second, "rituals are deterministic")
		})
	}
}

func TestRitual_Errors(t *testing.T) {
	_, err := calculator.Ritual(calculator.RitualParams{LeaderLevel: 0})
	assert.Equal(t, "leader_level", dnderr.GetField(err))

	_, err = calculator.Ritual(calculator.RitualParams{LeaderLevel: 1, Difficulty: -1})
	assert.Equal(t, "difficulty", dnderr.GetField(err))

	_, err = calculator.Ritual(calculator.RitualParams{
		LeaderLevel:  1,
		Participants: []calculator.Participant{{Level: 0, Specialty: specialty.None()}},
	})
	assert.Equal(t, "participants", dnderr.GetField(err))
}
