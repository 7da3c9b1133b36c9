package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/bloodbond/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu          sync.Mutex
	rolls       []int
	rollIndex   int
	chances     []float64
	chanceIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls:   []int{},
		chances: []float64{},
	}
}

// SetNextRoll sets the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// SetNextChance queues the next Chance draw
func (m *ManualMockRoller) SetNextChance(chance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chances = append(m.chances, chance)
}

// SetChances replaces the queued Chance draws
func (m *ManualMockRoller) SetChances(chances []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chances = chances
	m.chanceIndex = 0
}

// Reset clears all rolls and chances and resets the indexes
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
	m.chances = []float64{}
	m.chanceIndex = 0
}

// Remaining reports how many queued rolls have not been consumed
func (m *ManualMockRoller) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rolls) - m.rollIndex
}

// getNextRoll returns the next predetermined roll
func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	if count < 1 {
		return nil, dice.ErrInvalidCount
	}
	if sides < 1 {
		return nil, dice.ErrInvalidSides
	}

	rolls := make([]int, count)
	rawTotal := 0

	for i := 0; i < count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		rawTotal += roll
	}

	return &dice.RollResult{
		Total:    rawTotal + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: rawTotal,
	}, nil
}

// Chance implements dice.Roller.Chance
func (m *ManualMockRoller) Chance() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.chanceIndex >= len(m.chances) {
		return 0, fmt.Errorf("no more predetermined chances available (used %d of %d)", m.chanceIndex, len(m.chances))
	}

	chance := m.chances[m.chanceIndex]
	if chance < 0 || chance >= 1 {
		return 0, fmt.Errorf("invalid chance %v, must be in [0, 1)", chance)
	}
	m.chanceIndex++
	return chance, nil
}
