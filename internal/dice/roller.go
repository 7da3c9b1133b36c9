package dice

// Roller provides an interface for rolling dice and drawing success chances.
// This allows us to inject deterministic implementations for testing.
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Chance draws a uniform value in [0, 1) for probability gates
	Chance() (float64, error)
}

// RollResult is the outcome of a single Roll call
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}
