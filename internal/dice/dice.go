package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCount is returned when fewer than one die is rolled
	ErrInvalidCount = errors.New("invalid dice count")

	// ErrInvalidSides is returned when a die has fewer than one side
	ErrInvalidSides = errors.New("invalid dice size")

	// ErrInvalidNotation is returned when a dice string cannot be parsed
	ErrInvalidNotation = errors.New("invalid dice string")
)

func validate(count, sides int) error {
	if count < 1 {
		return ErrInvalidCount
	}
	if sides < 1 {
		return ErrInvalidSides
	}
	return nil
}

// Notation is dice written as NdM with an optional flat bonus
type Notation struct {
	Count int
	Sides int
	Bonus int
}

// Dice renders the bare NdM part
func (n Notation) Dice() string {
	return fmt.Sprintf("%dd%d", n.Count, n.Sides)
}

// String renders "NdM", "NdM + K" or "NdM - K"
func (n Notation) String() string {
	switch {
	case n.Bonus > 0:
		return fmt.Sprintf("%s + %d", n.Dice(), n.Bonus)
	case n.Bonus < 0:
		return fmt.Sprintf("%s - %d", n.Dice(), -n.Bonus)
	default:
		return n.Dice()
	}
}

// ParseNotation reads strings such as "3d8", "3d8+2", "3d8 + 2" and "3d8 - 1"
func ParseNotation(s string) (Notation, error) {
	compact := strings.ReplaceAll(strings.ToLower(s), " ", "")

	sign := 1
	dicePart, bonusPart := compact, ""
	if i := strings.IndexAny(compact, "+-"); i >= 0 {
		if compact[i] == '-' {
			sign = -1
		}
		dicePart, bonusPart = compact[:i], compact[i+1:]
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	bonus := 0
	if bonusPart != "" {
		bonus, err = strconv.Atoi(bonusPart)
		if err != nil {
			return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}

	if err := validate(count, sides); err != nil {
		return Notation{}, err
	}

	return Notation{Count: count, Sides: sides, Bonus: sign * bonus}, nil
}
