package testutils

import (
	"testing"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	"github.com/stretchr/testify/require"
)

// DefaultDataset loads the embedded dataset or fails the test
func DefaultDataset(t *testing.T) *data.Dataset {
	t.Helper()
	ds, err := data.Default()
	require.NoError(t, err)
	return ds
}

// CreateTestSpell creates a minimal assembled spell
func CreateTestSpell(id, effect string, el element.Element, level int) *spell.Spell {
	return &spell.Spell{
		ID:          id,
		Name:        el.Title() + " " + effect,
		Effect:      effect,
		Element:     el,
		Duration:    spell.DurationInstant,
		Range:       spell.RangeSelf,
		Level:       level,
		Incantation: "Vul Ign ka prim ipsa",
		Description: "A burst of flame engulfs the target.",
		Effectiveness: spell.Effectiveness{
			Compatibility:  50,
			Category:       "Neutral",
			EffectiveLevel: level,
			ClassDie:       8,
			Descriptor:     "Sun's Balance",
		},
	}
}
