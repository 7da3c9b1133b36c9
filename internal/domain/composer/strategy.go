package composer

import (
	"fmt"

	"github.com/KirkDiggler/bloodbond/internal/data"
)

// Strategy produces a base description sentence, or false when it has nothing to offer
type Strategy func(Params) (string, bool)

// DefaultStrategies tries, in order, the exact effect and element phrase, the
// effect as a sub-effect of another category, a phrase borrowed from any
// category that knows the element, and finally a generic sentence.
func DefaultStrategies(d data.DescriptionData) []Strategy {
	return []Strategy{
		Exact(d),
		SubEffect(d),
		CrossEffect(d),
		Generic(),
	}
}

// Exact looks up effects[effect].elements[element]
func Exact(d data.DescriptionData) Strategy {
	return func(p Params) (string, bool) {
		effect, ok := d.Effects[p.Effect]
		if !ok {
			return "", false
		}
		return first(effect.Elements[string(p.Element)])
	}
}

// SubEffect searches every category for a sub-effect named after the effect
// that defines the element
func SubEffect(d data.DescriptionData) Strategy {
	parents := sortedKeys(d.Effects)

	return func(p Params) (string, bool) {
		for _, parent := range parents {
			if parent == p.Effect {
				continue
			}
			sub, ok := d.Effects[parent].SubEffects[p.Effect]
			if !ok {
				continue
			}
			if text, ok := first(sub.Elements[string(p.Element)]); ok {
				return text, true
			}
		}
		return "", false
	}
}

// CrossEffect borrows the phrase of the first category that defines the element
func CrossEffect(d data.DescriptionData) Strategy {
	others := sortedKeys(d.Effects)

	return func(p Params) (string, bool) {
		for _, other := range others {
			if text, ok := first(d.Effects[other].Elements[string(p.Element)]); ok {
				return fmt.Sprintf("A %s spell that works similar to %s. %s", p.Effect, other, text), true
			}
		}
		return "", false
	}
}

// Generic always succeeds
func Generic() Strategy {
	return func(p Params) (string, bool) {
		return generic(p), true
	}
}

func generic(p Params) string {
	return fmt.Sprintf("A %s spell using the power of %s.", p.Element, p.Effect)
}

func first(phrases []string) (string, bool) {
	for _, phrase := range phrases {
		if phrase != "" {
			return phrase, true
		}
	}
	return "", false
}
