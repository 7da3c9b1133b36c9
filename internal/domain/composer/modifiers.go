package composer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
)

// Recognized custom modifier keys. Anything else is copied into Spell.Extra.
const (
	ModAdditionalEffects = "additional_effects"
	ModPowerBoost        = "power_boost"
	ModSpecialProperties = "special_properties"
	ModIncantationSuffix = "custom_incantation_suffix"
	ModDescriptionExtra  = "description_enhancement"
)

// PowerBoostPerLevel is how many percent of boost buy one spell level
const PowerBoostPerLevel = 25

const maxBoostedLevel = 10

// ApplyCustomModifiers returns a copy of s with mods folded in. The input
// record is never changed. A non-numeric power_boost fails before anything
// is applied.
func ApplyCustomModifiers(s *spell.Spell, mods map[string]any) (*spell.Spell, error) {
	if s == nil {
		return nil, dnderr.InvalidArgument("spell is required")
	}

	var boost float64
	raw, hasBoost := mods[ModPowerBoost]
	if hasBoost {
		var ok bool
		if boost, ok = toFloat(raw); !ok {
			return nil, dnderr.InvalidParameter(ModPowerBoost, raw,
				"power boost must be a number, got %T. Provide a percentage such as 25 for a 25%% boost", raw)
		}
	}

	out := s.Clone()

	if v, ok := mods[ModAdditionalEffects]; ok {
		effects := toStrings(v)
		out.AdditionalEffects = append(out.AdditionalEffects, effects...)
		out.Description += fmt.Sprintf(" Additionally, it %s.", strings.Join(effects, ", "))
	}

	if hasBoost {
		out.PowerBoost = &boost
		if boost > 0 {
			out.Level = min(maxBoostedLevel, out.Level+int(math.Round(boost/PowerBoostPerLevel)))
		}
		out.Description += fmt.Sprintf(" The spell's power is boosted by %s%%.", strconv.FormatFloat(boost, 'f', -1, 64))
	}

	if v, ok := mods[ModSpecialProperties]; ok {
		props := toStrings(v)
		out.SpecialProperties = append(out.SpecialProperties, props...)
		out.Description += fmt.Sprintf(" Special properties: %s.", strings.Join(props, ", "))
	}

	if v, ok := mods[ModIncantationSuffix]; ok {
		out.Incantation += " " + fmt.Sprint(v)
	}

	if v, ok := mods[ModDescriptionExtra]; ok {
		out.Description += " " + fmt.Sprint(v)
	}

	for key, value := range mods {
		if isKnownModifier(key) {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[key] = value
	}

	return out, nil
}

func isKnownModifier(key string) bool {
	switch key {
	case ModAdditionalEffects, ModPowerBoost, ModSpecialProperties, ModIncantationSuffix, ModDescriptionExtra:
		return true
	}
	return false
}

// toStrings accepts a list or a single value
func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
