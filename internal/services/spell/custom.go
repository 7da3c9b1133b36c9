package spell

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/domain/calculator"
	spellDomain "github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds how many spells a batch assembles at once
const batchConcurrency = 4

// CreateCustomSpell builds a spell from a parameter record. Effect and element
// are required; duration, range and level default to instant, self and 1.
// Custom modifiers are applied to a copy and are never cached.
func (s *service) CreateCustomSpell(ctx context.Context, params map[string]any) (*spellDomain.Spell, error) {
	input, mods, err := parseCustomParams(params)
	if err != nil {
		return nil, err
	}

	base, err := s.CreateSpell(ctx, input)
	if err != nil {
		return nil, err
	}

	if len(mods) == 0 {
		return base, nil
	}

	return s.ApplyCustomModifiers(base, mods)
}

// BatchCreateSpells runs CreateCustomSpell for each record, at most a few at
// a time. Results keep the input order.
func (s *service) BatchCreateSpells(ctx context.Context, params []map[string]any) ([]*spellDomain.Spell, error) {
	results := make([]*spellDomain.Spell, len(params))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, p := range params {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			created, err := s.CreateCustomSpell(gctx, p)
			if err != nil {
				return dnderr.Wrapf(err, "failed to create spell %d", i)
			}

			results[i] = created
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func parseCustomParams(params map[string]any) (*CreateSpellInput, map[string]any, error) {
	effect, err := stringParam(params, ParamEffect)
	if err != nil {
		return nil, nil, err
	}
	el, err := stringParam(params, ParamElement)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case effect == "" && el == "":
		return nil, nil, dnderr.InvalidParameter(ParamEffect, nil,
			"effect and element are required for spell creation. Please specify both parameters")
	case effect == "":
		return nil, nil, dnderr.InvalidParameter(ParamEffect, nil,
			"effect is required for spell creation. Please specify an effect like 'damage' or 'healing'")
	case el == "":
		return nil, nil, dnderr.InvalidParameter(ParamElement, nil,
			"element is required for spell creation. Please specify an element like 'fire' or 'water'")
	}

	input := &CreateSpellInput{
		Effect:  effect,
		Element: el,
		Level:   defaultLevel,
	}

	stringFields := []struct {
		key string
		dst *string
	}{
		{ParamDuration, &input.Duration},
		{ParamRange, &input.Range},
		{ParamBloodline, &input.Bloodline},
		{ParamSpecialty, &input.Specialty},
	}
	for _, f := range stringFields {
		if *f.dst, err = stringParam(params, f.key); err != nil {
			return nil, nil, err
		}
	}

	intFields := []struct {
		key string
		dst *int
	}{
		{ParamLevel, &input.Level},
		{ParamMagicalAffinity, &input.MagicalAffinity},
		{ParamSpecialtyLevel, &input.SpecialtyLevel},
		{ParamClassDie, &input.ClassDie},
	}
	for _, f := range intFields {
		raw, ok := params[f.key]
		if !ok || raw == nil {
			continue
		}
		n, ok := toInt(raw)
		if !ok {
			return nil, nil, dnderr.InvalidParameter(f.key, raw,
				"%s must be a whole number that fits an int, got %v (%T)", f.key, raw, raw)
		}
		*f.dst = n
	}

	// An explicit class_die wins over the rank's die
	rank, err := stringParam(params, ParamRank)
	if err != nil {
		return nil, nil, err
	}
	if rank != "" && input.ClassDie == 0 {
		if input.ClassDie, err = calculator.ClassDieForRank(rank); err != nil {
			return nil, nil, err
		}
	}

	var mods map[string]any
	if raw, ok := params[ParamCustomModifiers]; ok && raw != nil {
		if mods, ok = raw.(map[string]any); !ok {
			return nil, nil, dnderr.InvalidParameter(ParamCustomModifiers, raw,
				"custom_modifiers must be a record of modifiers, got %T", raw)
		}
	}

	return input, mods, nil
}

// stringParam returns the trimmed string at key, or "" when absent
func stringParam(params map[string]any, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", dnderr.InvalidParameter(key, raw, "%s must be a string, got %T", key, raw)
	}
	return strings.TrimSpace(value), nil
}

// toInt accepts integer types and integral floats, which is what decoded JSON produces
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		if n < math.MinInt || n >= math.MaxInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
