package spell

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/domain/calculator"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	spellDomain "github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/similarity"
)

const maxSuggestions = 3

// validated is a CreateSpellInput resolved against the vocabulary
type validated struct {
	effect          string
	element         element.Element
	duration        spellDomain.Duration
	rng             spellDomain.Range
	level           int
	bloodline       element.Element
	magicalAffinity int
	specialty       *specialty.Specialty
	classDie        int
}

// cacheKey identifies a spell by every input that changes its record
func (v *validated) cacheKey() string {
	key := fmt.Sprintf("%s|%s|%s|%s|%d|%s|%d|%s:%d",
		v.effect, v.element, v.duration, v.rng, v.level,
		v.bloodline, v.magicalAffinity, v.specialty.Key, v.specialty.Level)
	if v.classDie != 0 {
		key += fmt.Sprintf("|d%d", v.classDie)
	}
	return key
}

// validate checks effect, element, duration, range and level in that order,
// then the optional bloodline, specialty and die
func (s *service) validate(input *CreateSpellInput) (*validated, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	effect, err := s.validateEffect(input.Effect)
	if err != nil {
		return nil, err
	}

	el, err := element.Parse(input.Element)
	if err != nil {
		return nil, err
	}

	duration, err := matchVocabulary("duration", input.Duration, defaultDuration, s.durations)
	if err != nil {
		return nil, err
	}

	rng, err := matchVocabulary("range", input.Range, defaultRange, s.ranges)
	if err != nil {
		return nil, err
	}

	if input.Level < calculator.MinSpellLevel || input.Level > calculator.MaxSpellLevel {
		return nil, dnderr.InvalidParameter("level", input.Level,
			"spell level %d is out of range. It must be between %d and %d",
			input.Level, calculator.MinSpellLevel, calculator.MaxSpellLevel)
	}

	v := &validated{
		effect:          effect,
		element:         el,
		duration:        spellDomain.Duration(duration),
		rng:             spellDomain.Range(rng),
		level:           input.Level,
		magicalAffinity: input.MagicalAffinity,
		classDie:        input.ClassDie,
	}

	if strings.TrimSpace(input.Bloodline) != "" {
		if v.bloodline, err = element.ParseBloodline(input.Bloodline); err != nil {
			return nil, err
		}
	}

	specialtyLevel := input.SpecialtyLevel
	if specialtyLevel == 0 {
		specialtyLevel = specialty.MinLevel
	}
	if v.specialty, err = s.specialties.Lookup(input.Specialty, specialtyLevel); err != nil {
		return nil, err
	}

	if v.classDie != 0 {
		if err := calculator.ValidateClassDie(v.classDie); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func (s *service) validateEffect(raw string) (string, error) {
	effect := strings.ToLower(strings.TrimSpace(raw))
	if effect == "" {
		return "", dnderr.InvalidParameter("effect", raw,
			"effect cannot be empty. Please specify a spell effect like 'damage' or 'healing'")
	}
	if _, ok := s.dataset.Spoken.EffectPrefix[effect]; !ok {
		return "", dnderr.InvalidParameter("effect", raw,
			"invalid effect: '%s'. Available effects: %s", raw, strings.Join(s.effects, ", ")).
			WithSuggestions(similarity.Suggest(raw, s.effects, maxSuggestions))
	}
	return effect, nil
}

// matchVocabulary normalizes raw and checks it against options. Empty input
// takes the default.
func matchVocabulary(field, raw, fallback string, options []string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		value = fallback
	}

	for _, option := range options {
		if option == value {
			return value, nil
		}
	}

	return "", dnderr.InvalidParameter(field, raw,
		"invalid %s: '%s'. Available %ss: %s", field, raw, field, strings.Join(options, ", ")).
		WithSuggestions(similarity.Suggest(raw, options, maxSuggestions))
}
