package specialty

import (
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/similarity"
)

const (
	MinLevel = 1
	MaxLevel = 20
)

var validDice = map[int]bool{4: true, 6: true, 8: true, 10: true, 12: true}

// Registry resolves specialty keys to profiles
type Registry struct {
	neutral  data.SpecialtyProfile
	profiles map[string]data.SpecialtyProfile
	keys     []string
}

// NewRegistry validates the profiles and indexes them by normalized key and name
func NewRegistry(d data.SpecialtyData) (*Registry, error) {
	r := &Registry{
		neutral:  d.Neutral,
		profiles: make(map[string]data.SpecialtyProfile, len(d.Specialties)*2),
	}
	if r.neutral.Key == "" {
		r.neutral.Key = NeutralKey
	}
	if r.neutral.Name == "" {
		r.neutral.Name = None().Name
	}
	if r.neutral.ClassDie == 0 {
		r.neutral.ClassDie = DefaultClassDie
	}

	for _, p := range d.Specialties {
		if err := validateProfile(p); err != nil {
			return nil, err
		}
		key := normalizeKey(p.Key)
		if _, dup := r.profiles[key]; dup {
			return nil, dnderr.DataIntegrityf("specialty %q defined more than once", p.Key)
		}
		r.profiles[key] = p
		if name := normalizeKey(p.Name); name != key {
			r.profiles[name] = p
		}
		r.keys = append(r.keys, p.Key)
	}

	return r, nil
}

// Keys returns the specialty keys in data order, without the neutral key
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// None returns the neutral specialty at the given level
func (r *Registry) None(level int) *Specialty {
	s := build(r.neutral, level)
	s.Preferred, s.Restricted, s.Forbidden = nil, nil, nil
	return s
}

// Lookup returns the specialty for key at level. Keys ignore case, spaces,
// hyphens and underscores, so "war_mage", "War Mage" and "warmage" match.
// An empty key or "none" gives the neutral specialty.
func (r *Registry) Lookup(key string, level int) (*Specialty, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, dnderr.InvalidParameter("specialty_level", level,
			"specialty level %d is out of range. It must be between %d and %d", level, MinLevel, MaxLevel)
	}

	normalized := normalizeKey(key)
	if normalized == "" || normalized == NeutralKey {
		return r.None(level), nil
	}

	p, ok := r.profiles[normalized]
	if !ok {
		return nil, dnderr.InvalidParameter("specialty", key,
			"invalid specialty: '%s'. Available specialties: %s", key, strings.Join(r.keys, ", ")).
			WithSuggestions(similarity.Suggest(key, r.keys, 3))
	}

	return build(p, level), nil
}

func build(p data.SpecialtyProfile, level int) *Specialty {
	return &Specialty{
		Key:           p.Key,
		Name:          p.Name,
		Level:         level,
		ClassDie:      p.ClassDie,
		Preferred:     toSet(p.Preferred),
		Restricted:    toSet(p.Restricted),
		Forbidden:     toSet(p.Forbidden),
		Abilities:     p.Abilities,
		bonusRules:    p.BonusRules,
		durationRules: p.DurationRules,
		rangeRules:    p.RangeRules,
	}
}

func validateProfile(p data.SpecialtyProfile) error {
	if p.Key == "" {
		return dnderr.DataIntegrityf("specialty %q has no key", p.Name)
	}
	if !validDice[p.ClassDie] {
		return dnderr.DataIntegrityf("specialty %s has invalid class die d%d", p.Key, p.ClassDie)
	}

	for _, list := range [][]string{p.Preferred, p.Restricted, p.Forbidden} {
		for _, name := range list {
			if !element.Element(strings.ToLower(name)).IsValid() {
				return dnderr.DataIntegrityf("specialty %s lists unknown element %q", p.Key, name)
			}
		}
	}

	for _, rule := range p.BonusRules {
		if rule.Mode != "" && rule.Mode != "add" && rule.Mode != modeReplace {
			return dnderr.DataIntegrityf("specialty %s has unknown bonus mode %q", p.Key, rule.Mode)
		}
		if err := validateMatch(p.Key, rule.Match); err != nil {
			return err
		}
	}
	for _, rule := range append(append([]data.ScaleRule{}, p.DurationRules...), p.RangeRules...) {
		if err := validateMatch(p.Key, rule.Match); err != nil {
			return err
		}
	}

	return nil
}

func validateMatch(key, match string) error {
	switch match {
	case matchPreferred, matchRestricted, matchAny:
		return nil
	}
	if !element.Element(match).IsValid() {
		return dnderr.DataIntegrityf("specialty %s has a rule for unknown element %q", key, match)
	}
	return nil
}

func toSet(names []string) element.Set {
	set := make(element.Set, len(names))
	for _, n := range names {
		set[element.Element(strings.ToLower(n))] = struct{}{}
	}
	return set
}

func normalizeKey(key string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(key)))
}
