package element

import (
	"sort"
	"strings"

	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/similarity"
)

// Element is the magical flavor of a spell. The same values name a caster's bloodline.
type Element string

const (
	Moon       Element = "moon"
	Wind       Element = "wind"
	Water      Element = "water"
	Fire       Element = "fire"
	Earth      Element = "earth"
	Death      Element = "death"
	Protection Element = "protection"
	Love       Element = "love"
	Song       Element = "song"
	Sun        Element = "sun"
)

var canonical = []Element{Moon, Wind, Water, Fire, Earth, Death, Protection, Love, Song, Sun}

// All returns the canonical elements in table order
func All() []Element {
	out := make([]Element, len(canonical))
	copy(out, canonical)
	return out
}

// Names returns the canonical element names in table order
func Names() []string {
	names := make([]string, len(canonical))
	for i, e := range canonical {
		names[i] = string(e)
	}
	return names
}

// IsValid reports whether e is one of the canonical elements
func (e Element) IsValid() bool {
	for _, c := range canonical {
		if c == e {
			return true
		}
	}
	return false
}

// String returns the canonical lowercase name
func (e Element) String() string {
	return string(e)
}

// Title returns the display form, e.g. "Moon"
func (e Element) Title() string {
	if e == "" {
		return ""
	}
	return strings.ToUpper(string(e[:1])) + string(e[1:])
}

// Parse canonicalizes raw element input, rejecting anything outside the canonical set
func Parse(raw string) (Element, error) {
	return parseField("element", raw)
}

// ParseBloodline canonicalizes a bloodline name
func ParseBloodline(raw string) (Element, error) {
	return parseField("bloodline", raw)
}

func parseField(field, raw string) (Element, error) {
	normalized := Element(strings.ToLower(strings.TrimSpace(raw)))
	if normalized == "" {
		return "", dnderr.InvalidParameter(field, raw, "%s cannot be empty", field)
	}
	if !normalized.IsValid() {
		return "", dnderr.InvalidParameter(field, raw, "invalid %s: '%s'. Available: %s",
			field, raw, strings.Join(Names(), ", ")).
			WithSuggestions(similarity.Suggest(raw, Names(), 3))
	}
	return normalized, nil
}

// Set is an unordered collection of elements
type Set map[Element]struct{}

// NewSet builds a set from the given elements
func NewSet(elements ...Element) Set {
	s := make(Set, len(elements))
	for _, e := range elements {
		s[e] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set has no members.
func (s Set) Has(e Element) bool {
	_, ok := s[e]
	return ok
}

// Sorted returns the members in canonical table order
func (s Set) Sorted() []Element {
	out := make([]Element, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return index(out[i]) < index(out[j])
	})
	return out
}

func index(e Element) int {
	for i, c := range canonical {
		if c == e {
			return i
		}
	}
	return len(canonical)
}
