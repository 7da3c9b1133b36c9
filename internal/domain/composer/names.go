package composer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Effects that read better in front of the element ("Summon Wind")
var effectsBeforeElement = map[string]bool{
	"create":  true,
	"summon":  true,
	"conjure": true,
	"form":    true,
}

// Words kept lowercase unless they open the name
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "but": true, "or": true,
	"for": true, "nor": true, "on": true, "at": true, "to": true, "from": true,
	"by": true, "with": true, "in": true, "of": true,
}

// FormatSpellName orders effect and element into a display name, such as
// "Fire Damage" or "Summon Wind"
func FormatSpellName(effect, element string) string {
	effect = strings.TrimSpace(effect)
	element = strings.TrimSpace(element)
	if effect == "" || element == "" {
		return ""
	}

	if effectsBeforeElement[strings.ToLower(effect)] {
		return CapitalizeProperly(effect + " " + element)
	}
	return CapitalizeProperly(element + " " + effect)
}

// CapitalizeProperly title-cases each word except minor words after the first
func CapitalizeProperly(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	// Casers hold state, so each call gets its own
	title := cases.Title(language.English)
	lower := cases.Lower(language.English)

	for i, word := range words {
		if i > 0 && minorWords[lower.String(word)] {
			words[i] = lower.String(word)
			continue
		}
		words[i] = title.String(word)
	}

	return strings.Join(words, " ")
}
