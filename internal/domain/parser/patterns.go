package parser

import (
	"regexp"
	"strings"
)

// Digits may touch their unit ("30ft"), number words may not, so "i am" is
// never read as one meter
const amount = `(\d+\s*|(?:a|an|one|two|three|four|five|six|seven|eight|nine|ten|twenty|thirty|forty|fifty|sixty|hundred)\s+)`

var (
	durationPattern = regexp.MustCompile(`\b` + amount + `(minutes?|mins?|hours?|hrs?|days?|weeks?)\b`)
	feetPattern     = regexp.MustCompile(`\b` + amount + `(feet|foot|ft)\b`)
	metersPattern   = regexp.MustCompile(`\b` + amount + `(meters?|metres?|m)\b`)
)

type keyword struct {
	pattern *regexp.Regexp
	value   string
}

var durationKeywords = []keyword{
	{regexp.MustCompile(`\b(instant|instantly|instantaneous|momentary|immediately)\b`), "instant"},
	{regexp.MustCompile(`\b(permanent|permanently|forever|continuous|until dispelled)\b`), "permanent"},
}

var rangeKeywords = []keyword{
	{regexp.MustCompile(`\b(self|myself|yourself)\b`), "self"},
	{regexp.MustCompile(`\btouch(es|ed|ing)?\b`), "touch"},
	{regexp.MustCompile(`\b(sight|visible|can see)\b`), "sight"},
}

var protectivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(shield|protect|guard|defend)\b.*\b(from|against)\b.*\b(harm|damage|danger|attack|magic|spell|curse)`),
	regexp.MustCompile(`\b(defensive|protective|shielding)\b.*\b(barrier|ward|aegis|spell|enchantment)`),
	regexp.MustCompile(`\b(ward|barrier|aegis|bulwark|bastion)\b.*\b(protect|shield|defend|guard|block)`),
	regexp.MustCompile(`\b(immunity|resistance|protection|defense)\b.*\b(against|from)\b`),
	regexp.MustCompile(`\b(deflect|block|parry|repel)\b.*\b(attack|spell|harm|damage)`),
}

type pairPattern struct {
	pattern    *regexp.Regexp
	primary    string
	combines   string
	confidence float64
}

// elementWords are the short lists used to spot two elements joined in one phrase
var elementWords = []struct {
	value string
	words string
}{
	{"fire", "fire|flame|blaze"},
	{"water", "water|liquid|fluid"},
	{"earth", "earth|soil|stone|rock"},
	{"wind", "wind|air|breeze"},
	{"moon", "moon|lunar|silver"},
	{"sun", "sun|solar|golden"},
	{"song", "song|music|melody"},
	{"love", "love|heart|passion"},
	{"protection", "protection|defend|guard"},
	{"death", "death|decay|end"},
}

var elementPairs = [][2]string{
	{"fire", "water"}, {"water", "fire"},
	{"earth", "wind"}, {"wind", "earth"},
	{"moon", "sun"}, {"sun", "moon"},
	{"song", "love"}, {"love", "song"},
	{"protection", "death"}, {"death", "protection"},
}

// pairPatterns spot two values of one kind named together when no
// combination term from the dataset is present
var pairPatterns = buildPairPatterns()

func buildPairPatterns() map[Kind][]pairPattern {
	words := make(map[string]string, len(elementWords))
	for _, ew := range elementWords {
		words[ew.value] = ew.words
	}

	var elements []pairPattern
	for _, pair := range elementPairs {
		elements = append(elements, pairPattern{
			pattern:    regexp.MustCompile(`\b(` + words[pair[0]] + `).*\b(and|with|plus)\b.*\b(` + words[pair[1]] + `)`),
			primary:    pair[0],
			combines:   pair[1],
			confidence: 0.75,
		})
	}

	// Blood joined with another element draws on death
	for _, ew := range elementWords {
		if ew.value == "death" || ew.value == "protection" {
			continue
		}
		elements = append(elements, pairPattern{
			pattern:    regexp.MustCompile(`\b(blood|crimson|vitae)\b.*\b(` + ew.words + `)`),
			primary:    "death",
			combines:   ew.value,
			confidence: 0.85,
		})
	}

	effects := []pairPattern{
		{regexp.MustCompile(`\b(create|make|form|generate)\b.*\b(and|while)\b.*\b(protect|shield|defend)`), "creation", "shield", 0.75},
		{regexp.MustCompile(`\b(damage|harm|hurt)\b.*\b(and|while)\b.*\b(heal|cure|restore)`), "damage", "healing", 0.75},
		{regexp.MustCompile(`\b(heal|cure|restore)\b.*\b(and|while)\b.*\b(damage|harm|hurt)`), "healing", "damage", 0.75},
		{regexp.MustCompile(`\b(change|transform|alter)\b.*\b(and|while)\b.*\b(bind|restrain|trap)`), "transformation", "binding", 0.75},
		{regexp.MustCompile(`\b(boost|enhance|strengthen)\b.*\b(and|while)\b.*\b(protect|shield|guard)`), "enchantment", "shield", 0.75},
	}

	return map[Kind][]pairPattern{
		KindElement: elements,
		KindEffect:  effects,
	}
}

var bloodMagicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(blood|crimson|vitae|sanguine)\s+(magic|spell|ritual|pact|sacrifice|offering)`),
	regexp.MustCompile(`\b(sacrifice|offer|give|draw|spill|shed)\s+(blood|vitae|life\s*force|life\s*essence)`),
	regexp.MustCompile(`\b(blood|life)\s+(cost|price|payment|debt|oath|bind|seal)`),
	regexp.MustCompile(`\b(vital|life)\s+(essence|energy|force|power)\s+(drain|consume|take|steal)`),
	regexp.MustCompile(`\b(crimson|scarlet|red)\s+(ritual|ceremony|rite|circle|sigil|rune)`),
	regexp.MustCompile(`\b(dark|forbidden|occult|ancient|primal)\s+(blood|vitae|life)\s+(magic|art|craft)`),
	regexp.MustCompile(`\b(blood|vitae)\s+(ward|shield|barrier|protection)`),
	regexp.MustCompile(`\b(hemato|sangui|cruor)[a-z]+`),
}

var primaryBloodTerms = toSet(
	"blood", "sacrifice", "vein", "artery", "crimson", "vitae", "lifeforce",
	"ichor", "hemato", "hematurgy", "cruor", "sanguine", "lifeblood",
	"bloodletting", "bloodshed", "gore", "hemorrhage", "exsanguinate", "bleed",
	"bloodline", "bloodbond", "blood bond", "sanguimancy", "blood magic",
	"vitality", "bloodpact", "blood pact", "bloodcurse", "blood curse",
)

// Secondary terms count only in pairs, "dark ritual" but not "dark"
var secondaryBloodTerms = toSet(
	"offering", "essence", "vital", "visceral", "plasma", "ritual",
	"pact", "covenant", "oath", "bind", "binding", "seal", "sigil", "mark", "brand",
	"consecration", "sanctify", "hex", "curse", "bane", "doom", "fate", "destiny",
	"scarlet", "ruby", "carmine", "vermilion", "incarnadine", "red", "dark",
	"forbidden", "ancient", "primal", "occult", "arcane", "mystical", "unholy",
	"corrupt", "tainted", "defiled", "profane", "blasphemous", "taboo",
	"obscure", "hidden", "veiled", "shrouded", "shadowy", "eldritch",
)

var bloodPhrases = []string{
	"life essence", "vital force", "life force", "crimson flow",
	"dark ritual", "blood rite", "blood oath", "living sacrifice",
}

func hasBloodMagic(text string) bool {
	for _, pattern := range bloodMagicPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return isBloodMagicTerm(text)
}

// isBloodMagicTerm reports whether a normalized term or text speaks of blood magic
func isBloodMagicTerm(term string) bool {
	if primaryBloodTerms[term] {
		return true
	}

	secondary := 0
	for _, w := range strings.Fields(term) {
		if primaryBloodTerms[w] {
			return true
		}
		if secondaryBloodTerms[w] {
			secondary++
		}
	}
	if secondary >= 2 {
		return true
	}

	for _, phrase := range bloodPhrases {
		if strings.Contains(term, phrase) {
			return true
		}
	}
	return false
}

func toSet(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
