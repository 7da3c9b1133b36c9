package parser

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/similarity"
)

const (
	contextBoost    = 0.15
	bloodTermBoost  = 0.1
	maxLengthBonus  = 0.1
	fuzzyRatio      = 0.85
	fuzzyPenalty    = 0.8
	minFuzzyLength  = 4
	protectiveScore = 0.85
)

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

// normalize lowercases text and turns punctuation into word breaks, so
// "fire-bolt!" reads as "fire bolt"
func normalize(text string) string {
	return similarity.Normalize(punctuation.ReplaceAllString(text, " "))
}

func wordSet(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		words[w] = true
	}
	return words
}

// containsTerm matches whole words only, text and term both normalized
func containsTerm(text, term string) bool {
	return strings.Contains(" "+text+" ", " "+term+" ")
}

// score returns every value of kind scoring at least MinConfidence, best first
func (p *Parser) score(text string, words map[string]bool, kind Kind) []similarity.Match {
	var matches []similarity.Match
	for _, value := range p.values[kind] {
		if s := p.scoreValue(text, words, kind, value); s >= MinConfidence {
			matches = append(matches, similarity.Match{Value: value, Score: s})
		}
	}
	sortMatches(matches)
	return matches
}

func (p *Parser) scoreValue(text string, words map[string]bool, kind Kind, value string) float64 {
	best := 0.0

	nameWords := strings.FieldsFunc(value, func(r rune) bool { return r == '_' || r == ' ' })
	if len(nameWords) > 0 && allIn(words, nameWords) {
		return 1
	}
	if len(nameWords) == 1 {
		best = fuzzy(words, value) * fuzzyPenalty
	}

	for _, e := range p.synonyms[kind][value] {
		score := 0.0
		if containsTerm(text, e.term) {
			score = e.weight
			for _, c := range e.context {
				if strings.Contains(text, c) {
					score += contextBoost
				}
			}
			if isBloodMagicTerm(e.term) {
				score += bloodTermBoost
			}
			score += math.Min(float64(len(e.term))/40, maxLengthBonus)
		} else if !strings.Contains(e.term, " ") {
			score = fuzzy(words, e.term) * e.weight * fuzzyPenalty
		}
		best = max(best, min(score, 1))
	}

	return best
}

func allIn(words map[string]bool, want []string) bool {
	for _, w := range want {
		if !words[w] {
			return false
		}
	}
	return true
}

// fuzzy returns the closest near-miss ratio between term and any word of the
// text, or 0. Exact hits are scored elsewhere.
func fuzzy(words map[string]bool, term string) float64 {
	if len(term) < minFuzzyLength {
		return 0
	}
	best := 0.0
	for w := range words {
		if len(w) < minFuzzyLength || w == term {
			continue
		}
		if r := similarity.Ratio(w, term); r >= fuzzyRatio {
			best = max(best, r)
		}
	}
	return best
}

type foundCombination struct {
	primary    string
	combines   string
	confidence float64
}

// secondary names the other half of the strongest combination that involves
// the value already chosen for kind. A combination found with nothing chosen
// yet fills the primary too.
func (p *Parser) secondary(text string, kind Kind, r *Result) string {
	for _, c := range p.combinationsIn(text, kind) {
		if c.confidence <= secondaryThreshold {
			break
		}
		chosen := r.Get(kind)
		if chosen == "" {
			r.set(kind, c.primary, c.confidence)
			chosen = c.primary
		}
		switch chosen {
		case c.primary:
			if c.combines != "" {
				return c.combines
			}
		case c.combines:
			return c.primary
		}
	}
	return ""
}

func (p *Parser) combinationsIn(text string, kind Kind) []foundCombination {
	var found []foundCombination

	for _, c := range p.combinations[kind] {
		if !containsTerm(text, c.term) {
			continue
		}
		confidence := 0.7 + float64(min(len(c.term), 20))/40
		if isBloodMagicTerm(c.term) {
			confidence += 0.15
		}
		confidence += p.support(text, kind, c.combines)
		found = append(found, foundCombination{primary: c.primary, combines: c.combines, confidence: min(confidence, 1)})
	}

	if len(found) == 0 {
		for _, pp := range pairPatterns[kind] {
			if !p.known[kind][pp.primary] || !p.known[kind][pp.combines] {
				continue
			}
			if pp.pattern.MatchString(text) {
				found = append(found, foundCombination{primary: pp.primary, combines: pp.combines, confidence: pp.confidence})
			}
		}
	}

	// Highest confidence first, ties keep discovery order
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].confidence > found[j].confidence
	})
	return found
}

// support is up to 0.2 of extra confidence when the text also names target
// or one of its synonyms
func (p *Parser) support(text string, kind Kind, target string) float64 {
	if target == "" {
		return 0
	}
	boost := 0.0
	if strings.Contains(text, target) {
		boost += 0.1
	}
	for _, e := range p.synonyms[kind][target] {
		if containsTerm(text, e.term) {
			boost += 0.1
			break
		}
	}
	return min(boost, 0.2)
}

// bucket is the largest amount a canonical value covers
type bucket struct {
	limit int
	value string
}

var durationBuckets = []bucket{
	{1, "1_minute"},
	{5, "5_minute"},
	{10, "10_minute"},
	{30, "30_minute"},
	{60, "1_hour"},
	{300, "5_hour"},
	{1440, "24_hour"},
	{10080, "1_week"},
}

var rangeBuckets = []bucket{
	{5, "5ft"},
	{30, "30ft"},
	{100, "100ft"},
}

var unitMinutes = map[string]int{
	"minute": 1, "minutes": 1, "min": 1, "mins": 1,
	"hour": 60, "hours": 60, "hr": 60, "hrs": 60,
	"day": 1440, "days": 1440,
	"week": 10080, "weeks": 10080,
}

// duration reads "10 minutes", "an hour" or "for three days" first, then
// fixed words such as "instantly", then synonyms
func (p *Parser) duration(text string, words map[string]bool) (similarity.Match, bool) {
	if m := durationPattern.FindStringSubmatch(text); m != nil {
		if match, ok := p.fromBuckets(KindDuration, count(m[1])*unitMinutes[m[2]], durationBuckets, "1_week"); ok {
			return match, true
		}
	}

	for _, fixed := range durationKeywords {
		if fixed.pattern.MatchString(text) && p.known[KindDuration][fixed.value] {
			return similarity.Match{Value: fixed.value, Score: 0.9}, true
		}
	}

	return p.best(text, words, KindDuration)
}

// spellRange reads "30 feet" or "10 meters" first, then fixed words such as
// "touch", then synonyms
func (p *Parser) spellRange(text string, words map[string]bool) (similarity.Match, bool) {
	if m := feetPattern.FindStringSubmatch(text); m != nil {
		if match, ok := p.fromBuckets(KindRange, count(m[1]), rangeBuckets, "sight"); ok {
			return match, true
		}
	}
	if m := metersPattern.FindStringSubmatch(text); m != nil {
		feet := int(math.Round(float64(count(m[1])) * 3.28084))
		if match, ok := p.fromBuckets(KindRange, feet, rangeBuckets, "sight"); ok {
			return match, true
		}
	}

	for _, fixed := range rangeKeywords {
		if fixed.pattern.MatchString(text) && p.known[KindRange][fixed.value] {
			return similarity.Match{Value: fixed.value, Score: 0.9}, true
		}
	}

	return p.best(text, words, KindRange)
}

// fromBuckets maps an amount onto the smallest bucket covering it. An exact
// fit scores 0.9, a rounded one 0.8 and anything past the last bucket falls
// to beyond at 0.7.
func (p *Parser) fromBuckets(kind Kind, amount int, buckets []bucket, beyond string) (similarity.Match, bool) {
	if amount <= 0 {
		return similarity.Match{}, false
	}
	for _, b := range buckets {
		if amount > b.limit || !p.known[kind][b.value] {
			continue
		}
		if amount == b.limit {
			return similarity.Match{Value: b.value, Score: 0.9}, true
		}
		return similarity.Match{Value: b.value, Score: 0.8}, true
	}
	if p.known[kind][beyond] {
		return similarity.Match{Value: beyond, Score: 0.7}, true
	}
	return similarity.Match{}, false
}

func (p *Parser) best(text string, words map[string]bool, kind Kind) (similarity.Match, bool) {
	matches := p.score(text, words, kind)
	if len(matches) == 0 {
		return similarity.Match{}, false
	}
	return matches[0], true
}

// Counts past this are treated as "more than any bucket"
const maxCount = 1_000_000

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
	"hundred": 100,
}

// count reads a number word or digits. Only digit strings reach Atoi, so a
// failure there is an overflow.
func count(s string) int {
	s = strings.TrimSpace(s)
	if n, ok := numberWords[s]; ok {
		return n
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return maxCount
	}
	return min(n, maxCount)
}
