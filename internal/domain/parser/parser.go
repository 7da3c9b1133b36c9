// Package parser reads spell parameters out of free text such as
// "a burning bolt that strikes a foe 30 feet away". Words are matched
// against weighted synonyms, misspellings are caught by edit distance and
// durations and ranges are also read from numbers with units.
package parser

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/logger"
	"github.com/KirkDiggler/bloodbond/internal/similarity"
)

// Kind is a spell parameter the parser extracts
type Kind string

const (
	KindEffect   Kind = "effect"
	KindElement  Kind = "element"
	KindDuration Kind = "duration"
	KindRange    Kind = "range"
)

var kinds = []Kind{KindEffect, KindElement, KindDuration, KindRange}

const (
	// MinConfidence is the lowest score a synonym match is reported at
	MinConfidence = 0.5

	// A runner-up this close to the winner makes the reading ambiguous
	clarificationMargin = 0.05

	// Combinations at or below this confidence never name a second value
	secondaryThreshold = 0.6

	maxAlternatives = 5
)

// Vocabulary holds the canonical values the parser may return, per kind
type Vocabulary map[Kind][]string

// Option is one candidate reading of an ambiguous text
type Option struct {
	Kind  Kind    `json:"kind"`
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// Result is everything read out of one text. Parameters that were not found
// are empty and have no entry in Scores.
type Result struct {
	Effect   string `json:"effect,omitempty"`
	Element  string `json:"element,omitempty"`
	Duration string `json:"duration,omitempty"`
	Range    string `json:"range,omitempty"`

	SecondaryEffect  string `json:"secondary_effect,omitempty"`
	SecondaryElement string `json:"secondary_element,omitempty"`

	Scores     map[Kind]float64 `json:"scores"`
	Confidence float64          `json:"confidence"`

	BloodMagic         bool     `json:"blood_magic"`
	NeedsClarification bool     `json:"needs_clarification"`
	Options            []Option `json:"options,omitempty"`
}

// Get returns the value found for kind
func (r *Result) Get(kind Kind) string {
	switch kind {
	case KindEffect:
		return r.Effect
	case KindElement:
		return r.Element
	case KindDuration:
		return r.Duration
	case KindRange:
		return r.Range
	default:
		return ""
	}
}

func (r *Result) set(kind Kind, value string, score float64) {
	switch kind {
	case KindEffect:
		r.Effect = value
	case KindElement:
		r.Element = value
	case KindDuration:
		r.Duration = value
	case KindRange:
		r.Range = value
	default:
		return
	}
	r.Scores[kind] = min(score, 1)
}

type entry struct {
	term     string
	weight   float64
	context  []string
	combines string
}

type combination struct {
	term     string
	primary  string
	combines string
}

// Parser extracts parameters with weighted synonyms. It is read-only after
// New and safe for concurrent use.
type Parser struct {
	values       map[Kind][]string
	known        map[Kind]map[string]bool
	synonyms     map[Kind]map[string][]entry
	combinations map[Kind][]combination
}

// New builds a parser for vocab. Synonyms listed for values outside vocab are
// skipped with a warning, as are combinations naming such a value.
func New(syn data.SynonymData, vocab Vocabulary) *Parser {
	p := &Parser{
		values:       make(map[Kind][]string, len(kinds)),
		known:        make(map[Kind]map[string]bool, len(kinds)),
		synonyms:     make(map[Kind]map[string][]entry, len(kinds)),
		combinations: make(map[Kind][]combination, len(kinds)),
	}

	raw := map[Kind]map[string][]data.Synonym{
		KindEffect:   syn.Effect,
		KindElement:  syn.Element,
		KindDuration: syn.Duration,
		KindRange:    syn.Range,
	}

	for _, kind := range kinds {
		known := make(map[string]bool, len(vocab[kind]))
		values := make([]string, 0, len(vocab[kind]))
		for _, v := range vocab[kind] {
			v = canonical(v)
			if v == "" || known[v] {
				continue
			}
			known[v] = true
			values = append(values, v)
		}
		sort.Strings(values)
		p.values[kind] = values
		p.known[kind] = known
		p.synonyms[kind] = make(map[string][]entry)

		for name, list := range raw[kind] {
			value := canonical(name)
			if !known[value] {
				logger.Warningf("Skipping synonyms for unknown %s %q", kind, name)
				continue
			}
			p.synonyms[kind][value] = p.entries(kind, value, list)
		}

		combos := p.combinations[kind]
		sort.Slice(combos, func(i, j int) bool {
			if combos[i].term != combos[j].term {
				return combos[i].term < combos[j].term
			}
			return combos[i].primary < combos[j].primary
		})
	}

	return p
}

func (p *Parser) entries(kind Kind, value string, list []data.Synonym) []entry {
	entries := make([]entry, 0, len(list))
	for idx, s := range list {
		term := normalize(s.Term)
		if term == "" {
			continue
		}

		e := entry{term: term, weight: s.Weight}
		if e.weight <= 0 {
			e.weight = positionWeight(idx)
		}
		for _, c := range s.Context {
			if n := normalize(c); n != "" {
				e.context = append(e.context, n)
			}
		}

		if s.Combines != "" {
			other := canonical(s.Combines)
			if p.known[kind][other] && other != value {
				e.combines = other
				p.combinations[kind] = append(p.combinations[kind], combination{term: term, primary: value, combines: other})
			} else {
				logger.Warningf("Ignoring combination %q: %s %q is not in the vocabulary", s.Term, kind, s.Combines)
			}
		}

		entries = append(entries, e)
	}
	return entries
}

// positionWeight ranks earlier synonyms as more direct matches
func positionWeight(idx int) float64 {
	return max(1-float64(idx)*0.03, 0.7)
}

// Parse reads every parameter it can find out of text
func (p *Parser) Parse(text string) *Result {
	result := &Result{Scores: make(map[Kind]float64)}

	cleaned := normalize(text)
	if cleaned == "" {
		return result
	}
	words := wordSet(cleaned)

	result.BloodMagic = hasBloodMagic(cleaned)

	effects := p.score(cleaned, words, KindEffect)
	if len(effects) > 0 {
		result.set(KindEffect, effects[0].Value, effects[0].Score)
	}
	elements := p.score(cleaned, words, KindElement)
	if len(elements) > 0 {
		result.set(KindElement, elements[0].Value, elements[0].Score)
	}

	if m, ok := p.duration(cleaned, words); ok {
		result.set(KindDuration, m.Value, m.Score)
	}
	if m, ok := p.spellRange(cleaned, words); ok {
		result.set(KindRange, m.Value, m.Score)
	}

	result.SecondaryEffect = p.secondary(cleaned, KindEffect, result)
	result.SecondaryElement = p.secondary(cleaned, KindElement, result)

	p.applyBloodMagic(result)
	p.applyProtectivePhrases(cleaned, result, effects)

	p.flagAmbiguity(result, KindEffect, effects, result.SecondaryEffect)
	p.flagAmbiguity(result, KindElement, elements, result.SecondaryElement)

	if len(result.Scores) > 0 {
		total := 0.0
		for _, score := range result.Scores {
			total += score
		}
		result.Confidence = total / float64(len(result.Scores))
	}

	logger.Debug("Parsed spell text",
		"effect", result.Effect, "element", result.Element,
		"duration", result.Duration, "range", result.Range,
		"confidence", result.Confidence)

	return result
}

func (p *Parser) applyBloodMagic(r *Result) {
	const death = "death"
	if !r.BloodMagic || !p.known[KindElement][death] {
		return
	}
	switch r.Element {
	case "":
		r.set(KindElement, death, 0.7)
	case death:
		r.set(KindElement, death, r.Scores[KindElement]+0.2)
	}
}

// applyProtectivePhrases reads "protect me from harm" and the like as shield.
// The harm warded against does not win over the shield, but an unrelated
// stronger effect does.
func (p *Parser) applyProtectivePhrases(text string, r *Result, effects []similarity.Match) {
	const shield = "shield"
	if !p.known[KindEffect][shield] {
		return
	}
	for _, pattern := range protectivePatterns {
		if !pattern.MatchString(text) {
			continue
		}
		scored := scoreOf(effects, shield)
		switch {
		case r.Effect == shield:
			r.set(KindEffect, shield, r.Scores[KindEffect]+0.1)
		case scored > 0 || r.Scores[KindEffect] < protectiveScore:
			r.set(KindEffect, shield, max(scored, protectiveScore))
		}
		return
	}
}

func scoreOf(matches []similarity.Match, value string) float64 {
	for _, m := range matches {
		if m.Value == value {
			return m.Score
		}
	}
	return 0
}

func (p *Parser) flagAmbiguity(r *Result, kind Kind, matches []similarity.Match, secondary string) {
	if len(matches) < 2 || r.Get(kind) != matches[0].Value {
		return
	}
	top, runnerUp := matches[0], matches[1]
	if runnerUp.Value == secondary || top.Score-runnerUp.Score >= clarificationMargin {
		return
	}

	r.NeedsClarification = true
	r.Options = append(r.Options,
		Option{Kind: kind, Value: top.Value, Score: top.Score},
		Option{Kind: kind, Value: runnerUp.Value, Score: runnerUp.Score})
}

// Alternatives ranks up to five values of kind that text partially matches,
// for "did you mean" prompts when Parse finds nothing
func (p *Parser) Alternatives(text string, kind Kind) []similarity.Match {
	words := wordSet(normalize(text))

	var ranked []similarity.Match
	for _, value := range p.values[kind] {
		best := 0.0
		for word := range words {
			if len(word) < 3 {
				continue
			}
			if strings.Contains(value, word) {
				best = max(best, float64(len(word))/float64(len(value))*0.8)
			}
			if ratio := similarity.Ratio(word, value); ratio >= similarity.DefaultSuggestionCutoff {
				best = max(best, ratio*0.8)
			}
			for _, e := range p.synonyms[kind][value] {
				if len(e.term) >= 3 && strings.Contains(e.term, word) {
					best = max(best, float64(len(word))/float64(len(e.term))*0.7)
				}
			}
		}
		if best > 0 {
			ranked = append(ranked, similarity.Match{Value: value, Score: best})
		}
	}

	sortMatches(ranked)
	if len(ranked) > maxAlternatives {
		ranked = ranked[:maxAlternatives]
	}
	return ranked
}

// Synonyms returns the synonyms of one value with their effective weights
func (p *Parser) Synonyms(kind Kind, value string) []data.Synonym {
	entries := p.synonyms[kind][canonical(value)]
	out := make([]data.Synonym, 0, len(entries))
	for _, e := range entries {
		out = append(out, data.Synonym{
			Term:     e.term,
			Weight:   e.weight,
			Context:  append([]string(nil), e.context...),
			Combines: e.combines,
		})
	}
	return out
}

// Values returns the vocabulary of kind in sorted order
func (p *Parser) Values(kind Kind) []string {
	return append([]string(nil), p.values[kind]...)
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sortMatches(matches []similarity.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Value < matches[j].Value
	})
}
