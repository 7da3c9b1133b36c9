// Package spell assembles Blood Bond spells: it validates parameters,
// computes effectiveness, composes the text and memoizes the records.
package spell

import (
	"context"
	"sort"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/dice"
	"github.com/KirkDiggler/bloodbond/internal/domain/calculator"
	"github.com/KirkDiggler/bloodbond/internal/domain/compatibility"
	"github.com/KirkDiggler/bloodbond/internal/domain/composer"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/domain/parser"
	"github.com/KirkDiggler/bloodbond/internal/domain/specialty"
	spellDomain "github.com/KirkDiggler/bloodbond/internal/domain/spell"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/events"
	"github.com/KirkDiggler/bloodbond/internal/export"
	"github.com/KirkDiggler/bloodbond/internal/logger"
	"github.com/KirkDiggler/bloodbond/internal/repositories/spells"
	"github.com/KirkDiggler/bloodbond/internal/similarity"
	"github.com/KirkDiggler/bloodbond/internal/uuid"
	"golang.org/x/sync/singleflight"
)

// Repository is an alias for the spell cache interface
type Repository = spells.Repository

// Service defines the spell service interface
type Service interface {
	// CreateSpell validates input and returns the assembled spell. Identical
	// inputs return the memoized record.
	CreateSpell(ctx context.Context, input *CreateSpellInput) (*spellDomain.Spell, error)

	// CreateCustomSpell builds a spell from a loosely typed record and applies
	// its custom_modifiers
	CreateCustomSpell(ctx context.Context, params map[string]any) (*spellDomain.Spell, error)

	// BatchCreateSpells creates every record in order, stopping at the first failure
	BatchCreateSpells(ctx context.Context, params []map[string]any) ([]*spellDomain.Spell, error)

	// ApplyCustomModifiers returns a new spell with mods folded in
	ApplyCustomModifiers(s *spellDomain.Spell, mods map[string]any) (*spellDomain.Spell, error)

	// ExportSpell writes a spell to path as JSON
	ExportSpell(s *spellDomain.Spell, path string) error

	// GetElementAffinity returns the compatibility fraction of an ordered element pair
	GetElementAffinity(primary, secondary string) (float64, error)

	// GetBloodlineCompatibility returns the percentage for a bloodline and element
	GetBloodlineCompatibility(bloodline, el string) (int, error)

	// GetCompatibilityChart lists a bloodline's row, or every row when bloodline is empty
	GetCompatibilityChart(bloodline string) ([]compatibility.Result, error)

	// RollSpell rolls the spell's final damage formula
	RollSpell(s *spellDomain.Spell) (*dice.RollResult, error)

	// InterpretText reads effect, element, duration and range out of a description
	InterpretText(text string) (*parser.Result, error)

	// CreateSpellFromText fills the blanks of base from a description and
	// creates the spell. Fields already set in base win over the text.
	CreateSpellFromText(ctx context.Context, text string, base *CreateSpellInput) (*spellDomain.Spell, *parser.Result, error)

	// SuggestParameters ranks values of kind that the text partially names
	SuggestParameters(text string, kind parser.Kind) []similarity.Match

	GetAvailableEffects() []string
	GetAvailableElements() []string
	GetAvailableDurations() []string
	GetAvailableRanges() []string
	GetAvailableSpecialties() []string

	// Calculator exposes damage, particast, fusion and ritual casting
	Calculator() *calculator.Calculator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Dataset       *data.Dataset  // Optional: defaults to the embedded dataset
	Repository    Repository     // Optional: defaults to an in-memory cache
	DiceRoller    dice.Roller    // Optional: defaults to a random roller
	UUIDGenerator uuid.Generator // Optional: defaults to google uuids
	EventBus      *events.Bus    // Optional: receives dataset diagnostics
	CacheSize     int            // Optional: bound for the default in-memory cache
}

// service implements the Service interface
type service struct {
	dataset       *data.Dataset
	repository    Repository
	uuidGenerator uuid.Generator
	calc          *calculator.Calculator
	composer      *composer.Composer
	mapper        *element.Mapper
	specialties   *specialty.Registry
	parser        *parser.Parser
	group         singleflight.Group

	effects   []string
	durations []string
	ranges    []string
}

// NewService creates a new spell service. It fails when the dataset does not
// describe a valid set of specialties.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	ds := cfg.Dataset
	if ds == nil {
		var err error
		if ds, err = data.Default(); err != nil {
			return nil, err
		}
	}

	registry, err := specialty.NewRegistry(ds.Specialties)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to load specialties")
	}

	repo := cfg.Repository
	if repo == nil {
		repo = spells.NewInMemoryRepository(cfg.CacheSize)
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGenerator("spell")
	}

	table := compatibility.FromData(ds.Compatibility, cfg.EventBus)

	svc := &service{
		dataset:       ds,
		repository:    repo,
		uuidGenerator: gen,
		calc:          calculator.New(table, cfg.DiceRoller),
		composer:      composer.New(ds.Spoken, ds.Descriptions),
		mapper:        element.NewMapper(ds.Mappings.ElementMappings, 0),
		specialties:   registry,
		effects:       sortedKeys(ds.Spoken.EffectPrefix),
	}

	canonicalDurations := make([]string, 0, len(durationOrder))
	for _, d := range durationOrder {
		canonicalDurations = append(canonicalDurations, string(d))
	}
	canonicalRanges := make([]string, 0, len(rangeOrder))
	for _, r := range rangeOrder {
		canonicalRanges = append(canonicalRanges, string(r))
	}
	svc.durations = vocabulary(canonicalDurations, ds.Spoken.DurationModifier)
	svc.ranges = vocabulary(canonicalRanges, ds.Spoken.RangeSuffix)

	svc.parser = parser.New(ds.Synonyms, parser.Vocabulary{
		parser.KindEffect:   svc.effects,
		parser.KindElement:  element.Names(),
		parser.KindDuration: svc.durations,
		parser.KindRange:    svc.ranges,
	})

	return svc, nil
}

var durationOrder = []spellDomain.Duration{
	spellDomain.DurationInstant, spellDomain.Duration1Minute, spellDomain.Duration5Minute,
	spellDomain.Duration10Minute, spellDomain.Duration30Minute, spellDomain.Duration1Hour,
	spellDomain.Duration5Hour, spellDomain.Duration24Hour, spellDomain.Duration1Week,
	spellDomain.DurationPermanent,
}

var rangeOrder = []spellDomain.Range{
	spellDomain.RangeSelf, spellDomain.RangeTouch, spellDomain.Range5Ft,
	spellDomain.Range30Ft, spellDomain.Range100Ft, spellDomain.RangeSight,
}

// CreateSpell validates input and returns the assembled spell
func (s *service) CreateSpell(ctx context.Context, input *CreateSpellInput) (*spellDomain.Spell, error) {
	params, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	key := params.cacheKey()

	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	// Concurrent callers with the same key share one assembly
	result, err, _ := s.group.Do(key, func() (any, error) {
		if cached, ok := s.cached(ctx, key); ok {
			return cached, nil
		}

		assembled, err := s.assemble(params)
		if err != nil {
			return nil, err
		}

		if err := s.repository.Set(ctx, key, assembled); err != nil {
			logger.Warning("Failed to cache spell", "key", key, "error", err)
		}

		return assembled, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*spellDomain.Spell), nil
}

// cached reads the repository. Failures other than a miss are logged and
// treated as a miss.
func (s *service) cached(ctx context.Context, key string) (*spellDomain.Spell, bool) {
	found, err := s.repository.Get(ctx, key)
	if err == nil {
		return found, true
	}
	if !dnderr.IsNotFound(err) {
		logger.Warning("Failed to read spell cache", "key", key, "error", err)
	}
	return nil, false
}

func (s *service) assemble(p *validated) (*spellDomain.Spell, error) {
	eff, err := s.calc.Calculate(calculator.Params{
		Element:         p.element,
		Level:           p.level,
		MagicalAffinity: p.magicalAffinity,
		Bloodline:       p.bloodline,
		Specialty:       p.specialty,
		ClassDie:        p.classDie,
	})
	if err != nil {
		return nil, err
	}

	if eff.UsedFallback {
		logger.Debugf("Spell %s/%s used the neutral compatibility fallback", p.bloodline, p.element)
	}

	cp := composer.Params{
		Effect:   p.effect,
		Element:  p.element,
		Duration: p.duration,
		Range:    p.rng,
		Level:    p.level,
	}

	assembled := &spellDomain.Spell{
		ID:              s.uuidGenerator.New(),
		Name:            composer.FormatSpellName(p.effect, p.element.Title()),
		Effect:          p.effect,
		Element:         p.element,
		MappedElement:   s.mapper.Map(p.element.Title()),
		Duration:        p.duration,
		Range:           p.rng,
		Level:           p.level,
		Bloodline:       p.bloodline,
		MagicalAffinity: p.magicalAffinity,
		Incantation:     s.composer.Incantation(cp),
		Description:     s.composer.Description(cp),
		Effectiveness:   *eff,
	}

	if !p.specialty.IsNeutral() {
		assembled.Specialty = p.specialty.Info(p.element, p.level, p.duration, p.rng)
	}

	return assembled, nil
}

// ApplyCustomModifiers returns a new spell with its own ID
func (s *service) ApplyCustomModifiers(sp *spellDomain.Spell, mods map[string]any) (*spellDomain.Spell, error) {
	modified, err := composer.ApplyCustomModifiers(sp, mods)
	if err != nil {
		return nil, err
	}
	modified.ID = s.uuidGenerator.New()
	return modified, nil
}

// ExportSpell writes a spell to path as JSON
func (s *service) ExportSpell(sp *spellDomain.Spell, path string) error {
	if err := export.ToFile(path, sp); err != nil {
		return err
	}
	logger.Infof("Exported spell %s to %s", sp.ID, path)
	return nil
}

func (s *service) GetElementAffinity(primary, secondary string) (float64, error) {
	return s.calc.GetElementAffinity(primary, secondary)
}

func (s *service) GetBloodlineCompatibility(bloodline, el string) (int, error) {
	return s.calc.GetBloodlineCompatibility(bloodline, el)
}

func (s *service) GetCompatibilityChart(bloodline string) ([]compatibility.Result, error) {
	return s.calc.Chart(bloodline)
}

func (s *service) RollSpell(sp *spellDomain.Spell) (*dice.RollResult, error) {
	if sp == nil {
		return nil, dnderr.InvalidArgument("spell is required")
	}
	result, err := s.calc.Roll(sp.Effectiveness.FinalFormula)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Rolled %s for spell %s: %d", sp.Effectiveness.FinalFormula, sp.ID, result.Total)
	return result, nil
}

func (s *service) InterpretText(text string) (*parser.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, dnderr.InvalidParameter("text", text, "a spell description is required")
	}
	return s.parser.Parse(text), nil
}

func (s *service) CreateSpellFromText(ctx context.Context, text string, base *CreateSpellInput) (*spellDomain.Spell, *parser.Result, error) {
	parsed, err := s.InterpretText(text)
	if err != nil {
		return nil, nil, err
	}

	input := CreateSpellInput{}
	if base != nil {
		input = *base
	}
	if input.Effect == "" {
		input.Effect = parsed.Effect
	}
	if input.Element == "" {
		input.Element = parsed.Element
	}
	if input.Duration == "" {
		input.Duration = parsed.Duration
	}
	if input.Range == "" {
		input.Range = parsed.Range
	}
	if input.Level == 0 {
		input.Level = defaultLevel
	}

	if input.Effect == "" {
		return nil, parsed, s.unreadable(text, parser.KindEffect, ParamEffect)
	}
	if input.Element == "" {
		return nil, parsed, s.unreadable(text, parser.KindElement, ParamElement)
	}

	created, err := s.CreateSpell(ctx, &input)
	if err != nil {
		return nil, parsed, err
	}
	return created, parsed, nil
}

// unreadable reports a parameter the text did not name, offering the closest
// partial matches
func (s *service) unreadable(text string, kind parser.Kind, field string) error {
	var suggestions []string
	for _, m := range s.parser.Alternatives(text, kind) {
		if len(suggestions) == maxTextSuggestions {
			break
		}
		suggestions = append(suggestions, m.Value)
	}
	return dnderr.InvalidParameter(field, text, "no %s found in %q", field, text).
		WithSuggestions(suggestions)
}

const maxTextSuggestions = 3

func (s *service) SuggestParameters(text string, kind parser.Kind) []similarity.Match {
	return s.parser.Alternatives(text, kind)
}

// GetAvailableEffects returns the effect vocabulary sorted by name
func (s *service) GetAvailableEffects() []string {
	return append([]string(nil), s.effects...)
}

// GetAvailableElements returns the elements in canonical order
func (s *service) GetAvailableElements() []string {
	return element.Names()
}

// GetAvailableDurations returns canonical durations first, then any extras from the dataset
func (s *service) GetAvailableDurations() []string {
	return append([]string(nil), s.durations...)
}

// GetAvailableRanges returns canonical ranges first, then any extras from the dataset
func (s *service) GetAvailableRanges() []string {
	return append([]string(nil), s.ranges...)
}

// GetAvailableSpecialties returns the specialty keys in dataset order
func (s *service) GetAvailableSpecialties() []string {
	return s.specialties.Keys()
}

func (s *service) Calculator() *calculator.Calculator {
	return s.calc
}

// vocabulary keeps the canonical entries the table defines, in canonical
// order, followed by the table's own extras sorted by name
func vocabulary(canonical []string, table map[string]string) []string {
	out := make([]string, 0, len(table))
	seen := make(map[string]bool, len(canonical))
	for _, key := range canonical {
		seen[key] = true
		if _, ok := table[key]; ok {
			out = append(out, key)
		}
	}
	for _, key := range sortedKeys(table) {
		if !seen[key] {
			out = append(out, key)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
