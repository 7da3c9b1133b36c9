// Package data loads the Blood Bond dataset: the bloodline compatibility
// table, the spoken spell vocabulary, description phrases, element mappings,
// specialty profiles and the synonyms used to read free text. Defaults are
// embedded; a directory can override any of the files.
package data

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/logger"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// File base names, without extension
const (
	CompatibilityFile    = "compatibility"
	SpokenSpellTableFile = "spoken_spell_table"
	DescriptionsFile     = "spell_descriptions"
	ElementMappingsFile  = "element_mappings"
	SpecialtiesFile      = "specialties"
	SynonymsFile         = "synonyms"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Dataset is everything the spell service needs to build its lookup tables
type Dataset struct {
	Compatibility CompatibilityData
	Spoken        SpokenSpellTable
	Descriptions  DescriptionData
	Mappings      element.MappingFile
	Specialties   SpecialtyData
	Synonyms      SynonymData
}

// CompatibilityData is the raw form {Bloodline: {"Label N%": [Elements] | All}}
type CompatibilityData struct {
	Bloodlines map[string]map[string]CategoryValue `yaml:"bloodlines" json:"bloodlines"`
}

// CategoryValue is either an explicit element list or the wildcard "All"
type CategoryValue struct {
	All      bool
	Elements []string
}

// UnmarshalYAML accepts a sequence of names or a single scalar
func (c *CategoryValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		c.set(value.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		c.setList(names)
		return nil
	default:
		return errors.New("category must be a list of elements or \"All\"")
	}
}

// UnmarshalJSON accepts an array of names or a single string
func (c *CategoryValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.set(s)
		return nil
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	c.setList(names)
	return nil
}

func (c *CategoryValue) set(s string) {
	if isWildcard(s) {
		c.All = true
		return
	}
	c.Elements = []string{s}
}

// setList keeps the explicit names and treats an "All" entry as the wildcard
func (c *CategoryValue) setList(names []string) {
	c.Elements = make([]string, 0, len(names))
	for _, name := range names {
		if isWildcard(name) {
			c.All = true
			continue
		}
		c.Elements = append(c.Elements, name)
	}
}

func isWildcard(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "all")
}

// SpokenSpellTable holds the incantation token dictionaries
type SpokenSpellTable struct {
	EffectPrefix     map[string]string `yaml:"effect_prefix" json:"effect_prefix"`
	ElementPrefix    map[string]string `yaml:"element_prefix" json:"element_prefix"`
	DurationModifier map[string]string `yaml:"duration_modifier" json:"duration_modifier"`
	LevelModifier    map[string]string `yaml:"level_modifier" json:"level_modifier"`
	RangeSuffix      map[string]string `yaml:"range_suffix" json:"range_suffix"`
}

// DescriptionData is the nested phrase tree used by the composer
type DescriptionData struct {
	Effects map[string]EffectDescriptions `yaml:"effects" json:"effects"`
}

// EffectDescriptions holds phrases for one effect, per element, plus nested sub-effects
type EffectDescriptions struct {
	Elements   map[string][]string              `yaml:"elements" json:"elements"`
	SubEffects map[string]SubEffectDescriptions `yaml:"sub_effects" json:"sub_effects"`
}

// SubEffectDescriptions holds phrases for a sub-effect, per element
type SubEffectDescriptions struct {
	Elements map[string][]string `yaml:"elements" json:"elements"`
}

// SpecialtyData holds the neutral profile and the named specialties
type SpecialtyData struct {
	Neutral     SpecialtyProfile   `yaml:"neutral" json:"neutral"`
	Specialties []SpecialtyProfile `yaml:"specialties" json:"specialties"`
}

// SpecialtyProfile is the file form of a specialty
type SpecialtyProfile struct {
	Key           string      `yaml:"key" json:"key"`
	Name          string      `yaml:"name" json:"name"`
	ClassDie      int         `yaml:"class_die" json:"class_die"`
	Preferred     []string    `yaml:"preferred" json:"preferred"`
	Restricted    []string    `yaml:"restricted" json:"restricted"`
	Forbidden     []string    `yaml:"forbidden" json:"forbidden"`
	BonusRules    []BonusRule `yaml:"bonus_rules" json:"bonus_rules"`
	DurationRules []ScaleRule `yaml:"duration_rules" json:"duration_rules"`
	RangeRules    []ScaleRule `yaml:"range_rules" json:"range_rules"`
	Abilities     []Ability   `yaml:"abilities" json:"abilities"`
}

// BonusRule adjusts the spell bonus for matching elements
type BonusRule struct {
	Match             string `yaml:"match" json:"match"`
	Mode              string `yaml:"mode" json:"mode"`
	LevelMultiplier   int    `yaml:"level_multiplier" json:"level_multiplier"`
	SpellLevelDivisor int    `yaml:"spell_level_divisor" json:"spell_level_divisor"`
	Flat              int    `yaml:"flat" json:"flat"`
}

// ScaleRule multiplies a duration or range for matching elements
type ScaleRule struct {
	Match    string  `yaml:"match" json:"match"`
	Base     float64 `yaml:"base" json:"base"`
	PerLevel float64 `yaml:"per_level" json:"per_level"`
}

// Ability is a named specialty ability
type Ability struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// SynonymData lists, per parameter kind, the words that point at each value
type SynonymData struct {
	Effect   map[string][]Synonym `yaml:"effect" json:"effect"`
	Element  map[string][]Synonym `yaml:"element" json:"element"`
	Duration map[string][]Synonym `yaml:"duration" json:"duration"`
	Range    map[string][]Synonym `yaml:"range" json:"range"`
}

// Synonym is a plain term or a weighted entry. A zero Weight means the
// weight comes from the entry's position in its list.
type Synonym struct {
	Term     string   `yaml:"term" json:"term"`
	Weight   float64  `yaml:"weight" json:"weight"`
	Context  []string `yaml:"context" json:"context"`
	Combines string   `yaml:"combines" json:"combines"`
}

type synonymFields Synonym

// UnmarshalYAML accepts a bare term or a mapping
func (s *Synonym) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*s = Synonym{Term: value.Value}
		return nil
	}
	var fields synonymFields
	if err := value.Decode(&fields); err != nil {
		return err
	}
	*s = Synonym(fields)
	return nil
}

// UnmarshalJSON accepts a bare term or an object
func (s *Synonym) UnmarshalJSON(b []byte) error {
	var term string
	if err := json.Unmarshal(b, &term); err == nil {
		*s = Synonym{Term: term}
		return nil
	}
	var fields synonymFields
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	*s = Synonym(fields)
	return nil
}

// Default returns the embedded dataset
func Default() (*Dataset, error) {
	return Load("")
}

// Load reads the dataset from dir, falling back to the embedded copy for any
// file the directory does not provide. An empty dir loads only the defaults.
func Load(dir string) (*Dataset, error) {
	ds := &Dataset{}

	files := []struct {
		name string
		dst  any
	}{
		{CompatibilityFile, &ds.Compatibility},
		{SpokenSpellTableFile, &ds.Spoken},
		{DescriptionsFile, &ds.Descriptions},
		{ElementMappingsFile, &ds.Mappings},
		{SpecialtiesFile, &ds.Specialties},
		{SynonymsFile, &ds.Synonyms},
	}

	for _, f := range files {
		if err := loadFile(dir, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func loadFile(dir, name string, dst any) error {
	if dir != "" {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			raw, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return dnderr.IOf(err, "failed to read %s", path)
			}
			logger.Debugf("Loading %s from %s", name, path)
			return decode(path, raw, dst)
		}
	}

	path := "defaults/" + name + ".yaml"
	raw, err := defaults.ReadFile(path)
	if err != nil {
		return dnderr.IOf(err, "failed to read embedded %s", path)
	}
	return decode(path, raw, dst)
}

func decode(path string, raw []byte, dst any) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(raw, dst)
	} else {
		err = yaml.Unmarshal(raw, dst)
	}
	if err != nil {
		return dnderr.IOf(err, "failed to parse %s", path)
	}
	return nil
}
