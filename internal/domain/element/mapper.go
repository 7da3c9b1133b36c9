package element

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	dnderr "github.com/KirkDiggler/bloodbond/internal/errors"
	"github.com/KirkDiggler/bloodbond/internal/logger"
	"github.com/KirkDiggler/bloodbond/internal/similarity"
	"gopkg.in/yaml.v3"
)

// DefaultMappingThreshold is the minimum similarity for a fuzzy mapping
const DefaultMappingThreshold = 0.7

// DefaultMappings translates Blood Bond element names into the common fantasy naming
func DefaultMappings() map[string]string {
	return map[string]string{
		"Wind":   "Air",
		"Moon":   "Light",
		"Sun":    "Fire",
		"Spirit": "Arcane",
		"Nature": "Earth",
		"Mind":   "Psychic",
		"Ice":    "Water",
		"Shadow": "Darkness",
	}
}

// MappingFile is the on-disk shape of a mapping file
type MappingFile struct {
	ElementMappings map[string]string `json:"element_mappings" yaml:"element_mappings"`
}

// Mapper maps element names between naming systems
type Mapper struct {
	mu        sync.RWMutex
	mappings  map[string]string
	threshold float64
}

// NewMapper creates a mapper. A nil mapping uses DefaultMappings and a
// non-positive threshold uses DefaultMappingThreshold.
func NewMapper(mappings map[string]string, threshold float64) *Mapper {
	if mappings == nil {
		mappings = DefaultMappings()
	}
	if threshold <= 0 {
		threshold = DefaultMappingThreshold
	}

	copied := make(map[string]string, len(mappings))
	for k, v := range mappings {
		copied[k] = v
	}

	return &Mapper{
		mappings:  copied,
		threshold: threshold,
	}
}

// Map returns the equivalent name: direct mapping first, then reverse mapping,
// then the closest known target. Unmatched input is returned unchanged.
func (m *Mapper) Map(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for source, target := range m.mappings {
		if strings.EqualFold(source, name) {
			return target
		}
	}

	for source, target := range m.mappings {
		if strings.EqualFold(target, name) {
			return source
		}
	}

	if match, ok := similarity.BestMatch(name, m.targetsLocked(), m.threshold); ok {
		logger.Debugf("ElementMapper: similarity mapping %s -> %s (score %.2f)", name, match.Value, match.Score)
		return match.Value
	}

	logger.Debugf("ElementMapper: no mapping found for '%s', using as-is", name)
	return name
}

// BatchMap maps every name
func (m *Mapper) BatchMap(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = m.Map(name)
	}
	return out
}

// AddMapping adds or replaces a direct mapping
func (m *Mapper) AddMapping(source, target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings[source] = target
}

// RemoveMapping removes a direct mapping, reporting whether it existed
func (m *Mapper) RemoveMapping(source string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.mappings[source]; !ok {
		return false
	}
	delete(m.mappings, source)
	return true
}

// Mappings returns a copy of the direct mappings
func (m *Mapper) Mappings() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.mappings))
	for k, v := range m.mappings {
		out[k] = v
	}
	return out
}

// LoadMappings replaces the mappings with those in a .yaml, .yml or .json file
func (m *Mapper) LoadMappings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return dnderr.IOf(err, "failed to read mapping file %s", path)
	}

	var file MappingFile
	if isJSON(path) {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return dnderr.IOf(err, "failed to parse mapping file %s", path)
	}
	if file.ElementMappings == nil {
		return dnderr.Newf(dnderr.CodeIO, "mapping file %s has no element_mappings section", path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.mappings = file.ElementMappings
	return nil
}

// SaveMappings writes the mappings to path, picking the format by extension
func (m *Mapper) SaveMappings(path string) error {
	file := MappingFile{ElementMappings: m.Mappings()}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(file, "", "    ")
	} else {
		data, err = yaml.Marshal(file)
	}
	if err != nil {
		return dnderr.Wrap(err, "failed to encode mappings")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return dnderr.IOf(err, "failed to write mapping file %s", path)
	}
	return nil
}

func (m *Mapper) targetsLocked() []string {
	seen := make(map[string]struct{}, len(m.mappings)*2)
	targets := make([]string, 0, len(m.mappings)*2)
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		targets = append(targets, s)
	}
	for _, target := range m.mappings {
		add(target)
	}
	for source := range m.mappings {
		add(source)
	}
	sort.Strings(targets)
	return targets
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
