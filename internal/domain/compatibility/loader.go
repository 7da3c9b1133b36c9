package compatibility

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/bloodbond/internal/data"
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/events"
)

var labelPattern = regexp.MustCompile(`^(\w+)\s+(\d+)%$`)

// FromData flattens {Bloodline: {"Label N%": [Elements] | All}} into a Table.
// Problems in the data never fail the load. They are reported to bus:
//   - an unrecognized label is skipped (unknown_category)
//   - an out-of-band percentage is kept as loaded (data_integrity)
//   - unknown names, duplicates and missing bloodlines or pairs (data_integrity)
func FromData(raw data.CompatibilityData, bus *events.Bus) *Table {
	values := make(map[element.Element]map[element.Element]int)

	names := make([]string, 0, len(raw.Bloodlines))
	for name := range raw.Bloodlines {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := element.ParseBloodline(name)
		if err != nil {
			emit(bus, events.NewDataIntegrity(name, "", 0,
				fmt.Sprintf("unknown bloodline %q in compatibility data", name)))
			continue
		}
		if _, dup := values[b]; dup {
			emit(bus, events.NewDataIntegrity(b.String(), "", 0,
				fmt.Sprintf("bloodline %s defined more than once", b)))
			continue
		}
		values[b] = flattenRow(b, raw.Bloodlines[name], bus)
	}

	for _, b := range element.All() {
		row, ok := values[b]
		if !ok {
			emit(bus, events.NewDataIntegrity(b.String(), "", NeutralValue,
				fmt.Sprintf("bloodline %s missing from compatibility data", b)))
			continue
		}
		for _, e := range element.All() {
			if e == b {
				continue
			}
			if _, ok := row[e]; !ok {
				emit(bus, events.NewDataIntegrity(b.String(), e.String(), NeutralValue,
					fmt.Sprintf("no compatibility entry for %s/%s", b, e)))
			}
		}
	}

	return NewTable(values, bus)
}

type category struct {
	label  string
	value  int
	values data.CategoryValue
}

func flattenRow(b element.Element, labels map[string]data.CategoryValue, bus *events.Bus) map[element.Element]int {
	var categories []category
	for label, v := range labels {
		value, ok := parseLabel(label)
		if !ok {
			emit(bus, events.NewUnknownCategory(b.String(), label))
			continue
		}
		if !IsCanonicalValue(value) {
			emit(bus, events.NewDataIntegrity(b.String(), "", value,
				fmt.Sprintf("category %q for %s is outside the canonical bands", label, b)))
		}
		categories = append(categories, category{label: label, value: value, values: v})
	}

	// Highest first so overlapping lists resolve the same way on every load
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].value != categories[j].value {
			return categories[i].value > categories[j].value
		}
		return categories[i].label < categories[j].label
	})

	row := make(map[element.Element]int)
	var wildcard *category

	for i := range categories {
		c := categories[i]
		if c.values.All && wildcard == nil {
			wildcard = &categories[i]
		}
		for _, name := range c.values.Elements {
			if strings.EqualFold(strings.TrimSpace(name), "all") {
				if wildcard == nil {
					wildcard = &categories[i]
				}
				continue
			}
			e, err := element.Parse(name)
			if err != nil {
				emit(bus, events.NewDataIntegrity(b.String(), name, c.value,
					fmt.Sprintf("unknown element %q under %s/%q", name, b, c.label)))
				continue
			}
			if e == b {
				if c.value != 100 {
					emit(bus, events.NewDataIntegrity(b.String(), e.String(), c.value,
						fmt.Sprintf("%s is always 100 with itself, ignoring %d", b, c.value)))
				}
				continue
			}
			if prev, dup := row[e]; dup {
				emit(bus, events.NewDataIntegrity(b.String(), e.String(), c.value,
					fmt.Sprintf("%s/%s listed twice, keeping %d", b, e, prev)))
				continue
			}
			row[e] = c.value
		}
	}

	if wildcard != nil {
		for _, e := range element.All() {
			if e == b {
				continue
			}
			if _, set := row[e]; !set {
				row[e] = wildcard.value
			}
		}
	}

	return row
}

// parseLabel reads "Best 80%" or a bare band word such as "Neutral". The
// number in the label wins over the band's canonical value.
func parseLabel(label string) (int, bool) {
	trimmed := strings.TrimSpace(label)

	if m := labelPattern.FindStringSubmatch(trimmed); m != nil {
		if _, ok := ParseCategory(m[1]); !ok {
			return 0, false
		}
		value, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
		return value, true
	}

	if c, ok := ParseCategory(trimmed); ok {
		return c.Value()
	}
	return 0, false
}
