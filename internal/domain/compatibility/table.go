// Package compatibility holds the bloodline x element compatibility table.
package compatibility

import (
	"github.com/KirkDiggler/bloodbond/internal/domain/element"
	"github.com/KirkDiggler/bloodbond/internal/events"
	"github.com/KirkDiggler/bloodbond/internal/logger"
)

// Result is the outcome of a table lookup
type Result struct {
	Bloodline element.Element
	Element   element.Element
	Value     int

	// Fallback is set when the pair was missing and NeutralValue was used
	Fallback bool
}

// Fraction returns Value / 100
func (r Result) Fraction() float64 {
	return float64(r.Value) / 100
}

// Table maps an ordered (bloodline, element) pair to a percentage. It is
// read-only once built. Pairs are never mirrored, Moon/Song and Song/Moon
// are independent entries.
type Table struct {
	values map[element.Element]map[element.Element]int
	bus    *events.Bus
}

// NewTable copies values into a table. A bloodline is always 100 with itself.
// Diagnostics for lookups go to bus, which may be nil.
func NewTable(values map[element.Element]map[element.Element]int, bus *events.Bus) *Table {
	t := &Table{
		values: make(map[element.Element]map[element.Element]int, len(values)),
		bus:    bus,
	}
	for b, row := range values {
		copied := make(map[element.Element]int, len(row)+1)
		for e, v := range row {
			copied[e] = v
		}
		copied[b] = 100
		t.values[b] = copied
	}
	return t
}

// Lookup resolves raw names and returns the stored percentage. Names outside
// the canonical set are rejected. A canonical pair the table lacks resolves
// to NeutralValue with Fallback set and a diagnostic emitted.
func (t *Table) Lookup(bloodline, el string) (Result, error) {
	b, err := element.ParseBloodline(bloodline)
	if err != nil {
		return Result{}, err
	}
	e, err := element.Parse(el)
	if err != nil {
		return Result{}, err
	}
	return t.Get(b, e), nil
}

// Get is Lookup for already canonical values
func (t *Table) Get(b, e element.Element) Result {
	if v, ok := t.values[b][e]; ok {
		return Result{Bloodline: b, Element: e, Value: v}
	}

	emit(t.bus, events.NewFallback(b.String(), e.String(), NeutralValue))
	return Result{Bloodline: b, Element: e, Value: NeutralValue, Fallback: true}
}

// Has reports whether the pair is defined
func (t *Table) Has(b, e element.Element) bool {
	_, ok := t.values[b][e]
	return ok
}

// Row returns a copy of one bloodline's entries
func (t *Table) Row(b element.Element) map[element.Element]int {
	row := make(map[element.Element]int, len(t.values[b]))
	for e, v := range t.values[b] {
		row[e] = v
	}
	return row
}

// Bloodlines returns the bloodlines present, in canonical order
func (t *Table) Bloodlines() []element.Element {
	var out []element.Element
	for _, b := range element.All() {
		if _, ok := t.values[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

func emit(bus *events.Bus, event *events.DiagnosticEvent) {
	if err := bus.Emit(event); err != nil {
		logger.Warningf("Failed to deliver diagnostic %s: %v", event.GetType(), err)
	}
}
