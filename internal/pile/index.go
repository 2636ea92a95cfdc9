package pile

import (
	"strings"

	"github.com/arcanaland/scrydeck/internal/card"
)

// entryIndex finds the decklist entry a lookup result came from.
// Printings are matched before names. Among several matching entries the
// first one not yet claimed wins, falling back to the first match.
type entryIndex struct {
	byPrinting map[string][]int
	byName     map[string][]int
	claimed    []bool
}

func newEntryIndex(entries []card.Entry) *entryIndex {
	x := &entryIndex{
		byPrinting: make(map[string][]int),
		byName:     make(map[string][]int),
		claimed:    make([]bool, len(entries)),
	}
	for i, e := range entries {
		if e.HasPrinting() {
			key := printingKey(e.Set, e.CollectorNumber)
			x.byPrinting[key] = append(x.byPrinting[key], i)
		}
		key := nameKey(e.Name)
		x.byName[key] = append(x.byName[key], i)
	}
	return x
}

func (x *entryIndex) matchRecord(r *card.Record) (int, bool) {
	return x.match(
		x.byPrinting[printingKey(r.Set, r.CollectorNumber)],
		x.byName[nameKey(r.Name)],
		x.byName[nameKey(r.FrontName())],
	)
}

func (x *entryIndex) matchIdentifier(id card.Identifier) (int, bool) {
	var byPrinting, byName []int
	if id.Set != "" && id.CollectorNumber != "" {
		byPrinting = x.byPrinting[printingKey(id.Set, id.CollectorNumber)]
	}
	if id.Name != "" {
		byName = x.byName[nameKey(id.Name)]
	}
	return x.match(byPrinting, byName)
}

// match claims the first unclaimed entry across the buckets in order. When
// every candidate is claimed the first candidate of the first bucket wins.
func (x *entryIndex) match(buckets ...[]int) (int, bool) {
	first, found := 0, false
	for _, candidates := range buckets {
		for _, i := range candidates {
			if !x.claimed[i] {
				x.claimed[i] = true
				return i, true
			}
			if !found {
				first, found = i, true
			}
		}
	}
	return first, found
}

func printingKey(set, number string) string {
	return strings.ToLower(set) + "/" + strings.ToLower(number)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
