package pile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/scrydeck/internal/card"
)

// Name identifies one of the three piles a deck is spawned as
type Name string

const (
	Mainboard Name = "mainboard"
	Sideboard Name = "sideboard"
	// Other holds double-faced cards with their real back face, and generated tokens
	Other Name = "other"
)

var ErrUnmatchedRecord = errors.New("card does not match any decklist entry")

// Entry is one distinct card in a pile
type Entry struct {
	Name     string
	Quantity int
	FrontURL string
	BackURL  string
}

// Pile is a named group of cards spawned as a single deck object
type Pile struct {
	Name    Name
	Entries []Entry
}

// Count returns the number of physical cards in the pile
func (p Pile) Count() int {
	total := 0
	for _, e := range p.Entries {
		total += e.Quantity
	}
	return total
}

func (p Pile) Empty() bool {
	return len(p.Entries) == 0
}

// Piles is the result of enriching a decklist
type Piles struct {
	Mainboard Pile
	Sideboard Pile
	Other     Pile
}

func newPiles() Piles {
	return Piles{
		Mainboard: Pile{Name: Mainboard, Entries: []Entry{}},
		Sideboard: Pile{Name: Sideboard, Entries: []Entry{}},
		Other:     Pile{Name: Other, Entries: []Entry{}},
	}
}

// Get returns the pile with the given name
func (p Piles) Get(name Name) Pile {
	switch name {
	case Sideboard:
		return p.Sideboard
	case Other:
		return p.Other
	default:
		return p.Mainboard
	}
}

// forBoard returns the pile cards from a decklist board go to
func (p *Piles) forBoard(board card.Board) *Pile {
	if board == card.Sideboard {
		return &p.Sideboard
	}
	return &p.Mainboard
}

// NotFoundError reports decklist entries the card database could not resolve.
// Piles holds everything that was resolved, so callers can still inspect it.
type NotFoundError struct {
	NotFound []card.Entry
	Piles    Piles
}

func (e *NotFoundError) Error() string {
	names := make([]string, len(e.NotFound))
	for i, entry := range e.NotFound {
		// identifiers without a decklist entry carry no quantity
		if entry.Quantity == 0 {
			names[i] = entry.Raw
			continue
		}
		names[i] = entry.String()
	}
	return fmt.Sprintf("could not find the following cards: %s", strings.Join(names, "; "))
}
