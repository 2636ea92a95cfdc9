package card

import (
	"errors"
	"fmt"
	"strings"
)

// Board names the section of a decklist a card was listed in
type Board string

const (
	Mainboard Board = "mainboard"
	Sideboard Board = "sideboard"
)

var ErrInvalidEntry = errors.New("invalid card entry")

// Entry represents one parsed decklist line
type Entry struct {
	Quantity        int    // Number of copies, always positive
	Name            string // Card name as written in the decklist
	Set             string // Set code (e.g., lea, m19), optional
	CollectorNumber string // Collector number (e.g., 162, 127p), optional
	Board           Board  // mainboard or sideboard
	Raw             string // Matched decklist text, kept for diagnostics
}

// NewEntry builds an Entry, rejecting entries that could never be looked up
func NewEntry(qty int, name, set, number string, board Board, raw string) (Entry, error) {
	name = strings.TrimSpace(name)
	if qty < 1 {
		return Entry{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidEntry, qty)
	}
	if name == "" {
		return Entry{}, fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	if board != Mainboard && board != Sideboard {
		return Entry{}, fmt.Errorf("%w: unknown board %q", ErrInvalidEntry, board)
	}

	return Entry{
		Quantity:        qty,
		Name:            name,
		Set:             strings.TrimSpace(set),
		CollectorNumber: strings.TrimSpace(number),
		Board:           board,
		Raw:             raw,
	}, nil
}

// HasPrinting reports whether the entry names an exact printing
func (e Entry) HasPrinting() bool {
	return e.Set != "" && e.CollectorNumber != ""
}

// Identifier returns the collection identifier used to look the entry up
func (e Entry) Identifier() Identifier {
	if e.HasPrinting() {
		return Identifier{Set: e.Set, CollectorNumber: e.CollectorNumber}
	}
	return Identifier{Name: e.Name}
}

func (e Entry) String() string {
	if e.HasPrinting() {
		return fmt.Sprintf("%d %s (%s) %s", e.Quantity, e.Name, e.Set, e.CollectorNumber)
	}
	return fmt.Sprintf("%d %s", e.Quantity, e.Name)
}

// Identifier is a single card identifier of a collection lookup.
// Exactly one form is set: ID, Set+CollectorNumber, or Name.
type Identifier struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name,omitempty"`
	Set             string `json:"set,omitempty"`
	CollectorNumber string `json:"collector_number,omitempty"`
}

func (i Identifier) String() string {
	switch {
	case i.ID != "":
		return "id:" + i.ID
	case i.Set != "" && i.CollectorNumber != "":
		return fmt.Sprintf("%s/%s", i.Set, i.CollectorNumber)
	default:
		return i.Name
	}
}
