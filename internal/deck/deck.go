package deck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/scrydeck/internal/card"
)

// Extension is the file extension of decklists kept in the deck library
const Extension = ".txt"

var ErrNoCards = errors.New("no cards found in decklist")

// Deck represents a decklist file
type Deck struct {
	Name    string
	Path    string
	Entries []card.Entry
}

// LoadDeck reads and parses a decklist file
func LoadDeck(deckPath string) (*Deck, error) {
	info, err := os.Stat(deckPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("decklist not found: %s", deckPath)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading decklist: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a decklist", deckPath)
	}

	data, err := os.ReadFile(deckPath)
	if err != nil {
		return nil, fmt.Errorf("error reading decklist: %w", err)
	}

	entries := Parse(string(data))
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", deckPath, ErrNoCards)
	}

	return &Deck{
		Name:    strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath)),
		Path:    deckPath,
		Entries: entries,
	}, nil
}

// Count returns the number of cards on a board, counting every copy
func (d *Deck) Count(board card.Board) int {
	total := 0
	for _, e := range d.Entries {
		if e.Board == board {
			total += e.Quantity
		}
	}
	return total
}
