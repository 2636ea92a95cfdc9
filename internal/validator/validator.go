package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/scrydeck/internal/card"
	"github.com/arcanaland/scrydeck/internal/deck"
)

// MaxSideboardSize is the largest sideboard allowed in constructed play
const MaxSideboardSize = 15

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	text    string
	entries []card.Entry
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.readDecklist(); err != nil {
		return v.Results, err
	}

	v.validateEntries()
	v.validateLines()
	v.validatePrintings()
	v.validateDuplicates()
	v.validateSideboard()

	return v.Results, nil
}

func (v *Validator) readDecklist() error {
	info, err := os.Stat(v.DeckPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("decklist not found: %s", v.DeckPath)
	}
	if err != nil {
		return fmt.Errorf("error reading decklist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a decklist", v.DeckPath)
	}

	data, err := os.ReadFile(v.DeckPath)
	if err != nil {
		return fmt.Errorf("error reading decklist: %w", err)
	}
	v.text = string(data)
	v.entries = deck.Parse(v.text)
	return nil
}

func (v *Validator) validateEntries() {
	if len(v.entries) == 0 {
		v.Results.Errors = append(v.Results.Errors, "no card entries found")
	}
}

// validateLines reports lines that will be silently skipped during conversion
func (v *Validator) validateLines() {
	for _, line := range deck.UnmatchedLines(v.text) {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("line is not a card entry and will be ignored: %q", line))
	}
}

// validatePrintings warns about entries that will be looked up by name only
func (v *Validator) validatePrintings() {
	for _, e := range v.entries {
		if e.HasPrinting() {
			continue
		}
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s has no set code or collector number, any printing may be used", e.Name))
	}
}

func (v *Validator) validateDuplicates() {
	seen := make(map[string]bool)
	for _, e := range v.entries {
		key := string(e.Board) + "/" + strings.ToLower(e.Name)
		if seen[key] {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s is listed more than once in the %s", e.Name, e.Board))
			continue
		}
		seen[key] = true
	}
}

func (v *Validator) validateSideboard() {
	total := 0
	for _, e := range v.entries {
		if e.Board == card.Sideboard {
			total += e.Quantity
		}
	}
	if total > MaxSideboardSize {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("sideboard has %d cards (maximum %d)", total, MaxSideboardSize))
	}
}
