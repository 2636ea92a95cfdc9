// Package converter turns decklist text into a Tabletop Simulator saved object
package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arcanaland/scrydeck/internal/config"
	"github.com/arcanaland/scrydeck/internal/deck"
	"github.com/arcanaland/scrydeck/internal/pile"
	"github.com/arcanaland/scrydeck/internal/tts"
	"go.uber.org/zap"
)

// Converter runs the parse, enrich and assemble stages
type Converter struct {
	lookup pile.Lookup
	sleeve string
	logger *zap.Logger
}

type Option func(*Converter)

// WithSleeve sets the card back of single-faced cards and tokens
func WithSleeve(sleeve string) Option {
	return func(c *Converter) {
		if sleeve != "" {
			c.sleeve = sleeve
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter resolving cards through lookup
func New(lookup pile.Lookup, opts ...Option) *Converter {
	c := &Converter{
		lookup: lookup,
		sleeve: config.DefaultSleeve,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert parses text and builds the document. When some cards cannot be
// found the error is a *pile.NotFoundError and no document is returned.
func (c *Converter) Convert(ctx context.Context, text string) (*tts.Document, error) {
	entries := deck.Parse(text)
	if len(entries) == 0 {
		return nil, deck.ErrNoCards
	}
	c.logger.Debug("parsed decklist", zap.Int("entries", len(entries)))

	enricher := pile.NewEnricher(c.lookup, c.sleeve, c.logger)
	piles, err := enricher.Enrich(ctx, entries)
	if err != nil {
		return nil, err
	}

	c.logger.Info("resolved decklist",
		zap.Int("mainboard", piles.Mainboard.Count()),
		zap.Int("sideboard", piles.Sideboard.Count()),
		zap.Int("other", piles.Other.Count()),
	)
	return tts.Assemble(piles), nil
}

// Write serializes doc as JSON
func Write(w io.Writer, doc *tts.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}
	return nil
}
