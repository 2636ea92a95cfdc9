package pile

import (
	"context"
	"fmt"

	"github.com/arcanaland/scrydeck/internal/card"
	"github.com/arcanaland/scrydeck/internal/scryfall"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lookup is the card database the enricher resolves entries against
type Lookup interface {
	Collection(ctx context.Context, entries []card.Entry) (*scryfall.CollectionResult, error)
	Printing(ctx context.Context, set, number string) (*card.Record, error)
	Tokens(ctx context.Context, ids []uuid.UUID) ([]card.Record, error)
}

var _ Lookup = (*scryfall.Client)(nil)

// Enricher resolves decklist entries into piles of card images
type Enricher struct {
	lookup Lookup
	sleeve string
	logger *zap.Logger
}

// NewEnricher creates an Enricher using sleeve as the back of single-faced cards
func NewEnricher(lookup Lookup, sleeve string, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{
		lookup: lookup,
		sleeve: sleeve,
		logger: logger,
	}
}

// Enrich looks every entry up and sorts the results into piles.
//
// Double-faced cards appear twice: in their board's pile with the sleeve as
// back, and in the Other pile with their second face as back. Tokens created
// by any card are added to the Other pile.
//
// When some entries cannot be found the returned error is a *NotFoundError
// and the piles hold everything that was resolved.
func (e *Enricher) Enrich(ctx context.Context, entries []card.Entry) (Piles, error) {
	piles := newPiles()

	res, err := e.lookup.Collection(ctx, entries)
	if err != nil {
		return piles, fmt.Errorf("error looking up cards: %w", err)
	}

	index := newEntryIndex(entries)
	var tokenIDs []uuid.UUID

	for i := range res.Data {
		record := &res.Data[i]

		idx, ok := index.matchRecord(record)
		if !ok {
			return piles, fmt.Errorf("%w: %s", ErrUnmatchedRecord, record)
		}
		entry := entries[idx]

		if record.Lang != "en" {
			e.logger.Info("replacing non-English printing",
				zap.String("card", record.Name),
				zap.String("lang", record.Lang),
				zap.String("set", record.Set),
				zap.String("number", record.CollectorNumber),
			)
			english, err := e.lookup.Printing(ctx, record.Set, record.CollectorNumber)
			if err != nil {
				return piles, fmt.Errorf("error fetching English printing of %s: %w", record.Name, err)
			}
			record = english
		}

		tokenIDs = append(tokenIDs, record.TokenIDs()...)

		if err := record.Validate(); err != nil {
			return piles, err
		}
		images := record.FaceImages()

		if record.IsDoubleFaced() {
			piles.Other.Entries = append(piles.Other.Entries, Entry{
				Name:     record.Name,
				Quantity: entry.Quantity,
				FrontURL: images[0],
				BackURL:  images[1],
			})
		}

		target := piles.forBoard(entry.Board)
		target.Entries = append(target.Entries, Entry{
			Name:     record.Name,
			Quantity: entry.Quantity,
			FrontURL: images[0],
			BackURL:  e.sleeve,
		})
	}

	e.logger.Debug("resolving tokens", zap.Int("count", len(tokenIDs)))
	tokens, err := e.lookup.Tokens(ctx, tokenIDs)
	if err != nil {
		return piles, fmt.Errorf("error looking up tokens: %w", err)
	}
	for i := range tokens {
		token := &tokens[i]
		if err := token.Validate(); err != nil {
			return piles, err
		}
		piles.Other.Entries = append(piles.Other.Entries, Entry{
			Name:     token.Name,
			Quantity: 1,
			FrontURL: token.FaceImages()[0],
			BackURL:  e.sleeve,
		})
	}

	if len(res.NotFound) > 0 {
		notFound := make([]card.Entry, 0, len(res.NotFound))
		for _, id := range res.NotFound {
			idx, ok := index.matchIdentifier(id)
			if !ok {
				e.logger.Warn("unresolved identifier matches no entry", zap.Stringer("identifier", id))
				notFound = append(notFound, card.Entry{
					Raw:             id.String(),
					Name:            id.String(),
					Set:             id.Set,
					CollectorNumber: id.CollectorNumber,
				})
				continue
			}
			notFound = append(notFound, entries[idx])
		}
		return piles, &NotFoundError{NotFound: notFound, Piles: piles}
	}

	return piles, nil
}
