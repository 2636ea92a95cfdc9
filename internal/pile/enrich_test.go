package pile

import (
	"context"
	"errors"
	"testing"

	"github.com/arcanaland/scrydeck/internal/card"
	"github.com/arcanaland/scrydeck/internal/scryfall"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sleeve = "https://example.com/sleeve.jpg"

// fakeLookup serves records from memory and records the calls it receives
type fakeLookup struct {
	result        scryfall.CollectionResult
	collectionErr error
	printings     map[string]card.Record
	tokens        map[uuid.UUID]card.Record

	printingCalls []string
	tokenCalls    [][]uuid.UUID
}

func (f *fakeLookup) Collection(ctx context.Context, entries []card.Entry) (*scryfall.CollectionResult, error) {
	if f.collectionErr != nil {
		return nil, f.collectionErr
	}
	res := f.result
	return &res, nil
}

func (f *fakeLookup) Printing(ctx context.Context, set, number string) (*card.Record, error) {
	f.printingCalls = append(f.printingCalls, set+"/"+number)
	rec, ok := f.printings[set+"/"+number]
	if !ok {
		return nil, &scryfall.ResponseError{Op: "Printing", StatusCode: 404, Body: "not found"}
	}
	return &rec, nil
}

func (f *fakeLookup) Tokens(ctx context.Context, ids []uuid.UUID) ([]card.Record, error) {
	f.tokenCalls = append(f.tokenCalls, ids)
	var out []card.Record
	for _, id := range ids {
		out = append(out, f.tokens[id])
	}
	return out, nil
}

func mustEntry(t *testing.T, qty int, name, set, number string, board card.Board) card.Entry {
	t.Helper()
	e, err := card.NewEntry(qty, name, set, number, board, "")
	require.NoError(t, err)
	return e
}

func singleFaced(name, set, number string) card.Record {
	return card.Record{
		ID:              uuid.New(),
		Name:            name,
		Lang:            "en",
		Set:             set,
		CollectorNumber: number,
		ImageURIs:       &card.ImageURIs{PNG: "https://img.example/" + set + "/" + number + ".png"},
	}
}

func doubleFaced(name, set, number string) card.Record {
	return card.Record{
		ID:              uuid.New(),
		Name:            name,
		Lang:            "en",
		Set:             set,
		CollectorNumber: number,
		CardFaces: []card.Face{
			{ImageURIs: &card.ImageURIs{PNG: "https://img.example/" + number + "-front.png"}},
			{ImageURIs: &card.ImageURIs{PNG: "https://img.example/" + number + "-back.png"}},
		},
	}
}

func TestEnrich_SingleFacedCards(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 4, "Lightning Bolt", "lea", "162", card.Mainboard),
		mustEntry(t, 2, "Negate", "m19", "54", card.Sideboard),
	}
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		singleFaced("Lightning Bolt", "lea", "162"),
		singleFaced("Negate", "m19", "54"),
	}}}

	piles, err := NewEnricher(lookup, sleeve, zaptest.NewLogger(t)).Enrich(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, []Entry{{
		Name:     "Lightning Bolt",
		Quantity: 4,
		FrontURL: "https://img.example/lea/162.png",
		BackURL:  sleeve,
	}}, piles.Mainboard.Entries)
	assert.Equal(t, []Entry{{
		Name:     "Negate",
		Quantity: 2,
		FrontURL: "https://img.example/m19/54.png",
		BackURL:  sleeve,
	}}, piles.Sideboard.Entries)
	assert.True(t, piles.Other.Empty())

	// No tokens pending still asks the lookup, which answers without a request
	require.Len(t, lookup.tokenCalls, 1)
	assert.Empty(t, lookup.tokenCalls[0])
}

func TestEnrich_DoubleFacedCard(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 3, "Delver of Secrets", "", "", card.Mainboard),
	}
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		doubleFaced("Delver of Secrets // Insectile Aberration", "isd", "51"),
	}}}

	piles, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.NoError(t, err)

	require.Len(t, piles.Mainboard.Entries, 1)
	assert.Equal(t, Entry{
		Name:     "Delver of Secrets // Insectile Aberration",
		Quantity: 3,
		FrontURL: "https://img.example/51-front.png",
		BackURL:  sleeve,
	}, piles.Mainboard.Entries[0])

	require.Len(t, piles.Other.Entries, 1)
	assert.Equal(t, Entry{
		Name:     "Delver of Secrets // Insectile Aberration",
		Quantity: 3,
		FrontURL: "https://img.example/51-front.png",
		BackURL:  "https://img.example/51-back.png",
	}, piles.Other.Entries[0])
}

func TestEnrich_NonEnglishRefetch(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 1, "Counterspell", "jmp", "69", card.Mainboard),
	}
	japanese := singleFaced("Counterspell", "jmp", "69")
	japanese.Lang = "ja"
	japanese.ImageURIs.PNG = "https://img.example/ja.png"

	english := singleFaced("Counterspell", "jmp", "69")

	lookup := &fakeLookup{
		result:    scryfall.CollectionResult{Data: []card.Record{japanese}},
		printings: map[string]card.Record{"jmp/69": english},
	}

	piles, err := NewEnricher(lookup, sleeve, zaptest.NewLogger(t)).Enrich(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, []string{"jmp/69"}, lookup.printingCalls)
	require.Len(t, piles.Mainboard.Entries, 1)
	assert.Equal(t, "https://img.example/jmp/69.png", piles.Mainboard.Entries[0].FrontURL)
}

func TestEnrich_NonEnglishRefetchFails(t *testing.T) {
	entries := []card.Entry{mustEntry(t, 1, "Counterspell", "jmp", "69", card.Mainboard)}
	japanese := singleFaced("Counterspell", "jmp", "69")
	japanese.Lang = "ja"

	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{japanese}}}

	_, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)

	var respErr *scryfall.ResponseError
	assert.True(t, errors.As(err, &respErr))
}

func TestEnrich_Tokens(t *testing.T) {
	elemental := uuid.New()
	goblin := uuid.New()

	pyromancer := singleFaced("Young Pyromancer", "m14", "163")
	pyromancer.AllParts = []card.RelatedPart{
		{ID: pyromancer.ID, Component: "combo_piece", Name: "Young Pyromancer"},
		{ID: elemental, Component: card.ComponentToken, Name: "Elemental"},
	}
	krenko := singleFaced("Krenko, Mob Boss", "m13", "139")
	krenko.AllParts = []card.RelatedPart{
		{ID: goblin, Component: card.ComponentToken, Name: "Goblin"},
		{ID: elemental, Component: card.ComponentToken, Name: "Elemental"},
	}

	entries := []card.Entry{
		mustEntry(t, 4, "Young Pyromancer", "m14", "163", card.Mainboard),
		mustEntry(t, 1, "Krenko, Mob Boss", "m13", "139", card.Sideboard),
	}
	lookup := &fakeLookup{
		result: scryfall.CollectionResult{Data: []card.Record{pyromancer, krenko}},
		tokens: map[uuid.UUID]card.Record{
			elemental: singleFaced("Elemental", "tm14", "6"),
			goblin:    singleFaced("Goblin", "tm13", "7"),
		},
	}

	piles, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.NoError(t, err)

	// Token ids are queried in discovery order without deduplication
	require.Len(t, lookup.tokenCalls, 1)
	assert.Equal(t, []uuid.UUID{elemental, goblin, elemental}, lookup.tokenCalls[0])

	require.Len(t, piles.Other.Entries, 3)
	for _, e := range piles.Other.Entries {
		assert.Equal(t, 1, e.Quantity)
		assert.Equal(t, sleeve, e.BackURL)
	}
	assert.Equal(t, "Elemental", piles.Other.Entries[0].Name)
	assert.Equal(t, "Goblin", piles.Other.Entries[1].Name)
}

func TestEnrich_NotFound(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 4, "Lightning Bolt", "lea", "162", card.Mainboard),
		mustEntry(t, 1, "Lightnig Bolt", "", "", card.Mainboard),
		mustEntry(t, 2, "Negate", "m19", "54", card.Sideboard),
		mustEntry(t, 1, "Negate", "zzz", "999", card.Sideboard),
	}
	lookup := &fakeLookup{result: scryfall.CollectionResult{
		Data: []card.Record{
			singleFaced("Lightning Bolt", "lea", "162"),
			singleFaced("Negate", "m19", "54"),
		},
		NotFound: []card.Identifier{
			{Name: "Lightnig Bolt"},
			{Set: "zzz", CollectorNumber: "999"},
		},
	}}

	piles, enrichErr := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.Error(t, enrichErr)

	var notFound *NotFoundError
	require.True(t, errors.As(enrichErr, &notFound))
	assert.Equal(t, []card.Entry{entries[1], entries[3]}, notFound.NotFound)

	// The partial piles are exactly what the resolvable entries produce
	want, err := NewEnricher(&fakeLookup{result: scryfall.CollectionResult{Data: lookup.result.Data}}, sleeve, nil).
		Enrich(context.Background(), []card.Entry{entries[0], entries[2]})
	require.NoError(t, err)
	assert.Equal(t, want, notFound.Piles)
	assert.Equal(t, want, piles)

	assert.Contains(t, enrichErr.Error(), "1 Lightnig Bolt")
	assert.Contains(t, enrichErr.Error(), "1 Negate (zzz) 999")
}

func TestEnrich_NotFoundIdentifierWithoutEntry(t *testing.T) {
	entries := []card.Entry{mustEntry(t, 2, "Opt", "", "", card.Mainboard)}
	lookup := &fakeLookup{result: scryfall.CollectionResult{
		Data:     []card.Record{singleFaced("Opt", "xln", "65")},
		NotFound: []card.Identifier{{Name: "Mystery Card"}},
	}}

	_, err := NewEnricher(lookup, sleeve, zaptest.NewLogger(t)).Enrich(context.Background(), entries)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Len(t, notFound.NotFound, 1)
	assert.Equal(t, "Mystery Card", notFound.NotFound[0].Raw)
	assert.Equal(t, "could not find the following cards: Mystery Card", err.Error())
}

func TestEnrich_SamePrintingOnBothBoards(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 4, "Lightning Bolt", "2xm", "117", card.Mainboard),
		mustEntry(t, 1, "Lightning Bolt", "", "", card.Sideboard),
	}
	// the name lookup resolves to the same default printing
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		singleFaced("Lightning Bolt", "2xm", "117"),
		singleFaced("Lightning Bolt", "2xm", "117"),
	}}}

	piles, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.NoError(t, err)

	require.Len(t, piles.Mainboard.Entries, 1)
	require.Len(t, piles.Sideboard.Entries, 1)
	assert.Equal(t, 4, piles.Mainboard.Count())
	assert.Equal(t, 1, piles.Sideboard.Count())
}

func TestEnrich_DoubleFacedFrontNameAfterClaimedPrinting(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 2, "Delver of Secrets", "isd", "51", card.Mainboard),
		mustEntry(t, 1, "Delver of Secrets", "", "", card.Sideboard),
	}
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		doubleFaced("Delver of Secrets // Insectile Aberration", "isd", "51"),
		doubleFaced("Delver of Secrets // Insectile Aberration", "isd", "51"),
	}}}

	piles, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, piles.Mainboard.Count())
	assert.Equal(t, 1, piles.Sideboard.Count())
	assert.Equal(t, 3, piles.Other.Count())
}

func TestEnrich_DuplicateNamesAcrossBoards(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 2, "Negate", "", "", card.Mainboard),
		mustEntry(t, 1, "Negate", "", "", card.Sideboard),
	}
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		singleFaced("Negate", "m19", "54"),
		singleFaced("Negate", "m19", "54"),
	}}}

	piles, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.NoError(t, err)

	require.Len(t, piles.Mainboard.Entries, 1)
	require.Len(t, piles.Sideboard.Entries, 1)
	assert.Equal(t, 2, piles.Mainboard.Entries[0].Quantity)
	assert.Equal(t, 1, piles.Sideboard.Entries[0].Quantity)
}

func TestEnrich_MatchesCaseInsensitively(t *testing.T) {
	entries := []card.Entry{
		mustEntry(t, 1, "lightning bolt", "", "", card.Mainboard),
		mustEntry(t, 1, "Opt", "XLN", "65", card.Mainboard),
	}
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		singleFaced("Lightning Bolt", "lea", "162"),
		singleFaced("Opt", "xln", "65"),
	}}}

	piles, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 2, piles.Mainboard.Count())
}

func TestEnrich_UnmatchedRecord(t *testing.T) {
	entries := []card.Entry{mustEntry(t, 1, "Opt", "", "", card.Mainboard)}
	lookup := &fakeLookup{result: scryfall.CollectionResult{Data: []card.Record{
		singleFaced("Shock", "m19", "156"),
	}}}

	_, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), entries)
	assert.ErrorIs(t, err, ErrUnmatchedRecord)
}

func TestEnrich_LookupError(t *testing.T) {
	respErr := &scryfall.ResponseError{Op: "Collection", StatusCode: 500, Body: "boom"}
	lookup := &fakeLookup{collectionErr: respErr}

	_, err := NewEnricher(lookup, sleeve, nil).Enrich(context.Background(), nil)
	assert.ErrorIs(t, err, respErr)
	assert.Empty(t, lookup.tokenCalls)
}
