// Package tts builds Tabletop Simulator saved-object documents from card piles.
package tts

import (
	"github.com/arcanaland/scrydeck/internal/pile"
)

const (
	// PileOffset is the distance along X between successive piles
	PileOffset = 3

	cardIDStep = 100
)

var nicknames = map[pile.Name]string{
	pile.Mainboard: "Mainboard",
	pile.Sideboard: "Sideboard",
	pile.Other:     "Tokens & Dual Faced Cards",
}

// Document is the root of a saved-object file
type Document struct {
	ObjectStates []DeckObject `json:"ObjectStates"`
}

// DeckObject is a custom deck spawned as one pile
type DeckObject struct {
	Name             string                  `json:"Name"`
	Nickname         string                  `json:"Nickname"`
	ContainedObjects []CardObject            `json:"ContainedObjects"`
	DeckIDs          []int                   `json:"DeckIDs"`
	CustomDeck       map[int]CustomDeckEntry `json:"CustomDeck"`
	Transform        Transform               `json:"Transform"`
}

// CardObject is a single physical card inside a deck
type CardObject struct {
	CardID    int       `json:"CardID"`
	Name      string    `json:"Name"`
	Nickname  string    `json:"Nickname"`
	Transform Transform `json:"Transform"`
}

// CustomDeckEntry is the image sheet of one distinct card
type CustomDeckEntry struct {
	FaceURL      string `json:"FaceURL"`
	BackURL      string `json:"BackURL"`
	NumHeight    int    `json:"NumHeight"`
	NumWidth     int    `json:"NumWidth"`
	BackIsHidden bool   `json:"BackIsHidden"`
}

// Transform positions an object. Cards lie face down: rotated 180° about Y and Z.
type Transform struct {
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	PosZ   float64 `json:"posZ"`
	RotX   float64 `json:"rotX"`
	RotY   float64 `json:"rotY"`
	RotZ   float64 `json:"rotZ"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	ScaleZ float64 `json:"scaleZ"`
}

func newTransform(posX float64) Transform {
	return Transform{
		PosX:   posX,
		RotY:   180,
		RotZ:   180,
		ScaleX: 1,
		ScaleY: 1,
		ScaleZ: 1,
	}
}

// Assemble lays the piles out side by side. The mainboard is always present;
// the sideboard and other piles only when they hold cards.
func Assemble(piles pile.Piles) *Document {
	doc := &Document{
		ObjectStates: []DeckObject{deckObject(nicknames[pile.Mainboard], piles.Mainboard, 0)},
	}

	pos := 0
	for _, name := range []pile.Name{pile.Sideboard, pile.Other} {
		p := piles.Get(name)
		if p.Empty() {
			continue
		}
		pos += PileOffset
		doc.ObjectStates = append(doc.ObjectStates, deckObject(nicknames[name], p, float64(pos)))
	}

	return doc
}

func deckObject(nickname string, p pile.Pile, posX float64) DeckObject {
	obj := DeckObject{
		Name:             "DeckCustom",
		Nickname:         nickname,
		ContainedObjects: make([]CardObject, 0, p.Count()),
		DeckIDs:          make([]int, 0, p.Count()),
		CustomDeck:       make(map[int]CustomDeckEntry, len(p.Entries)),
		Transform:        newTransform(posX),
	}

	for i, entry := range p.Entries {
		index := i + 1
		cardID := index * cardIDStep

		for n := 0; n < entry.Quantity; n++ {
			obj.ContainedObjects = append(obj.ContainedObjects, CardObject{
				CardID:    cardID,
				Name:      "Card",
				Nickname:  entry.Name,
				Transform: newTransform(0),
			})
			obj.DeckIDs = append(obj.DeckIDs, cardID)
		}

		obj.CustomDeck[index] = CustomDeckEntry{
			FaceURL:      entry.FrontURL,
			BackURL:      entry.BackURL,
			NumHeight:    1,
			NumWidth:     1,
			BackIsHidden: true,
		}
	}

	return obj
}
