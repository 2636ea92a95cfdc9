package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRecord = errors.New("invalid card record")

// ComponentToken is the related-part component of generated tokens
const ComponentToken = "token"

// Record is a card object returned by the card database
type Record struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Lang            string        `json:"lang"`
	Set             string        `json:"set"`
	SetName         string        `json:"set_name"`
	CollectorNumber string        `json:"collector_number"`
	Rarity          string        `json:"rarity"`
	ManaCost        string        `json:"mana_cost"`
	TypeLine        string        `json:"type_line"`
	OracleText      string        `json:"oracle_text"`
	ImageURIs       *ImageURIs    `json:"image_uris,omitempty"`
	CardFaces       []Face        `json:"card_faces,omitempty"`
	AllParts        []RelatedPart `json:"all_parts,omitempty"`
}

// ImageURIs holds the rendered image variants of a card or face
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// Face is one printed face of a multi-faced card
type Face struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// RelatedPart references another card object, e.g. a token the card creates
type RelatedPart struct {
	ID        uuid.UUID `json:"id"`
	Component string    `json:"component"`
	Name      string    `json:"name"`
	TypeLine  string    `json:"type_line"`
}

// FaceImages returns the PNG URL of every face with its own artwork.
// A top-level image always wins, so split and adventure cards count as single-faced.
func (r *Record) FaceImages() []string {
	if r.ImageURIs != nil {
		return []string{r.ImageURIs.PNG}
	}

	var urls []string
	for _, face := range r.CardFaces {
		if face.ImageURIs != nil && face.ImageURIs.PNG != "" {
			urls = append(urls, face.ImageURIs.PNG)
		}
	}
	return urls
}

// PreviewImage returns a smaller rendering suitable for terminal previews
func (r *Record) PreviewImage() string {
	if r.ImageURIs != nil {
		return r.ImageURIs.Normal
	}
	for _, face := range r.CardFaces {
		if face.ImageURIs != nil {
			return face.ImageURIs.Normal
		}
	}
	return ""
}

func (r *Record) IsDoubleFaced() bool {
	return len(r.FaceImages()) == 2
}

// TokenIDs returns the ids of related token parts in listing order
func (r *Record) TokenIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, part := range r.AllParts {
		if part.Component == ComponentToken {
			ids = append(ids, part.ID)
		}
	}
	return ids
}

// FrontName returns the name of the first face ("Delver of Secrets" for
// "Delver of Secrets // Insectile Aberration")
func (r *Record) FrontName() string {
	if i := strings.Index(r.Name, " // "); i >= 0 {
		return r.Name[:i]
	}
	return r.Name
}

// Validate checks the fields the conversion relies on
func (r *Record) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	if r.Set == "" {
		return fmt.Errorf("%w: %s has no set", ErrInvalidRecord, r.Name)
	}
	images := r.FaceImages()
	if len(images) == 0 || images[0] == "" {
		return fmt.Errorf("%w: %s has no image", ErrInvalidRecord, r.Name)
	}
	return nil
}

func (r *Record) String() string {
	return fmt.Sprintf("%v (%v) %v [%v]", r.Name, r.Set, r.CollectorNumber, r.Lang)
}
