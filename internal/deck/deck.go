package deck

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/arcanaland/flashdeck/internal/card"
)

// DefaultTitle is used when a deck document has no usable title.
const DefaultTitle = "Deck"

// Deck represents a normalized revision deck
type Deck struct {
	ID          string
	Title       string
	Description string
	Cards       []card.Card
}

// Len returns the number of cards in the deck. A nil deck has none.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cards)
}

// Normalize converts a decoded deck document into a Deck. It never fails: missing
// fields fall back to defaults and a malformed cards field yields an empty deck.
//
// Both card formats are accepted:
//   - current: {notion, explication, exemple}
//   - legacy:  {notion, definition, exemple}
func Normalize(raw any, fallbackID string) Deck {
	doc, _ := raw.(map[string]any)

	d := Deck{
		ID:          textOr(doc["id"], fallbackID),
		Title:       textOr(doc["title"], DefaultTitle),
		Description: textOr(doc["description"], card.Placeholder),
	}

	items, _ := doc["cards"].([]any)
	d.Cards = make([]card.Card, 0, len(items))
	for i, item := range items {
		d.Cards = append(d.Cards, normalizeCard(item, i))
	}

	return d
}

func normalizeCard(raw any, position int) card.Card {
	fields, _ := raw.(map[string]any)

	c := card.Card{
		ID:      textOr(fields["id"], fmt.Sprintf("%03d", position+1)),
		Notion:  textOr(fields["notion"], card.Placeholder),
		Exemple: textOr(fields["exemple"], card.Placeholder),
	}

	// explication wins whenever it is present, even blank; definition only
	// covers documents that predate the rename.
	explication, ok := fields["explication"]
	if !ok || explication == nil {
		explication = fields["definition"]
	}
	c.Explication = textOr(explication, card.Placeholder)

	c.Image = normalizeImage(fields["image"], c.Notion)
	return c
}

func normalizeImage(raw any, notion string) *card.Image {
	fields, _ := raw.(map[string]any)
	src, ok := text(fields["src"])
	if !ok {
		return nil
	}

	alt, ok := text(fields["alt"])
	if !ok {
		alt = notion
		if alt == card.Placeholder {
			alt = card.DefaultImage.Alt
		}
	}
	return &card.Image{Src: src, Alt: alt}
}

// text renders a scalar JSON value as trimmed text. Objects, arrays, null and
// blank strings report false.
func text(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// textOr returns the text of v, or fallback when v is missing or holds only
// the placeholder.
func textOr(v any, fallback string) string {
	if s, ok := text(v); ok && s != card.Placeholder {
		return s
	}
	return fallback
}
