package card

// Placeholder is shown in place of any text field that is missing or blank.
const Placeholder = "—"

// Image is an illustration attached to a card
type Image struct {
	Src string
	Alt string
}

// Card represents one revision card
type Card struct {
	ID          string // Document ID, or the zero-padded 1-based position (e.g. 004)
	Notion      string // Concept being revised
	Explication string // Explanation, read from "definition" in legacy decks
	Exemple     string // Worked example
	Image       *Image // Nil when the card carries no image of its own
}

// DefaultImage is substituted at render time for cards without an image.
var DefaultImage = Image{
	Src: "assets/images/istqb-fl-fr/001.png",
	Alt: "Illustration — révision test logiciel",
}
