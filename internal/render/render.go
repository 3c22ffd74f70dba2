package render

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/deck"
)

// All card content comes from untrusted JSON documents. It only ever reaches
// the output through html/template, which escapes & < > " ' in every context.
var (
	cardTmpl = template.Must(template.New("card").Parse(`
<article class="card">
  <div class="card__badge">{{.DeckTitle}} • ID {{.CardID}} • {{.Position}}</div>

  <h2 class="card__title">{{.Notion}}</h2>

  <div class="card__media">
    <img class="card__img" src="{{.ImageSrc}}" alt="{{.ImageAlt}}" loading="lazy" />
  </div>

  <div class="card__sections">
    <section class="section">
      <h3 class="section__label">Explication</h3>
      <p class="section__content">{{.Explication}}</p>
    </section>

    <section class="section">
      <h3 class="section__label">Exemple</h3>
      <p class="section__content">{{.Exemple}}</p>
    </section>
  </div>
</article>
`))

	optionsTmpl = template.Must(template.New("options").Parse(
		`{{range .}}<option value="{{.ID}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}`))
)

const emptyFragment = `
<article class="card">
  <h2 class="card__title">Aucune carte</h2>
  <p class="card__text">Ce deck ne contient aucune carte pour le moment.</p>
</article>
`

const failureFragment = `
<article class="card">
  <h2 class="card__title">Impossible de charger les decks</h2>
  <p class="card__text">
    Vérifie <code>data/decks/index.json</code> et le fichier deck référencé.
  </p>
</article>
`

type cardData struct {
	DeckTitle   string
	CardID      string
	Position    string
	Notion      string
	Explication string
	Exemple     string
	ImageSrc    template.URL
	ImageAlt    string
}

type optionData struct {
	ID       string
	Label    string
	Selected bool
}

// Card renders a single card of d as an HTML fragment.
func Card(d *deck.Deck, c card.Card, position string) string {
	title := card.Placeholder
	if d != nil {
		title = orPlaceholder(d.Title)
	}
	// ResolveImage vets the scheme; the attribute is still escaped.
	img := ResolveImage(c)
	return execute(cardTmpl, cardData{
		DeckTitle:   title,
		CardID:      orPlaceholder(c.ID),
		Position:    orPlaceholder(position),
		Notion:      orPlaceholder(c.Notion),
		Explication: orPlaceholder(c.Explication),
		Exemple:     orPlaceholder(c.Exemple),
		ImageSrc:    template.URL(img.Src),
		ImageAlt:    img.Alt,
	})
}

// ResolveImage returns the card's own image, or the default image when it has
// none or its source is neither a relative path, an http(s) URL nor a
// data:image/ URI.
func ResolveImage(c card.Card) card.Image {
	if c.Image == nil || !imageSource(strings.TrimSpace(c.Image.Src)) {
		return card.DefaultImage
	}
	img := card.Image{
		Src: strings.TrimSpace(c.Image.Src),
		Alt: strings.TrimSpace(c.Image.Alt),
	}
	if img.Alt == "" || img.Alt == card.Placeholder {
		img.Alt = card.DefaultImage.Alt
	}
	return img
}

func imageSource(src string) bool {
	if src == "" {
		return false
	}
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return true
	case "data":
		return strings.HasPrefix(strings.ToLower(src), "data:image/")
	}
	return false
}

// Empty renders the placeholder shown for a deck without cards. Callers must
// disable navigation whenever they show it.
func Empty() string {
	return emptyFragment
}

// Failure renders the diagnostic shown when no deck could be loaded at startup.
func Failure() string {
	return failureFragment
}

// DeckOptions renders the <option> list of a deck selector.
func DeckOptions(entries []deck.CatalogEntry, selectedID string) string {
	opts := make([]optionData, 0, len(entries))
	for _, e := range entries {
		opts = append(opts, optionData{ID: e.ID, Label: e.Label(), Selected: e.ID == selectedID})
	}
	return execute(optionsTmpl, opts)
}

// Position formats the zero-based index i of n cards as "i+1/n".
func Position(i, n int) string {
	return strconv.Itoa(i+1) + "/" + strconv.Itoa(n)
}

func orPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return card.Placeholder
	}
	return s
}

func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		// Templates are fixed and data is plain strings, so this is a programming error.
		panic("render: " + t.Name() + ": " + err.Error())
	}
	return b.String()
}
