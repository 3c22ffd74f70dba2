package render

import (
	"html/template"

	"github.com/arcanaland/flashdeck/internal/deck"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8" />
  <title>Révision</title>
</head>
<body>
  <header class="toolbar">
    <select id="deck-select"{{if not .Enabled}} disabled{{end}}>{{.Options}}</select>
    <button id="btn-next" type="button"{{if not .Enabled}} disabled{{end}}>Suivant</button>
    <button id="btn-random" type="button"{{if not .Enabled}} disabled{{end}}>Aléatoire</button>
  </header>
  <p id="status" data-state="{{.State}}">{{.Status}}</p>
  <main id="cards">{{.Cards}}</main>
</body>
</html>
`))

// Page records what a viewer shows and renders it as a standalone HTML
// document with the stable element ids of the web viewer.
type Page struct {
	Status   string
	IsError  bool
	Enabled  bool
	Options  string
	Fragment string
}

// SetStatus updates the status line.
func (p *Page) SetStatus(msg string, isError bool) {
	p.Status = msg
	p.IsError = isError
}

// SetControlsEnabled toggles the selector and navigation buttons.
func (p *Page) SetControlsEnabled(enabled bool) {
	p.Enabled = enabled
}

// SetDeckOptions fills the deck selector.
func (p *Page) SetDeckOptions(entries []deck.CatalogEntry, selectedID string) {
	p.Options = DeckOptions(entries, selectedID)
}

// ShowCards replaces the card region with a fragment produced by this package.
func (p *Page) ShowCards(fragment string) {
	p.Fragment = fragment
}

// HTML renders the full document.
func (p *Page) HTML() string {
	state := "ok"
	if p.IsError {
		state = "error"
	}
	return execute(pageTmpl, struct {
		Status  string
		State   string
		Enabled bool
		Options template.HTML
		Cards   template.HTML
	}{
		Status:  p.Status,
		State:   state,
		Enabled: p.Enabled,
		// Both fragments were escaped when they were rendered.
		Options: template.HTML(p.Options),
		Cards:   template.HTML(p.Fragment),
	})
}
