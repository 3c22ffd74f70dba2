package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/deck"
	"github.com/arcanaland/flashdeck/internal/render"
)

func TestCardEscapesContent(t *testing.T) {
	d := &deck.Deck{ID: "a", Title: `Tom & "Jerry"`}
	c := card.Card{
		ID:          "001",
		Notion:      `<script>alert('x')</script>`,
		Explication: "a < b > c",
		Exemple:     `it's "quoted"`,
	}

	out := render.Card(d, c, "1/1")

	require.Contains(t, out, "&lt;script&gt;")
	require.NotContains(t, out, "<script>")
	require.NotContains(t, out, "alert('x')")
	require.Contains(t, out, "a &lt; b &gt; c")
	require.Contains(t, out, "Tom &amp; &#34;Jerry&#34;")
	require.Contains(t, out, "it&#39;s &#34;quoted&#34;")
}

func TestCardEscapesImageAttributes(t *testing.T) {
	c := card.Card{
		ID:     "001",
		Notion: "N",
		Image:  &card.Image{Src: `x.png" onerror="alert(1)`, Alt: `"><b>bold</b>`},
	}

	out := render.Card(&deck.Deck{Title: "T"}, c, "1/1")

	require.NotContains(t, out, `" onerror="`)
	require.NotContains(t, out, "<b>")
	require.Contains(t, out, `alt="&#34;&gt;&lt;b&gt;bold&lt;/b&gt;"`)
}

func TestCardLayout(t *testing.T) {
	d := &deck.Deck{Title: "ISTQB"}
	c := card.Card{ID: "004", Notion: "Oracle de test", Explication: "Source du résultat attendu", Exemple: card.Placeholder}

	out := render.Card(d, c, "4/10")

	require.Contains(t, out, `<div class="card__badge">ISTQB • ID 004 • 4/10</div>`)
	require.Contains(t, out, `<h2 class="card__title">Oracle de test</h2>`)
	require.Contains(t, out, `<p class="section__content">Source du résultat attendu</p>`)
	require.Contains(t, out, `<p class="section__content">—</p>`)
	require.Equal(t, 2, strings.Count(out, `<section class="section">`))
}

func TestCardBlankFieldsFallBackToPlaceholder(t *testing.T) {
	out := render.Card(nil, card.Card{}, "")
	require.Contains(t, out, `<div class="card__badge">— • ID — • —</div>`)
	require.Contains(t, out, `<h2 class="card__title">—</h2>`)
}

func TestResolveImage(t *testing.T) {
	require.Equal(t, card.DefaultImage, render.ResolveImage(card.Card{}))
	require.Equal(t, card.DefaultImage, render.ResolveImage(card.Card{Image: &card.Image{Src: "  ", Alt: "x"}}))

	own := render.ResolveImage(card.Card{Image: &card.Image{Src: "img/a.png", Alt: "Schéma"}})
	require.Equal(t, card.Image{Src: "img/a.png", Alt: "Schéma"}, own)

	noAlt := render.ResolveImage(card.Card{Image: &card.Image{Src: "img/a.png", Alt: card.Placeholder}})
	require.Equal(t, card.Image{Src: "img/a.png", Alt: card.DefaultImage.Alt}, noAlt)
}

func TestCardKeepsDataImageSource(t *testing.T) {
	src := "data:image/png;base64,iVBORw0KGgo="
	c := card.Card{ID: "001", Notion: "N", Image: &card.Image{Src: src, Alt: "pixel"}}

	out := render.Card(&deck.Deck{Title: "T"}, c, "1/1")

	require.Contains(t, out, `src="`+src+`"`)
	require.NotContains(t, out, "ZgotmplZ")
}

func TestCardAbsoluteImageSourceIsEscaped(t *testing.T) {
	c := card.Card{ID: "001", Notion: "N", Image: &card.Image{Src: "https://cdn.example/a.png?w=1&h=2", Alt: "a"}}

	out := render.Card(&deck.Deck{Title: "T"}, c, "1/1")

	require.Contains(t, out, `src="https://cdn.example/a.png?w=1&amp;h=2"`)
}

func TestResolveImageRejectsUnsupportedSchemes(t *testing.T) {
	for _, src := range []string{
		"javascript:alert(1)",
		"data:text/html;base64,PGI+",
		"file:///etc/passwd",
	} {
		got := render.ResolveImage(card.Card{Image: &card.Image{Src: src, Alt: "x"}})
		require.Equal(t, card.DefaultImage, got, src)
	}

	for _, src := range []string{"img/a.png", "/assets/a.png", "http://x/a.png", "DATA:image/gif;base64,R0lGOD=="} {
		got := render.ResolveImage(card.Card{Image: &card.Image{Src: src, Alt: "x"}})
		require.Equal(t, src, got.Src)
	}
}

func TestCardUsesDefaultImage(t *testing.T) {
	out := render.Card(&deck.Deck{Title: "A"}, card.Card{ID: "001", Notion: "N1"}, "1/1")
	require.Contains(t, out, `src="`+card.DefaultImage.Src+`"`)
	require.Contains(t, out, `alt="`+card.DefaultImage.Alt+`"`)
}

func TestEmptyAndFailureFragments(t *testing.T) {
	require.Contains(t, render.Empty(), "Aucune carte")
	require.Contains(t, render.Failure(), "Impossible de charger les decks")
}

func TestDeckOptions(t *testing.T) {
	out := render.DeckOptions([]deck.CatalogEntry{
		{ID: "a", Title: "A & B", File: "a.json"},
		{ID: "b", File: "b.json"},
	}, "b")

	require.Equal(t,
		`<option value="a">A &amp; B</option><option value="b" selected>b</option>`,
		out)
}

func TestPosition(t *testing.T) {
	require.Equal(t, "1/1", render.Position(0, 1))
	require.Equal(t, "7/12", render.Position(6, 12))
}

func TestPageDocument(t *testing.T) {
	p := &render.Page{}
	p.SetDeckOptions([]deck.CatalogEntry{{ID: "a", Title: "A", File: "a.json"}}, "a")
	p.ShowCards(render.Card(&deck.Deck{Title: "A"}, card.Card{ID: "001", Notion: "<i>N</i>"}, "1/1"))
	p.SetStatus("Deck: A — carte 1/1", false)
	p.SetControlsEnabled(true)

	out := p.HTML()
	require.Contains(t, out, `<select id="deck-select"><option value="a" selected>A</option></select>`)
	require.Contains(t, out, `<button id="btn-next" type="button">`)
	require.Contains(t, out, `<p id="status" data-state="ok">Deck: A — carte 1/1</p>`)
	require.Contains(t, out, "&lt;i&gt;N&lt;/i&gt;")
	require.NotContains(t, out, "<i>N</i>")

	p.SetStatus("Erreur: <boom>", true)
	p.SetControlsEnabled(false)
	out = p.HTML()
	require.Contains(t, out, `<p id="status" data-state="error">Erreur: &lt;boom&gt;</p>`)
	require.Contains(t, out, `<button id="btn-random" type="button" disabled>`)
}
