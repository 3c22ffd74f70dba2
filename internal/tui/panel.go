package tui

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Section is one labelled block of a card.
type Section struct {
	Label   string
	Content string
}

// Panel is the text content of a rendered card fragment.
type Panel struct {
	Badge    string
	Title    string
	Text     string
	Sections []Section
	ImageSrc string
	ImageAlt string
}

// ParseFragment extracts the visible text of a card fragment. Entities are
// decoded: the panel holds plain text meant for a terminal, not HTML.
func ParseFragment(fragment string) (Panel, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Panel{}, err
	}

	card := doc.Find("article.card").First()
	p := Panel{
		Badge: collapse(card.Find(".card__badge").Text()),
		Title: collapse(card.Find(".card__title").Text()),
		Text:  collapse(card.Find(".card__text").Text()),
	}

	if img := card.Find("img.card__img").First(); img.Length() > 0 {
		p.ImageSrc, _ = img.Attr("src")
		p.ImageAlt, _ = img.Attr("alt")
	}

	card.Find("section.section").Each(func(_ int, s *goquery.Selection) {
		p.Sections = append(p.Sections, Section{
			Label:   collapse(s.Find(".section__label").Text()),
			Content: collapse(s.Find(".section__content").Text()),
		})
	})

	return p, nil
}

// collapse trims text and folds the template's indentation into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
