package deck

import (
	"context"
	"fmt"
	"net/url"

	"github.com/arcanaland/flashdeck/internal/fetch"
)

// Loader reads the catalog and deck documents of a site. Deck files are
// resolved relative to the directory holding the catalog.
type Loader struct {
	Fetcher    fetch.Fetcher
	CatalogURL *url.URL
}

// NewLoader returns a Loader reading the catalog at catalogURL.
func NewLoader(f fetch.Fetcher, catalogURL *url.URL) *Loader {
	return &Loader{Fetcher: f, CatalogURL: catalogURL}
}

// Catalog fetches and parses the deck catalog.
func (l *Loader) Catalog(ctx context.Context) (Catalog, error) {
	raw, err := l.Fetcher.FetchJSON(ctx, l.CatalogURL)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(raw)
}

// DeckURL resolves the data file of entry.
func (l *Loader) DeckURL(entry CatalogEntry) (*url.URL, error) {
	if entry.File == "" {
		return nil, &MissingFileError{DeckID: entry.ID}
	}
	ref, err := url.Parse(entry.File)
	if err != nil {
		return nil, fmt.Errorf("deck %q: invalid file reference %q: %w", entry.ID, entry.File, err)
	}
	return l.CatalogURL.ResolveReference(ref), nil
}

// Load fetches and normalizes the deck described by entry.
func (l *Loader) Load(ctx context.Context, entry CatalogEntry) (Deck, error) {
	raw, err := l.Raw(ctx, entry)
	if err != nil {
		return Deck{}, err
	}
	return Normalize(raw, entry.ID), nil
}

// Raw fetches the undecoded deck document described by entry.
func (l *Loader) Raw(ctx context.Context, entry CatalogEntry) (any, error) {
	u, err := l.DeckURL(entry)
	if err != nil {
		return nil, err
	}
	return l.Fetcher.FetchJSON(ctx, u)
}
