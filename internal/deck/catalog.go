package deck

import (
	"errors"
	"fmt"
)

// ErrCatalogEmpty is returned when the catalog document lists no usable deck.
var ErrCatalogEmpty = errors.New(`deck catalog is empty (field "decks")`)

// MissingFileError reports a catalog entry without a data file reference.
type MissingFileError struct {
	DeckID string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("deck %q has no data file", e.DeckID)
}

// CatalogEntry identifies a deck and the file holding its cards.
type CatalogEntry struct {
	ID    string
	Title string
	File  string
}

// Label returns the title shown in deck selectors.
func (e CatalogEntry) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

// Catalog is the ordered list of decks offered by a site.
type Catalog []CatalogEntry

// ParseCatalog reads the decks listed in a decoded catalog document. Entries
// without an id or a file are dropped; duplicates are kept.
func ParseCatalog(raw any) (Catalog, error) {
	doc, _ := raw.(map[string]any)
	items, _ := doc["decks"].([]any)
	if len(items) == 0 {
		return nil, ErrCatalogEmpty
	}

	entries := make(Catalog, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		entry := CatalogEntry{}
		entry.ID, _ = text(fields["id"])
		entry.Title, _ = text(fields["title"])
		entry.File, _ = text(fields["file"])

		if entry.ID == "" || entry.File == "" {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrCatalogEmpty
	}
	return entries, nil
}

// Find returns the entry with the given id, falling back to the first entry
// when no entry matches. It reports false only for an empty catalog.
func (c Catalog) Find(id string) (CatalogEntry, bool) {
	for _, entry := range c {
		if entry.ID == id {
			return entry, true
		}
	}
	if len(c) == 0 {
		return CatalogEntry{}, false
	}
	return c[0], true
}

// Contains reports whether an entry with the given id exists.
func (c Catalog) Contains(id string) bool {
	for _, entry := range c {
		if entry.ID == id {
			return true
		}
	}
	return false
}
