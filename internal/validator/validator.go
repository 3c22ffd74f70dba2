package validator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/deck"
)

const defaultConcurrency = 4

// Source provides the catalog and the undecoded deck documents.
type Source interface {
	Catalog(ctx context.Context) (deck.Catalog, error)
	Raw(ctx context.Context, entry deck.CatalogEntry) (any, error)
}

// DeckResult is the outcome of checking one catalog entry.
type DeckResult struct {
	Entry    deck.CatalogEntry
	Cards    int
	Err      error
	Warnings []string
}

type ValidationResults struct {
	Decks    []DeckResult
	OK       int
	Failed   int
	Errors   []string
	Warnings []string
}

type Validator struct {
	Source      Source
	Concurrency int
	Logger      *zap.Logger
}

func NewValidator(src Source, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{Source: src, Concurrency: defaultConcurrency, Logger: logger}
}

// Validate fetches every deck of the catalog concurrently and reports how many
// loaded. Only a catalog failure is returned as an error; deck failures are
// collected in the results.
func (v *Validator) Validate(ctx context.Context) (ValidationResults, error) {
	catalog, err := v.Source.Catalog(ctx)
	if err != nil {
		return ValidationResults{}, fmt.Errorf("catalog: %w", err)
	}

	results := ValidationResults{Decks: make([]DeckResult, len(catalog))}

	limit := v.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, entry := range catalog {
		g.Go(func() error {
			results.Decks[i] = v.checkDeck(gctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results.Decks {
		if r.Err != nil {
			results.Failed++
			results.Errors = append(results.Errors, fmt.Sprintf("deck %s: %v", r.Entry.ID, r.Err))
			continue
		}
		results.OK++
		for _, w := range r.Warnings {
			results.Warnings = append(results.Warnings, fmt.Sprintf("deck %s: %s", r.Entry.ID, w))
		}
	}

	v.Logger.Debug("catalog checked", zap.Int("ok", results.OK), zap.Int("failed", results.Failed))
	return results, nil
}

func (v *Validator) checkDeck(ctx context.Context, entry deck.CatalogEntry) DeckResult {
	result := DeckResult{Entry: entry}

	raw, err := v.Source.Raw(ctx, entry)
	if err != nil {
		result.Err = err
		return result
	}

	d := deck.Normalize(raw, entry.ID)
	result.Cards = len(d.Cards)
	result.Warnings = Inspect(raw, entry)
	return result
}

// Inspect lists the problems of a deck document that normalization papers over.
func Inspect(raw any, entry deck.CatalogEntry) []string {
	var warnings []string

	doc, ok := raw.(map[string]any)
	if !ok {
		return []string{"document is not an object"}
	}

	d := deck.Normalize(raw, entry.ID)
	if d.ID != entry.ID {
		warnings = append(warnings,
			fmt.Sprintf("document id %q differs from catalog id %q; saved positions use %q", d.ID, entry.ID, d.ID))
	}

	items, ok := doc["cards"].([]any)
	if !ok {
		return append(warnings, `field "cards" is missing or not a list`)
	}
	if len(items) == 0 {
		return append(warnings, "deck has no cards")
	}

	seen := make(map[string]int, len(items))
	for i, item := range items {
		c := d.Cards[i]
		fields, ok := item.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("card %d is not an object", i+1))
			continue
		}

		if prev, dup := seen[c.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("card %d reuses id %q of card %d", i+1, c.ID, prev))
		} else {
			seen[c.ID] = i + 1
		}

		if _, hasExplication := fields["explication"]; !hasExplication {
			if _, legacy := fields["definition"]; legacy {
				warnings = append(warnings, fmt.Sprintf(`card %s uses legacy field "definition"`, c.ID))
			}
		}
		if c.Notion == card.Placeholder {
			warnings = append(warnings, fmt.Sprintf("card %s has no notion", c.ID))
		}
		if c.Explication == card.Placeholder {
			warnings = append(warnings, fmt.Sprintf("card %s has no explication", c.ID))
		}
		if img, ok := fields["image"].(map[string]any); ok && c.Image != nil {
			if alt, _ := img["alt"].(string); strings.TrimSpace(alt) == "" {
				warnings = append(warnings, fmt.Sprintf("card %s image has no alt text", c.ID))
			}
		}
	}

	return warnings
}
