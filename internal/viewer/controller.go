package viewer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/arcanaland/flashdeck/internal/deck"
	"github.com/arcanaland/flashdeck/internal/fetch"
	"github.com/arcanaland/flashdeck/internal/render"
	"github.com/arcanaland/flashdeck/internal/store"
)

// View is the UI surface driven by the Controller: a deck selector, the
// next/random controls, a status line and the card region.
type View interface {
	SetStatus(msg string, isError bool)
	SetControlsEnabled(enabled bool)
	SetDeckOptions(entries []deck.CatalogEntry, selectedID string)
	ShowCards(fragment string)
}

// Source provides the catalog and deck documents.
type Source interface {
	Catalog(ctx context.Context) (deck.Catalog, error)
	Load(ctx context.Context, entry deck.CatalogEntry) (deck.Deck, error)
}

// Options configures a Controller.
type Options struct {
	Source Source
	Store  store.KV
	View   View
	Logger *zap.Logger

	// DefaultDeck is selected at startup when the catalog lists it.
	DefaultDeck string

	// Rand defaults to math/rand/v2.IntN.
	Rand Rand
}

// Controller runs a viewing session. It is not safe for concurrent use: every
// call is expected to come from a single UI event loop.
type Controller struct {
	source      Source
	store       store.KV
	view        View
	logger      *zap.Logger
	rand        Rand
	defaultDeck string

	state State
}

// New builds a Controller in the Loading phase.
func New(opts Options) *Controller {
	c := &Controller{
		source:      opts.Source,
		store:       opts.Store,
		view:        opts.View,
		logger:      opts.Logger,
		rand:        opts.Rand,
		defaultDeck: opts.DefaultDeck,
		state:       State{Phase: Loading},
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.rand == nil {
		c.rand = rand.IntN
	}
	if c.store == nil {
		c.store = store.NewMemory()
	}
	return c
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	return c.state
}

// Start loads the catalog, fills the deck selector and shows the initial deck.
// On failure the card region shows a diagnostic and the controls stay disabled.
func (c *Controller) Start(ctx context.Context) error {
	c.state = State{Phase: Loading}
	c.view.SetControlsEnabled(false)
	c.view.SetStatus("Chargement…", false)

	err := c.start(ctx)
	if err != nil {
		c.logger.Error("startup failed", zap.Error(err))
		c.state.Phase = Failed
		c.state.Err = err
		c.view.ShowCards(render.Failure())
		c.view.SetStatus(StatusText(err), true)
		c.view.SetControlsEnabled(false)
	}
	return err
}

func (c *Controller) start(ctx context.Context) error {
	decks, err := c.source.Catalog(ctx)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		return deck.ErrCatalogEmpty
	}
	c.state.Decks = decks

	selected := decks[0].ID
	if c.defaultDeck != "" && decks.Contains(c.defaultDeck) {
		selected = c.defaultDeck
	}
	c.view.SetDeckOptions(decks, selected)

	return c.load(ctx, selected)
}

// SwitchDeck loads another deck. On failure the previous deck stays on screen,
// the status shows the error and the controls are enabled again for a retry.
func (c *Controller) SwitchDeck(ctx context.Context, id string) error {
	if len(c.state.Decks) == 0 {
		return errors.New("viewer: catalog not loaded")
	}

	previous := c.state
	c.state.Phase = Loading
	c.view.SetControlsEnabled(false)
	c.view.SetStatus("Changement de deck…", false)

	if err := c.load(ctx, id); err != nil {
		c.logger.Warn("deck switch failed", zap.String("deck", id), zap.Error(err))
		c.state = previous
		c.state.Err = err
		c.view.SetStatus(StatusText(err), true)
		c.view.SetControlsEnabled(true)
		return err
	}
	return nil
}

func (c *Controller) load(ctx context.Context, id string) error {
	entry, ok := c.state.Decks.Find(id)
	if !ok {
		return deck.ErrCatalogEmpty
	}

	d, err := c.source.Load(ctx, entry)
	if err != nil {
		return err
	}

	c.state.Deck = &d
	c.state.Index = Clamp(&d, store.LoadIndex(c.store, d.ID))
	c.state.Phase = Ready
	c.state.Err = nil
	c.logger.Debug("deck loaded",
		zap.String("deck", d.ID),
		zap.Int("cards", len(d.Cards)),
		zap.Int("index", c.state.Index))

	c.render()
	return nil
}

// Next shows the following card, wrapping around at the end of the deck.
func (c *Controller) Next() {
	if c.state.Phase != Ready {
		return
	}
	next, ok := Advance(c.state)
	if !ok {
		return
	}
	c.state = next
	c.save()
	c.render()
}

// Random shows a random card different from the current one. A deck with a
// single card is only re-rendered.
func (c *Controller) Random() {
	if c.state.Phase != Ready || c.state.Deck.Len() == 0 {
		return
	}
	next, moved := Pick(c.state, c.rand)
	c.state = next
	if moved {
		c.save()
	}
	c.render()
}

// Goto shows the card at index, clamped to the deck, and remembers it.
func (c *Controller) Goto(index int) {
	if c.state.Phase != Ready || c.state.Deck.Len() == 0 {
		return
	}
	c.state.Index = Clamp(c.state.Deck, index)
	c.save()
	c.render()
}

func (c *Controller) save() {
	if err := store.SaveIndex(c.store, c.state.Deck.ID, c.state.Index); err != nil {
		c.logger.Debug("saving index failed", zap.String("deck", c.state.Deck.ID), zap.Error(err))
	}
}

func (c *Controller) render() {
	d := c.state.Deck
	total := d.Len()
	if total == 0 {
		c.view.ShowCards(render.Empty())
		c.view.SetStatus("Deck chargé, mais vide.", true)
		c.view.SetControlsEnabled(false)
		return
	}

	i := Clamp(d, c.state.Index)
	pos := render.Position(i, total)
	c.view.ShowCards(render.Card(d, d.Cards[i], pos))
	c.view.SetStatus(fmt.Sprintf("Deck: %s — carte %s", d.Title, pos), false)
	c.view.SetControlsEnabled(true)
}

// StatusText turns an error into the message shown on the status line.
func StatusText(err error) string {
	var httpErr *fetch.HTTPError
	var transportErr *fetch.TransportError
	var missing *deck.MissingFileError
	switch {
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Erreur: HTTP %d sur %s", httpErr.Status, httpErr.URL)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("Erreur: réseau indisponible (%s)", transportErr.URL)
	case errors.Is(err, deck.ErrCatalogEmpty):
		return `Erreur: Deck catalog vide (champ "decks").`
	case errors.As(err, &missing):
		return fmt.Sprintf("Erreur: le deck %s n'a pas de fichier.", missing.DeckID)
	default:
		return "Erreur: " + err.Error()
	}
}
