package tui

import (
	"bufio"
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/arcanaland/flashdeck/internal/viewer"
)

// Controller is the part of viewer.Controller driven by key presses.
type Controller interface {
	State() viewer.State
	Next()
	Random()
	SwitchDeck(ctx context.Context, id string) error
}

const (
	keyCtrlC = 3
	keyCtrlD = 4
)

// Session maps key presses to controller actions and redraws after each one.
type Session struct {
	ctl    Controller
	view   *View
	logger *zap.Logger
}

// NewSession binds a controller to the view it renders into.
func NewSession(ctl Controller, view *View, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{ctl: ctl, view: view, logger: logger}
}

// Run reads keys from in until a quit key, end of input or ctx is done. A read
// blocked on in does not delay cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if err := s.view.Draw(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	keys, readErr := readKeys(in, done)

	for {
		var key byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case key = <-keys:
		}

		quit, handled := s.Handle(ctx, key)
		if quit {
			return nil
		}
		if !handled {
			continue
		}
		if err := s.view.Draw(ctx); err != nil {
			return err
		}
	}
}

// readKeys forwards the bytes of in one at a time until a read fails or done
// is closed. The read error, io.EOF included, is sent on the second channel.
func readKeys(in io.Reader, done <-chan struct{}) (<-chan byte, <-chan error) {
	keys := make(chan byte)
	errc := make(chan error, 1)
	go func() {
		r := bufio.NewReader(in)
		for {
			key, err := r.ReadByte()
			if err != nil {
				errc <- err
				return
			}
			select {
			case keys <- key:
			case <-done:
				return
			}
		}
	}()
	return keys, errc
}

// Handle applies a single key. It reports whether the session should end and
// whether the key changed anything worth redrawing.
func (s *Session) Handle(ctx context.Context, key byte) (quit, handled bool) {
	switch key {
	case 'q', 'Q', keyCtrlC, keyCtrlD:
		return true, false
	case 'n', 'N', ' ', '\r', '\n':
		if !s.view.Enabled {
			return false, false
		}
		s.ctl.Next()
		return false, true
	case 'r', 'R':
		if !s.view.Enabled {
			return false, false
		}
		s.ctl.Random()
		return false, true
	case 'd', 'D':
		return false, s.cycleDeck(ctx)
	}

	if key >= '1' && key <= '9' {
		return false, s.selectDeck(ctx, int(key-'1'))
	}
	return false, false
}

func (s *Session) cycleDeck(ctx context.Context) bool {
	st := s.ctl.State()
	if len(st.Decks) == 0 {
		return false
	}
	next := 0
	for i, e := range st.Decks {
		if e.ID == s.view.Selected {
			next = (i + 1) % len(st.Decks)
			break
		}
	}
	return s.selectDeck(ctx, next)
}

func (s *Session) selectDeck(ctx context.Context, pos int) bool {
	st := s.ctl.State()
	if pos < 0 || pos >= len(st.Decks) {
		return false
	}
	id := st.Decks[pos].ID

	// The previous selection stays highlighted when the switch fails.
	if err := s.ctl.SwitchDeck(ctx, id); err != nil {
		s.logger.Debug("deck switch failed", zap.String("deck", id), zap.Error(err))
		return true
	}
	s.view.Select(id)
	return true
}
