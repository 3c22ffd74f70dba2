package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/tui"
	"github.com/arcanaland/flashdeck/internal/viewer"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Browse cards interactively",
	Long: `Study opens the deck catalog and shows one card at a time.

Keys:
  n, space, enter   next card (wraps around)
  r                 random card
  1-9               switch to the numbered deck
  d                 switch to the following deck
  q, ctrl-c         quit

The position in each deck is saved on every move and restored next time.
When stdin is not a terminal the keys are read from it as they come, so
sessions can be scripted: printf 'nnr' | flashdeck study`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		deckFlag, _ := cmd.Flags().GetString("deck")
		artFlag, _ := cmd.Flags().GetBool("art")

		fd := int(os.Stdin.Fd())
		interactive := term.IsTerminal(fd) && term.IsTerminal(int(os.Stdout.Fd()))
		if interactive {
			oldState, err := term.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer term.Restore(fd, oldState)
		}

		opts := tui.Options{
			Out:    cmd.OutOrStdout(),
			Logger: a.logger.Named("tui"),
			Raw:    interactive,
			Clear:  interactive,
			Width:  terminalWidth,
		}
		if artFlag {
			opts.Artist = newArtLoader(a)
		}
		view := tui.NewView(opts)

		defaultDeck := a.cfg.DefaultDeck
		if deckFlag != "" {
			defaultDeck = deckFlag
		}
		ctl := viewer.New(viewer.Options{
			Source:      a.loader,
			Store:       a.store,
			View:        view,
			Logger:      a.logger.Named("viewer"),
			DefaultDeck: defaultDeck,
		})

		if err := ctl.Start(ctx); err != nil {
			_ = view.Draw(ctx)
			return err
		}

		return tui.NewSession(ctl, view, a.logger.Named("session")).Run(ctx, os.Stdin)
	},
}

func init() {
	RootCmd.AddCommand(studyCmd)

	studyCmd.Flags().StringP("deck", "d", "", "Deck to open first (defaults to default_deck, then the first deck)")
	studyCmd.Flags().Bool("art", false, "Draw card images as ANSI art")
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func newArtLoader(a *app) *tui.ArtLoader {
	return &tui.ArtLoader{
		Fetcher:  a.client,
		Root:     a.root,
		CacheDir: filepath.Join(config.GetCacheDir(), "ansi_cache"),
		Width:    32,
		Height:   16,
	}
}
