package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/render"
	"github.com/arcanaland/flashdeck/internal/tui"
	"github.com/arcanaland/flashdeck/internal/viewer"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current card of a deck",
	Long: `Show loads a deck and prints its current card: the saved position, or the
first card when nothing was saved yet.

By default the card is printed as the HTML fragment the web viewer inserts in
its card region. --page prints a complete HTML document with the deck selector
and status line, --text prints the card for the terminal.

--next, --random and --index move before printing and save the new position,
exactly like the matching keys of the study command.

Examples:
  flashdeck show
  flashdeck show --deck istqb-fl --next
  flashdeck show --deck istqb-fl --index 12 --page > card.html
  flashdeck show --text --art`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		flags := cmd.Flags()
		deckFlag, _ := flags.GetString("deck")
		index, _ := flags.GetInt("index")
		next, _ := flags.GetBool("next")
		random, _ := flags.GetBool("random")
		page, _ := flags.GetBool("page")
		text, _ := flags.GetBool("text")
		art, _ := flags.GetBool("art")

		var (
			htmlView *render.Page
			textView *tui.View
			view     viewer.View
		)
		if text {
			opts := tui.Options{Out: cmd.OutOrStdout(), Logger: a.logger.Named("tui"), Width: terminalWidth}
			if art {
				opts.Artist = newArtLoader(a)
			}
			textView = tui.NewView(opts)
			view = textView
		} else {
			htmlView = &render.Page{}
			view = htmlView
		}

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

		startErr := ctl.Start(ctx)
		if startErr == nil {
			switch {
			case flags.Changed("index"):
				ctl.Goto(index - 1)
			case next:
				ctl.Next()
			case random:
				ctl.Random()
			}
		}

		out := cmd.OutOrStdout()
		switch {
		case textView != nil:
			if err := textView.Draw(ctx); err != nil {
				return err
			}
		case page:
			fmt.Fprint(out, htmlView.HTML())
		default:
			fmt.Fprintln(out, htmlView.Fragment)
			if startErr == nil {
				cmd.PrintErrln(htmlView.Status)
			}
		}
		return startErr
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Deck to show (defaults to default_deck, then the first deck)")
	showCmd.Flags().IntP("index", "i", 0, "Jump to this card (1-based) before printing")
	showCmd.Flags().BoolP("next", "n", false, "Advance to the next card before printing")
	showCmd.Flags().BoolP("random", "r", false, "Jump to a random card before printing")
	showCmd.Flags().Bool("page", false, "Print a complete HTML page")
	showCmd.Flags().Bool("text", false, "Print the card as terminal text")
	showCmd.Flags().Bool("art", false, "With --text, draw the card image as ANSI art")
	showCmd.MarkFlagsMutuallyExclusive("index", "next", "random")
	showCmd.MarkFlagsMutuallyExclusive("page", "text")
}
