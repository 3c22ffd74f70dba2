package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/store"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect the deck catalog and saved positions",
	Long:  `Commands for listing the decks of the site and managing per-deck state.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the decks of the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		catalog, err := a.loader.Catalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}

		defaultDeck := a.cfg.DefaultDeck
		if !catalog.Contains(defaultDeck) {
			defaultDeck = catalog[0].ID
		}

		out := cmd.OutOrStdout()
		for _, entry := range catalog {
			marker := " "
			suffix := ""
			if entry.ID == defaultDeck {
				marker = "*"
				suffix = " [DEFAULT]"
			}
			position := ""
			if _, err := a.store.Get(store.IndexKey(entry.ID)); err == nil {
				position = fmt.Sprintf(" @ card %d", store.LoadIndex(a.store, entry.ID)+1)
			}
			fmt.Fprintf(out, "%s %s (%s) %s%s%s\n", marker, entry.ID, entry.Label(), entry.File, position, suffix)
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_id]",
	Short: "Set the deck opened first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID := args[0]

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		catalog, err := a.loader.Catalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}
		if !catalog.Contains(deckID) {
			return fmt.Errorf("deck not found in catalog: %s", deckID)
		}

		a.cfg.DefaultDeck = deckID
		if err := a.cfg.Save(); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckID)
		return nil
	},
}

// deckResetCmd represents the deck reset command
var deckResetCmd = &cobra.Command{
	Use:   "reset [deck_id]",
	Short: "Forget the saved position of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := store.ResetIndex(a.store, args[0]); err != nil {
			return fmt.Errorf("error resetting position: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Position of %s reset to the first card\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckResetCmd)
}
