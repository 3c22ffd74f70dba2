package cmd

import (
	"github.com/spf13/cobra"
)

var (
	siteFlag      string
	verboseFlag   bool
	ephemeralFlag bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "flashdeck",
	Short: "Study the flashcard decks of a revision site",
	Long: `Flashdeck reads the deck catalog of a static revision site (data/decks/index.json),
shows one card at a time and remembers, per deck, the last card you looked at.

The site is an http(s) URL or a local directory, set with --site or with
site_url in the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&siteFlag, "site", "s", "", "Site root URL or directory (overrides site_url)")
	RootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")
	RootCmd.PersistentFlags().BoolVar(&ephemeralFlag, "ephemeral", false, "Keep card positions in memory only")
}
