package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/validator"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load every deck of the catalog and report problems",
	Long: `Check fetches the catalog and all the decks it lists in parallel, then reports
how many decks loaded, which ones failed and the content issues that the viewer
silently papers over (legacy "definition" fields, cards without notion,
duplicate card ids, images without alt text).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		v := validator.NewValidator(a.loader, a.logger.Named("check"))
		if n, _ := cmd.Flags().GetInt("jobs"); n > 0 {
			v.Concurrency = n
		}

		results, err := v.Validate(cmd.Context())
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Check Results:")
		fmt.Fprintln(out, "--------------")
		for _, d := range results.Decks {
			if d.Err != nil {
				fmt.Fprintf(out, "❌ %s (%s)\n", d.Entry.ID, d.Entry.File)
				continue
			}
			fmt.Fprintf(out, "✅ %s (%s): %d cards\n", d.Entry.ID, d.Entry.File, d.Cards)
		}
		fmt.Fprintf(out, "\n%d loaded, %d failed\n", results.OK, results.Failed)

		if len(results.Errors) > 0 {
			fmt.Fprintln(out, "\nErrors:")
			for i, e := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, e)
			}
		}
		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, w := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, w)
			}
		}

		if results.Failed > 0 {
			return fmt.Errorf("check failed: %d of %d decks could not be loaded", results.Failed, len(results.Decks))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntP("jobs", "j", 4, "Number of decks fetched in parallel")
}
