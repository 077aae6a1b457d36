package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arlevan/deckhand"
	"github.com/arlevan/deckhand/internal/presentation/tui"
)

// inspectCmd prints a slide-by-slide summary of a deck.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pptx>",
	Short: "Show a summary of a presentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := deckhand.Open(args[0])
		if err != nil {
			return err
		}

		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner()
		}

		render := tui.NewRenderer()
		out, err := render(tui.DeckSummary(session.Info()))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("banner", false, "Print the deckhand banner first")
}
