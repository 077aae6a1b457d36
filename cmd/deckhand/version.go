package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arlevan/deckhand"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of deckhand",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("deckhand version %s\n", deckhand.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
