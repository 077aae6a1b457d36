package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deckhand",
	Short: "Deckhand is a PowerPoint deck editor and transition compiler",
	Long: `Deckhand creates and edits .pptx presentations: slides, text,
shapes, images, tables, and slide transition effects. It runs as a
Model Context Protocol (MCP) server so AI agents can drive it as a set
of tools, and ships a small CLI for inspecting decks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
