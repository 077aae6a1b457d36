// Package tui renders deck summaries for the terminal.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/arlevan/deckhand"
)

// NewRenderer returns a function that renders markdown using glamour.
// Word wrap follows the terminal width when stdout is a terminal.
func NewRenderer() func(string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
			opts = append(opts, glamour.WithWordWrap(width))
		}
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// DeckSummary formats a presentation summary as markdown, ready for the
// renderer.
func DeckSummary(info deckhand.Info) string {
	var b strings.Builder

	title := info.Path
	if title == "" {
		title = "(unsaved presentation)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d slide(s)\n\n", info.SlideCount)

	if len(info.Slides) > 0 {
		b.WriteString("| Slide | Shapes | Transition |\n")
		b.WriteString("|---|---|---|\n")
		for _, sl := range info.Slides {
			tr := sl.Transition
			if tr == "" {
				tr = "-"
			}
			fmt.Fprintf(&b, "| %d | %d | %s |\n", sl.Index, sl.ShapeCount, tr)
		}
	}
	return b.String()
}
