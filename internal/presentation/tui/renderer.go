// Package tui provides terminal rendering for the interactive intake runner.
package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// It auto-detects the terminal background style.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Interactive reports whether stdout is a TTY; headless hosts (pipes, CI)
// should skip ANSI rendering.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Highlight wraps text in the terminal's bold style when supported.
func Highlight(text string) string {
	p := termenv.ColorProfile()
	if p == termenv.Ascii {
		return text
	}
	return termenv.String(text).Bold().String()
}
