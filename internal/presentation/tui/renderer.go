package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// defaultWidth is used when the terminal size cannot be read.
const defaultWidth = 100

// NewRenderer returns a function that renders markdown using glamour.
// The word wrap follows the terminal width when stdout is a terminal.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(TerminalWidth()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the stdout width, or defaultWidth when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Write renders markdown to w. Plain markdown is written when w is not a terminal
// unless pretty is set.
func Write(w io.Writer, markdown string, pretty bool) error {
	if !pretty && !IsTerminal(w) {
		_, err := io.WriteString(w, markdown)
		return err
	}
	render, err := NewRenderer()
	if err != nil {
		return err
	}
	out, err := render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
