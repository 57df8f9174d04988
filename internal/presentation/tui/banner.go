package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  ___                          ___       _ _ `, "#34d399"},
	{` | __|___ __ _ _ _____ __ __  | _ \__ _(_) |`, "#2dd4bf"},
	{` | _|(_-</ _| '_/ _ \ V  V /  |   / _' | | |`, "#22d3ee"},
	{` |___/__/\__|_| \___/\_/\_/   |_|_\__,_|_|_|`, "#38bdf8"},
}

// PrintBanner writes the ASCII banner using the color profile of w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors a plan verdict for terminal output.
func Status(w io.Writer, valid bool) string {
	out := termenv.NewOutput(w)
	if valid {
		return out.String("VALID").Foreground(out.Color("#22c55e")).Bold().String()
	}
	return out.String("NEEDS ACTION").Foreground(out.Color("#ef4444")).Bold().String()
}
