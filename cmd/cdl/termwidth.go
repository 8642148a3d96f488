package main

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// terminalWidth reports the detected width of stdout, or fallback if stdout
// isn't a terminal (piped output, redirected to a file, CI logs).
func terminalWidth(fallback int) int {
	f := os.Stdout
	if !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// wrapColumns lays out names in as many equal-width columns as fit within
// width, ls-style, reading down each column before moving to the next.
// Used only for the plain-text rendering of `cdl list` output — json/yaml
// output is unaffected.
func wrapColumns(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}
	longest := 0
	for _, n := range names {
		if len(n) > longest {
			longest = len(n)
		}
	}
	colWidth := longest + 2
	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}
	rows := (len(names) + cols - 1) / cols

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(names) {
				continue
			}
			if c == cols-1 {
				b.WriteString(names[i])
			} else {
				b.WriteString(names[i])
				b.WriteString(strings.Repeat(" ", colWidth-len(names[i])))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
