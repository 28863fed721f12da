package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII banner with the running version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"    _       _                        _        ", "#818cf8"},
		{"   /_\\ _  _| |_ ___ _ __  __ _ _ __ | |_ __ _ ", "#a78bfa"},
		{"  / _ \\ || |  _/ _ \\ '  \\/ _` | '_ \\|  _/ _` |", "#c084fc"},
		{" /_/ \\_\\_,_|\\__\\___/_|_|_\\__,_| .__/ \\__\\__,_|", "#e879f9"},
		{"                              |_|             ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}

// Highlight colors ids that are highlighted in the current step.
func Highlight(id string) string {
	p := termenv.ColorProfile()
	return termenv.String(id).Foreground(p.Color("#fbc02d")).Bold().String()
}
