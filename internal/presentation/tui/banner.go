package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"                 _                                      _   ",
	" _ __  _ __ ___ | |_ ___   ___ ___  _ __ ___  _ __   __ _| |_ ",
	"| '_ \\| '__/ _ \\| __/ _ \\ / __/ _ \\| '_ ` _ \\| '_ \\ / _` | __|",
	"| |_) | | | (_) | || (_) | (_| (_) | | | | | | |_) | (_| | |_ ",
	"| .__/|_|  \\___/ \\__\\___/ \\___\\___/|_| |_| |_| .__/ \\__,_|\\__|",
	"|_|                                          |_|              ",
}

// Teal to indigo, one colour per line.
var bannerColors = []string{"#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8", "#a78bfa"}

// PrintBanner writes the ASCII art banner and the version line to w.
// Colours are dropped automatically when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, out.String("  Protocol Compatibility Calculation").Bold())
	if version != "" {
		fmt.Fprintf(w, "  Version: %s\n", version)
	}
	fmt.Fprintln(w)
}
