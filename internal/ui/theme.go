// Package ui renders playlistfy's interactive terminal surface.
package ui

import (
	"os"

	"playlistfy/internal/domain/consts"

	"github.com/mattn/go-isatty"
)

// Theme holds the escape codes for one color scheme. The plain theme
// carries empty codes so rendering degrades to unstyled text.
type Theme struct {
	Name    string
	Accent  string
	Success string
	Error   string
	Warn    string
	Dim     string
	Reset   string
	Plain   bool
}

var themes = map[string]Theme{
	"dark": {
		Name:    "dark",
		Accent:  consts.ColorCyan,
		Success: consts.ColorGreen,
		Error:   consts.ColorRed,
		Warn:    consts.ColorYellow,
		Dim:     consts.ColorWhite,
		Reset:   consts.ColorReset,
	},
	"light": {
		Name:    "light",
		Accent:  consts.ColorBlue,
		Success: consts.ColorGreen,
		Error:   consts.ColorRed,
		Warn:    consts.ColorPurple,
		Dim:     consts.ColorWhite,
		Reset:   consts.ColorReset,
	},
	"plain": {
		Name:  "plain",
		Plain: true,
	},
}

// ResolveTheme picks the theme by name, dropping to plain when stdout is
// not a terminal so piped output stays clean.
func ResolveTheme(name string) Theme {
	if !stdoutIsTerminal() {
		return themes["plain"]
	}
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["dark"]
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
