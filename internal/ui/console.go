package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-colorable"
)

// Console writes themed status lines. All rendering funnels through here
// so tests can capture output and themes stay consistent.
type Console struct {
	w     io.Writer
	theme Theme
}

// NewConsole builds a console for the named theme writing to stdout.
func NewConsole(themeName string) *Console {
	return &Console{
		w:     colorable.NewColorableStdout(),
		theme: ResolveTheme(themeName),
	}
}

// NewConsoleWriter builds a console with an explicit writer and theme,
// mainly for tests.
func NewConsoleWriter(w io.Writer, theme Theme) *Console {
	return &Console{w: w, theme: theme}
}

func (c *Console) Theme() Theme { return c.theme }

// Success prints a checkmarked line.
func (c *Console) Success(format string, args ...interface{}) {
	c.line(c.theme.Success, "✓", format, args)
}

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...interface{}) {
	c.line(c.theme.Warn, "!", format, args)
}

// Error prints a failure line.
func (c *Console) Error(format string, args ...interface{}) {
	c.line(c.theme.Error, "✗", format, args)
}

// Info prints a neutral line.
func (c *Console) Info(format string, args ...interface{}) {
	c.line(c.theme.Accent, "•", format, args)
}

// Plain prints an unstyled line.
func (c *Console) Plain(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

// Suggestions prints recovery hints as an indented list.
func (c *Console) Suggestions(hints []string) {
	for _, hint := range hints {
		fmt.Fprintf(c.w, "  %s->%s %s\n", c.theme.Dim, c.theme.Reset, hint)
	}
}

func (c *Console) line(color, symbol, format string, args []interface{}) {
	msg := format
	if len(args) != 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fmt.Fprintf(c.w, "%s%s%s %s\n", color, symbol, c.theme.Reset, msg)
}
