package ui

import (
	"fmt"
	"strings"
	"time"

	"playlistfy/internal/domain/consts"
)

const barWidth = 30

// ProgressBar renders one download's progress in place on the current
// terminal line.
type ProgressBar struct {
	console *Console
	label   string
}

// NewProgressBar returns a bar labeled with the video title.
func (c *Console) NewProgressBar(label string) *ProgressBar {
	if len(label) > 40 {
		label = label[:37] + "..."
	}
	return &ProgressBar{console: c, label: label}
}

// Render redraws the bar at the given percentage with optional transfer
// stats. On plain themes it emits a simple percentage line instead of
// redrawing in place.
func (b *ProgressBar) Render(pct float64, size, speed string, eta time.Duration) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	t := b.console.theme
	if t.Plain {
		fmt.Fprintf(b.console.w, "%s: %.1f%%\n", b.label, pct)
		return
	}

	filled := int(pct / 100 * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	stats := ""
	if size != "" {
		stats += " " + size
	}
	if speed != "" {
		stats += " at " + speed
	}
	if eta > 0 {
		stats += " ETA " + eta.Round(time.Second).String()
	}

	fmt.Fprintf(b.console.w, "%s%s %s[%s]%s %5.1f%%%s%s%s",
		consts.ClearLine, b.label, t.Accent, bar, t.Reset, pct, t.Dim, stats, t.Reset)
}

// Done finishes the in-place line so following output starts clean.
func (b *ProgressBar) Done() {
	if b.console.theme.Plain {
		return
	}
	fmt.Fprint(b.console.w, consts.ClearLine)
}
