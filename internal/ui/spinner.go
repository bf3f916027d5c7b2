package ui

import (
	"fmt"
	"time"

	"playlistfy/internal/domain/consts"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spin starts an animated spinner with a message and returns a stop
// function. On a plain theme the message prints once with no animation.
func (c *Console) Spin(msg string) (stop func()) {
	if c.theme.Plain {
		c.Plain("%s...", msg)
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(consts.Interval100ms)
		defer ticker.Stop()

		var i int
		for {
			select {
			case <-done:
				fmt.Fprint(c.w, consts.ClearLine)
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(c.w, "%s%s%s%s %s", consts.ClearLine, c.theme.Accent, frame, c.theme.Reset, msg)
				i++
			}
		}
	}()

	var once bool
	return func() {
		if once {
			return
		}
		once = true
		close(done)
		<-finished
	}
}
