package ui

import (
	"fmt"
	"os"
	"time"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/models"

	"github.com/dustin/go-humanize"
)

// ShowPlaylist prints the playlist panel: header metadata, then the
// entries revealed one by one. The reveal delay is purely cosmetic and is
// skipped on plain themes.
func (c *Console) ShowPlaylist(p *models.Playlist) {
	t := c.theme

	fmt.Fprintf(c.w, "\n%s%s%s\n", t.Accent, p.Title, t.Reset)
	if p.Creator != "" {
		fmt.Fprintf(c.w, "%sby %s%s\n", t.Dim, p.Creator, t.Reset)
	}
	fmt.Fprintf(c.w, "%s%d videos, %s total%s\n\n", t.Dim, len(p.Videos), FormatDuration(int(p.TotalDuration().Seconds())), t.Reset)

	for _, v := range p.Videos {
		fmt.Fprintf(c.w, "  %s%3d.%s %s %s(%s)%s\n",
			t.Accent, v.Index, t.Reset, v.Title, t.Dim, FormatDuration(v.Duration), t.Reset)
		if !t.Plain {
			time.Sleep(consts.RevealDelay)
		}
	}
	fmt.Fprintln(c.w)
}

// ShowSummary prints the end-of-session counts.
func (c *Console) ShowSummary(stats *models.SessionStats, elapsed time.Duration) {
	t := c.theme

	fmt.Fprintf(c.w, "\n%sSession summary%s\n", t.Accent, t.Reset)
	fmt.Fprintf(c.w, "  %s%d succeeded%s", t.Success, stats.Succeeded, t.Reset)
	if stats.Failed > 0 {
		fmt.Fprintf(c.w, ", %s%d failed%s", t.Error, stats.Failed, t.Reset)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(c.w, ", %s%d skipped%s", t.Warn, stats.Skipped, t.Reset)
	}
	fmt.Fprintf(c.w, " %s(%d total in %s)%s\n", t.Dim, stats.Total(), elapsed.Round(time.Second), t.Reset)
}

// ShowHistory prints recent archive rows with file sizes where the files
// still exist on disk.
func (c *Console) ShowHistory(videos []*models.Video) {
	if len(videos) == 0 {
		c.Info("No downloads recorded yet")
		return
	}

	t := c.theme
	fmt.Fprintf(c.w, "\n%sRecent downloads%s\n", t.Accent, t.Reset)

	for _, v := range videos {
		size := ""
		if v.VPath != "" {
			if info, err := os.Stat(v.VPath); err == nil {
				size = ", " + humanize.Bytes(uint64(info.Size()))
			}
		}

		symbol, color := "✓", t.Success
		switch v.DownloadStatus.Status {
		case models.DLStatusFailed:
			symbol, color = "✗", t.Error
		case models.DLStatusSkipped, models.DLStatusPending, models.DLStatusDownloading:
			symbol, color = "-", t.Dim
		}

		fmt.Fprintf(c.w, "  %s%s%s %s %s(%s%s)%s\n",
			color, symbol, t.Reset, v.Title, t.Dim, humanize.Time(v.UpdatedAt), size, t.Reset)
	}
	fmt.Fprintln(c.w)
}

// FormatDuration renders whole seconds as M:SS or H:MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
