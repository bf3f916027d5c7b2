package downloads

import (
	"path/filepath"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"

	"github.com/alessio/shellescape"
)

// formatSelectors maps quality tiers to yt-dlp format strings with
// progressive fallback baked in, so a missing tier degrades instead of
// failing the download.
var formatSelectors = map[string]string{
	"best":  "bestvideo+bestaudio/best",
	"1080p": "bestvideo[height<=1080]+bestaudio/best[height<=1080]/bestvideo[height<=720]+bestaudio/best[height<=720]",
	"720p":  "bestvideo[height<=720]+bestaudio/best[height<=720]/bestvideo[height<=480]+bestaudio/best[height<=480]",
	"480p":  "bestvideo[height<=480]+bestaudio/best[height<=480]/worst",
	"worst": "worstvideo+worstaudio/worst",
}

// buildVideoArgs builds the yt-dlp argument list to download one video.
func buildVideoArgs(v *models.Video, o Options) []string {
	selector, ok := formatSelectors[o.Quality]
	if !ok {
		selector = formatSelectors["best"]
	}

	merge := o.MergeFormat
	if merge == "" {
		merge = "mp4"
	}

	// A pre-assigned base name keeps duplicate titles from clobbering
	// each other; without one, yt-dlp names the file from the title.
	out := "%(title)s.%(ext)s"
	if v.OutBase != "" {
		out = v.OutBase + ".%(ext)s"
	}

	args := make([]string, 0, 24)
	args = append(args,
		"-f", selector,
		"--merge-output-format", merge,
		"--restrict-filenames",
		"-o", filepath.Join(v.DirOut, out),
		"--newline",
		"--no-warnings",
		"--no-playlist",
		"--print", "after_move:%(filepath)s",
	)

	if o.CookieSource != "" {
		args = append(args, "--cookies-from-browser", o.CookieSource)
	} else {
		// Without cookies, present a browser-ish client to reduce the
		// chance of automated-access blocking.
		args = append(args,
			"--user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			"--extractor-args", "youtube:player_client=android,web",
		)
	}

	if o.RateLimit != "" {
		args = append(args, "--limit-rate", o.RateLimit)
	}

	args = append(args, "--sleep-requests", "1", v.URL)

	logging.D(1, "Built video download command for URL %q:\n%s", v.URL,
		shellescape.QuoteCommand(append([]string{consts.YtDlpBin}, args...)))

	return args
}
