package downloads

import (
	"context"
	"time"

	"playlistfy/internal/models"
)

// Options holds per-invocation configuration derived from the resolved
// settings.
type Options struct {
	Quality      string
	MergeFormat  string
	CookieSource string
	RateLimit    string
}

// OptionsFromSettings maps the resolved settings onto invoker options.
func OptionsFromSettings(s *models.Settings) Options {
	return Options{
		Quality:      s.Quality,
		MergeFormat:  s.PreferFormat,
		CookieSource: s.CookieSource,
		RateLimit:    s.RateLimit,
	}
}

// Progress is one parsed progress sample streamed to the UI.
type Progress struct {
	VideoURL string
	Pct      float64
	Size     string
	Speed    string
	ETA      time.Duration
}

// Result is the final outcome of one download task. Exactly one Result is
// produced per task; failures are carried here, never raised past the
// invoker boundary.
type Result struct {
	Video      *models.Video
	Status     string
	Category   Category
	OutputPath string
	Attempts   int
	Err        error
}

// RunnerFunc performs one download attempt and returns the path of the
// produced file. The default runner spawns yt-dlp; tests substitute their
// own so the retry and pool layers can be exercised without subprocesses.
type RunnerFunc func(ctx context.Context, v *models.Video, opts Options) (string, error)

// ProberFunc checks which quality tier a URL actually offers. The default
// prober runs yt-dlp --list-formats; tests substitute their own.
type ProberFunc func(ctx context.Context, url, requested string, o Options) string

// VideoDownload encapsulates one video's download operation.
type VideoDownload struct {
	Video      *models.Video
	Tracker    *Tracker
	Policy     *Policy
	Opts       Options
	Runner     RunnerFunc
	Prober     ProberFunc
	OnProgress func(Progress)
}

// NewVideoDownload creates a download operation with specified options.
func NewVideoDownload(video *models.Video, tracker *Tracker, policy *Policy, opts Options) *VideoDownload {
	return &VideoDownload{
		Video:   video,
		Tracker: tracker,
		Policy:  policy,
		Opts:    opts,
	}
}
