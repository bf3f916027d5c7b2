package app

import (
	"context"
	"errors"
	"time"

	"playlistfy/internal/downloads"
	"playlistfy/internal/fsutil"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"

	"golang.org/x/time/rate"
)

// launchInterval paces yt-dlp spawns inside the worker pool.
const launchInterval = 500 * time.Millisecond

// videoFlow downloads one video into the output directory.
func (s *Session) videoFlow(ctx context.Context, url string) error {
	run, err := s.askOverrides()
	if err != nil {
		return err
	}

	v := &models.Video{
		URL:    url,
		Title:  url,
		DirOut: run.OutputDir,
	}

	results := s.downloadAll(ctx, []*models.Video{v}, run)
	s.reportResults(results)
	return nil
}

// playlistFlow probes the playlist, shows the panel and downloads the
// selected entries. When interactive is false the whole playlist is taken.
func (s *Session) playlistFlow(ctx context.Context, url string, interactive bool) error {
	run, err := s.askOverrides()
	if err != nil {
		return err
	}

	stop := s.Console.Spin("Fetching playlist")
	playlist, err := downloads.ProbePlaylist(ctx, url, downloads.OptionsFromSettings(run))
	stop()
	if err != nil {
		s.reportDownloadError(err)
		return nil
	}

	s.Console.ShowPlaylist(playlist)

	videos := playlist.Videos
	if interactive {
		expr, err := s.Prompter.Line(`Select videos ("all", "3-7", "1,4,9", or "none" to go back)`, "all")
		if err != nil {
			return err
		}
		if expr == "none" {
			return nil
		}

		indices, err := parseSelection(expr, len(playlist.Videos))
		if err != nil {
			s.Console.Error("%v", err)
			return nil
		}

		videos = make([]*models.Video, 0, len(indices))
		for _, idx := range indices {
			videos = append(videos, playlist.Videos[idx-1])
		}
	}

	dir, err := fsutil.PlaylistDir(run.OutputDir, playlist.Title)
	if err != nil {
		return err
	}
	for _, v := range videos {
		v.DirOut = dir
	}

	results := s.downloadAll(ctx, videos, run)
	s.reportResults(results)
	return nil
}

// askOverrides applies the per-run prompts enabled in settings and returns
// the (possibly adjusted) snapshot for this run. The stored settings are
// untouched.
func (s *Session) askOverrides() (*models.Settings, error) {
	run := *s.Settings

	if s.Prompter == nil {
		return &run, nil
	}

	if run.AskDownloadDir {
		dir, err := s.Prompter.Line("Download directory", run.OutputDir)
		if err != nil {
			return nil, err
		}
		run.OutputDir = dir
	}
	if run.AskQuality {
		q, err := s.Prompter.Line("Quality (best/1080p/720p/480p/worst)", run.Quality)
		if err != nil {
			return nil, err
		}
		run.Quality = q
	}
	if run.AskParallelMode {
		parallel, err := s.Prompter.Confirm("Download in parallel", run.UseParallel)
		if err != nil {
			return nil, err
		}
		run.UseParallel = parallel
	}
	if run.UseParallel && run.AskNumWorkers {
		n, err := s.Prompter.Int("Parallel workers", run.ParallelWorkers, 1, 10)
		if err != nil {
			return nil, err
		}
		run.ParallelWorkers = n
	}

	if run.AskDownloadDir || run.AskQuality || run.AskParallelMode || run.AskNumWorkers {
		save, err := s.Prompter.Confirm("Save these as defaults and stop asking", false)
		if err != nil {
			return nil, err
		}
		if save {
			s.Settings.OutputDir = run.OutputDir
			s.Settings.Quality = run.Quality
			s.Settings.UseParallel = run.UseParallel
			s.Settings.ParallelWorkers = run.ParallelWorkers
			s.Settings.AskDownloadDir = false
			s.Settings.AskQuality = false
			s.Settings.AskParallelMode = false
			s.Settings.AskNumWorkers = false
			if err := s.saveSettings(); err != nil {
				s.Console.Warn("Could not save defaults: %v", err)
			} else {
				s.Console.Success("Defaults saved")
			}
		}
	}
	return &run, nil
}

// downloadAll runs the given videos through the archive filter and the
// download engine, recording every outcome in the session stats.
func (s *Session) downloadAll(ctx context.Context, videos []*models.Video, run *models.Settings) []downloads.Result {
	opts := downloads.OptionsFromSettings(run)
	policy := downloads.NewPolicy(run.BackoffCeiling, run.MaxRetries)

	tracker := downloads.NewTracker(s.Store, nil)
	tracker.Start(ctx)
	defer tracker.Stop()

	var (
		results []downloads.Result
		pending []*downloads.VideoDownload
		namers  = make(map[string]*fsutil.Namer)
	)
	for _, v := range videos {
		if s.alreadyDownloaded(ctx, v) {
			s.Console.Info("Already downloaded, skipping: %s", v.Title)
			results = append(results, downloads.Result{Video: v, Status: models.DLStatusSkipped})
			continue
		}

		// Reserve an output name per queued video so duplicate titles in
		// one batch land on "name (2)" style variants.
		if v.Title != "" && v.Title != v.URL {
			namer := namers[v.DirOut]
			if namer == nil {
				namer = fsutil.NewNamer(v.DirOut)
				namers[v.DirOut] = namer
			}
			v.OutBase = namer.Assign(v.Title)
		}

		if s.Store != nil {
			if err := s.Store.AddDownload(ctx, v); err != nil {
				logging.E("Failed to register %q in archive: %v", v.URL, err)
			}
		}

		d := downloads.NewVideoDownload(v, tracker, policy, opts)
		d.Runner = s.Runner
		pending = append(pending, d)
	}

	if len(pending) == 0 {
		s.recordAll(results)
		return results
	}

	if run.UseParallel && len(pending) > 1 {
		s.Console.Info("Downloading %d videos with %d workers", len(pending), run.ParallelWorkers)
		limiter := rate.NewLimiter(rate.Every(launchInterval), 1)
		results = append(results, downloads.RunParallel(ctx, pending, run.ParallelWorkers, limiter)...)
	} else {
		for _, d := range pending {
			bar := s.Console.NewProgressBar(d.Video.Title)
			d.OnProgress = func(p downloads.Progress) {
				bar.Render(p.Pct, p.Size, p.Speed, p.ETA)
			}
			res := d.Run(ctx)
			bar.Done()
			results = append(results, res)
		}
	}

	s.recordAll(results)
	return results
}

// alreadyDownloaded consults the archive, treating lookup failures as not
// downloaded so archive problems never block downloads.
func (s *Session) alreadyDownloaded(ctx context.Context, v *models.Video) bool {
	if s.Store == nil {
		return false
	}
	done, err := s.Store.IsDownloaded(ctx, v.URL)
	if err != nil {
		logging.W("Archive lookup failed for %q: %v", v.URL, err)
		return false
	}
	return done
}

func (s *Session) recordAll(results []downloads.Result) {
	for _, res := range results {
		s.Stats.Record(res.Status)
	}
}

// reportResults prints per-video outcomes, with recovery hints for
// failures.
func (s *Session) reportResults(results []downloads.Result) {
	for _, res := range results {
		switch res.Status {
		case models.DLStatusCompleted:
			s.Console.Success("%s %s(%s)%s", res.Video.Title,
				s.Console.Theme().Dim, res.OutputPath, s.Console.Theme().Reset)
		case models.DLStatusSkipped:
			// Skips are reported when they happen.
		default:
			s.Console.Error("%s failed after %d attempt(s)", res.Video.Title, res.Attempts)
			s.reportDownloadError(res.Err)
		}
	}
}

func (s *Session) reportDownloadError(err error) {
	if err == nil {
		return
	}

	var derr *downloads.DownloadError
	if errors.As(err, &derr) {
		s.Console.Error("%s", derr.Msg)
		s.Console.Suggestions(derr.Suggestions())
		return
	}
	s.Console.Error("%v", err)
}
