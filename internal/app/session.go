package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"playlistfy/internal/contracts"
	"playlistfy/internal/downloads"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"
	"playlistfy/internal/parsing"
	"playlistfy/internal/ui"
)

// Session is one interactive run: resolved settings, terminal surface,
// archive store and accumulated outcome counters.
type Session struct {
	Settings *models.Settings
	Console  *ui.Console
	Store    contracts.DownloadStore
	Prompter Prompter

	// Runner substitutes the download runner in tests; nil spawns yt-dlp.
	Runner downloads.RunnerFunc

	// SaveFunc substitutes the settings saver in tests; nil writes the
	// global config file.
	SaveFunc func(*models.Settings) error

	Stats   models.SessionStats
	started time.Time
}

// New assembles a session.
func New(settings *models.Settings, console *ui.Console, store contracts.DownloadStore, prompter Prompter) *Session {
	return &Session{
		Settings: settings,
		Console:  console,
		Store:    store,
		Prompter: prompter,
		started:  time.Now(),
	}
}

// Run drives the main menu until the user quits or the context is
// cancelled. Ctrl-D at the menu exits cleanly.
func (s *Session) Run(ctx context.Context) error {
	s.Console.Info("playlistfy - downloads via yt-dlp")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.Console.Plain("")
		s.Console.Plain("  1. Download a video")
		s.Console.Plain("  2. Download a playlist")
		s.Console.Plain("  3. Recent downloads")
		s.Console.Plain("  4. Settings")
		s.Console.Plain("  5. Quit")

		choice, err := s.Prompter.Line("Select an option", "")
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}

		switch choice {
		case "1":
			err = s.promptAndDownload(ctx, parsing.URLVideo)
		case "2":
			err = s.promptAndDownload(ctx, parsing.URLPlaylist)
		case "3":
			err = s.showHistory(ctx)
		case "4":
			err = s.settingsMenu()
		case "5", "q", "quit", "exit":
			s.finish()
			return nil
		default:
			s.Console.Warn("Unknown option %q", choice)
			continue
		}

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				break
			}
			s.Console.Error("%v", err)
			logging.E("Menu operation failed: %v", err)
		}
	}

	s.finish()
	return ctx.Err()
}

// RunDirect performs one non-interactive download for a URL given on the
// command line.
func (s *Session) RunDirect(ctx context.Context, rawURL string) error {
	info, err := parsing.ValidateURL(rawURL)
	if err != nil {
		return err
	}

	switch info.Type {
	case parsing.URLPlaylist:
		err = s.playlistFlow(ctx, rawURL, false)
	default:
		err = s.videoFlow(ctx, parsing.NormalizeURL(rawURL))
	}

	s.finish()
	if err != nil {
		return err
	}
	if s.Stats.Failed > 0 {
		return fmt.Errorf("%d download(s) failed", s.Stats.Failed)
	}
	return nil
}

// promptAndDownload asks for a URL of the wanted kind and dispatches to
// the right flow.
func (s *Session) promptAndDownload(ctx context.Context, want parsing.URLType) error {
	raw, err := s.Prompter.Line("Enter URL", "")
	if err != nil {
		return err
	}

	info, err := parsing.ValidateURL(raw)
	if err != nil {
		s.Console.Error("%v", err)
		return nil
	}

	if want == parsing.URLPlaylist && info.Type != parsing.URLPlaylist {
		s.Console.Error("That URL is a single video, not a playlist")
		return nil
	}

	if info.Type == parsing.URLPlaylist {
		return s.playlistFlow(ctx, raw, true)
	}
	return s.videoFlow(ctx, parsing.NormalizeURL(raw))
}

// showHistory prints the most recent archive rows.
func (s *Session) showHistory(ctx context.Context) error {
	if s.Store == nil {
		s.Console.Info("No archive configured")
		return nil
	}

	videos, err := s.Store.RecentDownloads(ctx, 10)
	if err != nil {
		return fmt.Errorf("failed to load download history: %w", err)
	}
	s.Console.ShowHistory(videos)
	return nil
}

func (s *Session) finish() {
	if s.Stats.Total() > 0 {
		s.Console.ShowSummary(&s.Stats, time.Since(s.started))
	}
}
