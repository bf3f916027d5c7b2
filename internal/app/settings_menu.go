package app

import (
	"errors"
	"io"
	"slices"
	"strings"

	"playlistfy/internal/browser"
	"playlistfy/internal/cfg"
	"playlistfy/internal/domain/consts"
)

// settingsMenu lets the user adjust and persist the global configuration.
// Changes apply to the live session immediately and are written to the
// global config file on save.
func (s *Session) settingsMenu() error {
	for {
		s.Console.Plain("")
		s.Console.Plain("  1. Output directory   (%s)", s.Settings.OutputDir)
		s.Console.Plain("  2. Quality            (%s)", s.Settings.Quality)
		s.Console.Plain("  3. Parallel workers   (%d, parallel=%v)", s.Settings.ParallelWorkers, s.Settings.UseParallel)
		s.Console.Plain("  4. Theme              (%s)", s.Settings.Theme)
		s.Console.Plain("  5. Cookie source      (%s)", orNone(s.Settings.CookieSource))
		s.Console.Plain("  6. Per-run prompts    (%s)", askSummary(s.Settings.AskDownloadDir, s.Settings.AskQuality, s.Settings.AskParallelMode, s.Settings.AskNumWorkers))
		s.Console.Plain("  7. Save and go back")

		choice, err := s.Prompter.Line("Select a setting", "7")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			dir, err := s.Prompter.Line("Output directory", s.Settings.OutputDir)
			if err != nil {
				return err
			}
			s.Settings.OutputDir = dir

		case "2":
			q, err := s.Prompter.Line("Quality (best/1080p/720p/480p/worst)", s.Settings.Quality)
			if err != nil {
				return err
			}
			if !slices.Contains(consts.QualityTiers[:], q) {
				s.Console.Warn("Unknown quality %q, keeping %q", q, s.Settings.Quality)
				continue
			}
			s.Settings.Quality = q

		case "3":
			parallel, err := s.Prompter.Confirm("Enable parallel downloads", s.Settings.UseParallel)
			if err != nil {
				return err
			}
			s.Settings.UseParallel = parallel
			if parallel {
				n, err := s.Prompter.Int("Parallel workers", s.Settings.ParallelWorkers, consts.MinWorkers, consts.MaxWorkers)
				if err != nil {
					return err
				}
				s.Settings.ParallelWorkers = n
			}

		case "4":
			theme, err := s.Prompter.Line("Theme (dark/light/plain)", s.Settings.Theme)
			if err != nil {
				return err
			}
			switch theme {
			case "dark", "light", "plain":
				s.Settings.Theme = theme
				s.Console.Warn("Theme change takes effect on next start")
			default:
				s.Console.Warn("Unknown theme %q, keeping %q", theme, s.Settings.Theme)
			}

		case "5":
			src, err := s.Prompter.Line("Cookie browser (empty to disable)", s.Settings.CookieSource)
			if err != nil {
				return err
			}
			src = strings.ToLower(strings.TrimSpace(src))
			if src != "" && !slices.Contains(consts.CookieBrowsers[:], src) {
				s.Console.Warn("Unknown browser %q, keeping %q", src, orNone(s.Settings.CookieSource))
				continue
			}
			if src != "" && !browser.CheckCookieSource(src) {
				s.Console.Warn("No YouTube cookies found in %s; keeping it anyway", src)
			}
			s.Settings.CookieSource = src

		case "6":
			for _, toggle := range []struct {
				label string
				flag  *bool
			}{
				{"Ask download directory each run", &s.Settings.AskDownloadDir},
				{"Ask quality each run", &s.Settings.AskQuality},
				{"Ask parallel mode each run", &s.Settings.AskParallelMode},
				{"Ask worker count each run", &s.Settings.AskNumWorkers},
			} {
				on, err := s.Prompter.Confirm(toggle.label, *toggle.flag)
				if err != nil {
					return err
				}
				*toggle.flag = on
			}

		case "7", "q", "back":
			if err := s.saveSettings(); err != nil {
				s.Console.Error("Failed to save settings: %v", err)
				return nil
			}
			s.Console.Success("Settings saved")
			return nil

		default:
			s.Console.Warn("Unknown option %q", choice)
		}
	}
}

// saveSettings persists the live settings through the configured saver.
func (s *Session) saveSettings() error {
	if s.SaveFunc != nil {
		return s.SaveFunc(s.Settings)
	}
	return cfg.SaveGlobal(s.Settings)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func askSummary(flags ...bool) string {
	var on int
	for _, f := range flags {
		if f {
			on++
		}
	}
	if on == 0 {
		return "all off"
	}
	if on == len(flags) {
		return "all on"
	}
	return "mixed"
}
