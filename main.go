package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playlistfy/internal/app"
	"playlistfy/internal/browser"
	"playlistfy/internal/cfg"
	"playlistfy/internal/database"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"
	"playlistfy/internal/repo"
	"playlistfy/internal/sysdeps"
	"playlistfy/internal/ui"

	"github.com/spf13/viper"
)

var startTime time.Time

func init() {
	startTime = time.Now()
}

func main() {
	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !viper.GetBool("execute") {
		return // Help or bad flags, cobra already reported
	}

	logging.Level = cfg.DebugLevel()

	if dir, err := cfg.GlobalConfigDir(); err == nil {
		if err := logging.SetupLogging(dir); err != nil {
			fmt.Printf("Notice: log file was not created: %v\n", err)
		}
	}

	settings := cfg.Settings()
	logging.D(1, "playlistfy started at %v", startTime.Format("2006-01-02 15:04:05 MST"))

	os.Exit(run(settings))
}

// run wires the session and returns the process exit code.
func run(settings *models.Settings) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := ui.NewConsole(settings.Theme)

	direct := viper.GetString("url") != ""

	ytdlp, ffmpeg, err := sysdeps.VerifyDependencies(ctx)
	if err != nil {
		console.Error("%v", err)
		console.Suggestions([]string{sysdeps.InstallHint(ytdlp.Name)})
		if direct {
			return 1
		}
		// The menu still works for history and settings; downloads will
		// fail with a dependency error.
	}
	if !ffmpeg.Found {
		console.Warn("ffmpeg not found; merged downloads may fall back to lower quality")
		console.Suggestions([]string{sysdeps.InstallHint(ffmpeg.Name)})
	}

	if settings.CookieSource != "" {
		browser.CheckCookieSource(settings.CookieSource)
	}

	if err := os.MkdirAll(settings.OutputDir, 0o755); err != nil {
		console.Error("Cannot create output directory %q: %v", settings.OutputDir, err)
		return 1
	}

	session := app.New(settings, console, nil, nil)

	db, err := database.Open(settings.ArchiveDB)
	if err != nil {
		console.Warn("Download archive unavailable, continuing without it: %v", err)
		logging.W("Archive open failed: %v", err)
	} else {
		defer db.Close()
		session.Store = repo.GetDownloadStore(db.Handle())
	}

	if direct {
		if err := session.RunDirect(ctx, viper.GetString("url")); err != nil {
			console.Error("%v", err)
			return 1
		}
		return 0
	}

	prompter, err := app.NewPrompter()
	if err != nil {
		console.Error("%v", err)
		return 1
	}
	defer prompter.Close()
	session.Prompter = prompter

	if err := session.Run(ctx); err != nil {
		if ctx.Err() != nil {
			console.Warn("Interrupted")
			return 130
		}
		console.Error("%v", err)
		return 1
	}

	logging.D(1, "Time elapsed: %.2f seconds", time.Since(startTime).Seconds())
	return 0
}
