// Package sysdeps verifies the external binaries playlistfy shells out to.
package sysdeps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/downloads"
	"playlistfy/internal/logging"
)

// Check is the result of probing one external binary.
type Check struct {
	Name    string
	Path    string
	Version string
	Found   bool
}

// VerifyDependencies probes for yt-dlp and ffmpeg. A missing yt-dlp is a
// hard error since every download runs through it; a missing ffmpeg only
// degrades merge quality and is reported as a warning.
func VerifyDependencies(ctx context.Context) (ytdlp, ffmpeg Check, err error) {
	ytdlp = probe(ctx, consts.YtDlpBin, "--version")
	ffmpeg = probe(ctx, consts.FFmpegBin, "-version")

	if !ytdlp.Found {
		return ytdlp, ffmpeg, &downloads.DownloadError{
			Category: downloads.CatDependency,
			Msg:      fmt.Sprintf("%s not found on PATH", consts.YtDlpBin),
		}
	}
	logging.D(1, "Found %s %s at %s", ytdlp.Name, ytdlp.Version, ytdlp.Path)

	if !ffmpeg.Found {
		logging.W("%s not found on PATH; downloads needing stream merges may fall back to lower quality", consts.FFmpegBin)
	} else {
		logging.D(1, "Found %s %s at %s", ffmpeg.Name, ffmpeg.Version, ffmpeg.Path)
	}
	return ytdlp, ffmpeg, nil
}

// probe locates the binary and asks it for its version string.
func probe(ctx context.Context, bin, versionFlag string) Check {
	c := Check{Name: bin}

	path, err := exec.LookPath(bin)
	if err != nil {
		return c
	}
	c.Path = path
	c.Found = true

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, versionFlag).Output()
	if err != nil {
		logging.D(2, "Version probe failed for %s: %v", bin, err)
		return c
	}
	c.Version = firstLine(string(out))
	return c
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// InstallHint returns the platform-appropriate install suggestion for a
// missing binary.
func InstallHint(bin string) string {
	switch bin {
	case consts.YtDlpBin:
		return "Install yt-dlp: https://github.com/yt-dlp/yt-dlp#installation (e.g. pipx install yt-dlp)"
	case consts.FFmpegBin:
		return "Install ffmpeg via your package manager (e.g. apt install ffmpeg, brew install ffmpeg)"
	}
	return ""
}
