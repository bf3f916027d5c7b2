package downloads

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"
	"playlistfy/internal/parsing"

	"github.com/araddon/dateparse"
)

// ProbePlaylist extracts playlist metadata and entries without downloading
// anything, via yt-dlp's flat playlist dump.
func ProbePlaylist(ctx context.Context, url string, o Options) (*models.Playlist, error) {
	args := []string{"--flat-playlist", "--dump-json", "--no-warnings"}
	if o.CookieSource != "" {
		args = append(args, "--cookies-from-browser", o.CookieSource)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, consts.YtDlpBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, classifyErr(fmt.Errorf("playlist probe failed: %w", err), stderr.String())
	}

	playlist, err := parseFlatPlaylist(bytes.NewReader(out), url)
	if err != nil {
		return nil, err
	}
	if len(playlist.Videos) == 0 {
		return nil, &DownloadError{Category: CatUnavailable, Msg: "no videos found in playlist"}
	}
	return playlist, nil
}

// flatEntry is one line of yt-dlp --flat-playlist --dump-json output.
type flatEntry struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Duration      float64 `json:"duration"`
	UploadDate    string  `json:"upload_date"`
	Uploader      string  `json:"uploader"`
	PlaylistID    string  `json:"playlist_id"`
	PlaylistTitle string  `json:"playlist_title"`
}

// parseFlatPlaylist decodes the line-delimited JSON entries into a
// playlist model. Undecodable lines are skipped.
func parseFlatPlaylist(r io.Reader, url string) (*models.Playlist, error) {
	playlist := &models.Playlist{
		URL:   url,
		Title: "Unknown Playlist",
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry flatEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			logging.D(2, "Skipping undecodable playlist entry: %v", err)
			continue
		}
		if entry.ID == "" {
			continue
		}

		v := &models.Video{
			VideoID:  entry.ID,
			URL:      parsing.WatchURL(entry.ID),
			Title:    entry.Title,
			Duration: int(entry.Duration),
			Index:    len(playlist.Videos) + 1,
		}
		if entry.UploadDate != "" {
			if uploaded, err := dateparse.ParseAny(entry.UploadDate); err == nil {
				v.UploadedAt = uploaded
			}
		}
		if v.Title == "" {
			v.Title = "Unknown"
		}
		playlist.Videos = append(playlist.Videos, v)

		// Playlist-level metadata rides on the first entry.
		if len(playlist.Videos) == 1 {
			if entry.PlaylistTitle != "" {
				playlist.Title = entry.PlaylistTitle
			}
			playlist.ID = entry.PlaylistID
			playlist.Creator = entry.Uploader
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist dump: %w", err)
	}
	return playlist, nil
}

// qualityFallbacks defines the progressive downgrade chain per requested
// tier.
var qualityFallbacks = map[string][]string{
	"1080p": {"1080p", "720p", "480p", "best"},
	"720p":  {"720p", "480p", "best"},
	"480p":  {"480p", "best"},
	"best":  {"best"},
	"worst": {"worst"},
}

// ProbeQuality lists the available formats for a URL and picks the best
// usable tier at or below the requested one. Probe failures fall back to
// the requested tier and let yt-dlp sort it out.
func ProbeQuality(ctx context.Context, url, requested string, o Options) string {
	ctx, cancel := context.WithTimeout(ctx, consts.ProbeTimeout)
	defer cancel()

	args := []string{"--list-formats", "--no-warnings"}
	if o.CookieSource != "" {
		args = append(args, "--cookies-from-browser", o.CookieSource)
	}
	args = append(args, url)

	out, err := exec.CommandContext(ctx, consts.YtDlpBin, args...).Output()
	if err != nil {
		logging.W("Could not verify quality for %q, attempting %s: %v", url, requested, err)
		return requested
	}

	picked := pickQuality(string(out), requested)
	if picked != requested {
		logging.W("Requested quality %s not available, using %s", requested, picked)
	}
	return picked
}

// pickQuality walks the fallback chain for the requested tier against the
// format listing.
func pickQuality(formats, requested string) string {
	lower := strings.ToLower(formats)

	chain, ok := qualityFallbacks[requested]
	if !ok {
		return "best"
	}

	for _, tier := range chain {
		if tier == "best" || tier == "worst" {
			return tier
		}
		height := strings.TrimSuffix(tier, "p")
		if strings.Contains(lower, height+"p") || strings.Contains(lower, "x"+height) {
			return tier
		}
	}
	return "best"
}
