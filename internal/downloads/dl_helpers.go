package downloads

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/domain/regex"

	"github.com/dannav/hhmmss"
)

// parseProgressLine extracts percent, size, speed and ETA from a yt-dlp
// "[download]" progress line. Lines that are not progress output return
// ok=false.
func parseProgressLine(line string) (Progress, bool) {
	if !strings.Contains(line, "[download]") {
		return Progress{}, false
	}

	m := regex.DLProgressCompile().FindStringSubmatch(line)
	if m == nil {
		return Progress{}, false
	}

	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Progress{}, false
	}
	if pct > 100 {
		pct = 100
	}

	p := Progress{
		Pct:   pct,
		Size:  m[2],
		Speed: m[3],
	}

	if m[4] != "" {
		if eta, err := hhmmss.Parse(normalizeETA(m[4])); err == nil {
			p.ETA = eta
		}
	}
	return p, true
}

// normalizeETA pads yt-dlp's MM:SS ETAs out to HH:MM:SS.
func normalizeETA(eta string) string {
	if strings.Count(eta, ":") == 1 {
		return "00:" + eta
	}
	return eta
}

// verifyVideoDownload checks if the specified video file exists and is not empty.
func verifyVideoDownload(videoPath string) error {
	videoInfo, err := os.Stat(videoPath)
	if err != nil {
		return fmt.Errorf("video file verification failed: %w", err)
	}
	if videoInfo.Size() == 0 {
		return fmt.Errorf("video file is empty: %s", videoPath)
	}
	if videoInfo.IsDir() {
		return fmt.Errorf("video path created is a directory: %s", videoPath)
	}
	return nil
}

// waitForFile waits until the file is ready in the file system.
func waitForFile(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("unexpected error while checking file: %w", err)
		}
		time.Sleep(consts.Interval100ms)
	}
	return fmt.Errorf("file not ready after %v: %s", timeout, path)
}
