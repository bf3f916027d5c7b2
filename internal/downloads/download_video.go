package downloads

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"
)

// ongoingDownloads guards against launching the same URL twice when a
// playlist repeats an entry.
var ongoingDownloads sync.Map

// Run performs the download with retries and returns its final Result.
// Errors are classified and folded into the Result, never propagated.
func (d *VideoDownload) Run(ctx context.Context) Result {
	if _, exists := ongoingDownloads.LoadOrStore(d.Video.URL, struct{}{}); exists {
		logging.I("Skipping duplicate download for: %s", d.Video.URL)
		return Result{Video: d.Video, Status: models.DLStatusSkipped}
	}
	defer ongoingDownloads.Delete(d.Video.URL)

	d.resolveQuality(ctx)

	var lastErr *DownloadError
	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return d.cancelResult(ctx, attempt-1)
		default:
		}

		logging.D(1, "Starting download attempt %d for URL: %s", attempt, d.Video.URL)

		path, err := d.attempt(ctx)
		if err == nil {
			d.Video.VPath = path
			d.Video.UpdatedAt = time.Now()
			d.setStatus(models.DLStatusCompleted, 100.0, nil)
			logging.S("Downloaded: %s", d.Video.Title)
			return Result{
				Video:      d.Video,
				Status:     models.DLStatusCompleted,
				OutputPath: path,
				Attempts:   attempt,
			}
		}

		lastErr = classifyErr(err, "")
		d.setStatus(models.DLStatusFailed, d.Video.DownloadStatus.Pct, lastErr)
		logging.E("Download attempt %d failed for %q (%s): %v", attempt, d.Video.URL, lastErr.Category, err)

		retry, delay := d.Policy.ShouldRetry(lastErr.Category, attempt)
		if !retry {
			return Result{
				Video:    d.Video,
				Status:   models.DLStatusFailed,
				Category: lastErr.Category,
				Attempts: attempt,
				Err:      lastErr,
			}
		}

		logging.I("Retrying %q in %v", d.Video.URL, delay.Round(time.Millisecond))
		select {
		case <-ctx.Done():
			return d.cancelResult(ctx, attempt)
		case <-time.After(delay):
		}
	}
}

// resolveQuality downgrades the requested tier to one the video actually
// offers before the first attempt. Skipped for best/worst, which have no
// fallback chain to walk.
func (d *VideoDownload) resolveQuality(ctx context.Context) {
	q := d.Opts.Quality
	if q == "" || q == "best" || q == "worst" {
		return
	}

	switch {
	case d.Prober != nil:
		d.Opts.Quality = d.Prober(ctx, d.Video.URL, q, d.Opts)
	case d.Runner == nil:
		d.Opts.Quality = ProbeQuality(ctx, d.Video.URL, q, d.Opts)
	}
}

// attempt runs one download try through the configured runner.
func (d *VideoDownload) attempt(ctx context.Context) (string, error) {
	d.setStatus(models.DLStatusPending, 0.0, nil)

	if d.Runner != nil {
		return d.Runner(ctx, d.Video, d.Opts)
	}
	return d.videoDLAttempt(ctx)
}

// videoDLAttempt spawns yt-dlp for a single attempt.
func (d *VideoDownload) videoDLAttempt(ctx context.Context) (string, error) {
	args := buildVideoArgs(d.Video, d.Opts)
	cmd := exec.CommandContext(ctx, consts.YtDlpBin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("stderr pipe error: %w", err)
	}

	var (
		wg        sync.WaitGroup
		stderrBuf bytes.Buffer
		filename  string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		filename = d.scanVideoCmdOutput(stdout)
	}()
	go func() {
		defer wg.Done()
		if _, err := io.Copy(&stderrBuf, stderr); err != nil {
			logging.D(2, "stderr read error for %q: %v", d.Video.URL, err)
		}
	}()

	if err := cmd.Start(); err != nil {
		return "", classifyErr(fmt.Errorf("command start error: %w", err), err.Error())
	}

	wg.Wait()
	if err := cmd.Wait(); err != nil {
		return "", classifyErr(fmt.Errorf("yt-dlp exited: %w", err), stderrBuf.String())
	}

	if filename == "" {
		return "", classifyErr(errors.New("no output filename captured"), stderrBuf.String())
	}

	if err := waitForFile(filename, consts.FileWaitTimeout); err != nil {
		return "", &DownloadError{Category: CatFilesystem, Msg: "downloaded file never appeared", Err: err}
	}
	if err := verifyVideoDownload(filename); err != nil {
		return "", &DownloadError{Category: CatFilesystem, Msg: "downloaded file failed verification", Err: err}
	}

	logging.D(1, "Download attempt produced: %s", filename)
	return filename, nil
}

// scanVideoCmdOutput scans yt-dlp stdout for progress lines and the final
// file path printed by after_move. Reads to EOF so the child never blocks
// on a full pipe.
func (d *VideoDownload) scanVideoCmdOutput(r io.Reader) (outputPath string) {
	scanner := bufio.NewScanner(r)

	var lastPct float64
	for scanner.Scan() {
		line := scanner.Text()

		if p, ok := parseProgressLine(line); ok {
			if p.Pct != lastPct {
				lastPct = p.Pct
				p.VideoURL = d.Video.URL
				d.setStatus(models.DLStatusDownloading, p.Pct, nil)
				if d.OnProgress != nil {
					d.OnProgress(p)
				}
			}
			continue
		}

		if filepath.IsAbs(line) {
			ext := strings.ToLower(filepath.Ext(line))
			for _, validExt := range consts.AllVidExtensions {
				if ext == validExt {
					outputPath = line
					break
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		logging.E("Scanner error for %q: %v", d.Video.URL, err)
	}
	return outputPath
}

// setStatus updates the video model and notifies the tracker.
func (d *VideoDownload) setStatus(status string, pct float64, err error) {
	d.Video.DownloadStatus.Status = status
	d.Video.DownloadStatus.Pct = pct
	d.Video.DownloadStatus.Error = err
	if d.Tracker != nil {
		d.Tracker.sendUpdate(d.Video)
	}
}

func (d *VideoDownload) cancelResult(ctx context.Context, attempts int) Result {
	logging.I("Cancelled download for URL %q", d.Video.URL)
	d.setStatus(models.DLStatusFailed, d.Video.DownloadStatus.Pct, ctx.Err())
	return Result{
		Video:    d.Video,
		Status:   models.DLStatusFailed,
		Category: CatUnknown,
		Attempts: attempts,
		Err:      ctx.Err(),
	}
}
