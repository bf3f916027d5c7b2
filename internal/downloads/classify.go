// Package downloads handles yt-dlp invocation, retry handling and
// download tracking.
package downloads

import (
	"errors"
	"strings"
)

// Category buckets a download failure for retry and display decisions.
type Category string

const (
	CatBotDetection Category = "bot_detection"
	CatNetwork      Category = "network"
	CatUnavailable  Category = "unavailable"
	CatFilesystem   Category = "filesystem"
	CatDependency   Category = "dependency_missing"
	CatUnknown      Category = "unknown"
)

// classifyTable maps known yt-dlp error text to categories. Matching is
// ordered: the first pattern with a hit wins.
var classifyTable = []struct {
	cat     Category
	needles []string
}{
	{CatBotDetection, []string{
		"sign in to confirm", "bot detected", "not a bot", "captcha", "429", "too many requests", "rate-limit",
	}},
	{CatUnavailable, []string{
		"video unavailable", "private video", "this video is not available", "members-only",
	}},
	{CatNetwork, []string{
		"connection refused", "connection reset", "timed out", "timeout",
		"unreachable", "network", "temporary failure", "no route to host",
	}},
	{CatFilesystem, []string{
		"permission denied", "no space left", "read-only file system", "file name too long",
	}},
	{CatDependency, []string{
		"executable file not found", "no such file or directory: 'yt-dlp'",
	}},
}

// suggestionTable holds the user-facing recovery hints shown when a
// category exhausts its retries.
var suggestionTable = map[Category][]string{
	CatBotDetection: {
		"Set a cookie source (--cookie-source firefox) and log into YouTube in that browser",
		"Wait a few minutes and try again",
		"Reduce the number of parallel workers",
	},
	CatUnavailable: {
		"Check whether the video is private or deleted",
		"Verify the URL is correct",
	},
	CatNetwork: {
		"Check your internet connection",
		"Try again in a few moments",
		"Disable any VPN or proxy and retry",
	},
	CatFilesystem: {
		"Check write permissions on the output directory",
		"Check available disk space",
	},
	CatDependency: {
		"Install yt-dlp and make sure it is on your PATH",
	},
	CatUnknown: {
		"Try the operation again",
		"Check the log file for details",
	},
}

// Classify matches error text against the pattern table.
func Classify(msg string) Category {
	lower := strings.ToLower(msg)
	for _, row := range classifyTable {
		for _, needle := range row.needles {
			if strings.Contains(lower, needle) {
				return row.cat
			}
		}
	}
	return CatUnknown
}

// DownloadError is a classified download failure. It carries the category
// so callers can pick retry behavior and display suggestions without
// re-parsing error text.
type DownloadError struct {
	Category Category
	Msg      string
	Err      error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Suggestions returns the category's recovery hints.
func (e *DownloadError) Suggestions() []string {
	return suggestionTable[e.Category]
}

// classifyErr wraps err into a DownloadError, classifying from stderr
// output when available, otherwise from the error text itself.
func classifyErr(err error, stderr string) *DownloadError {
	var derr *DownloadError
	if errors.As(err, &derr) {
		return derr
	}

	text := stderr
	if text == "" {
		text = err.Error()
	}
	return &DownloadError{
		Category: Classify(text),
		Msg:      firstErrorLine(text),
		Err:      err,
	}
}

// CategoryOf extracts the category from a classified error, or CatUnknown.
func CategoryOf(err error) Category {
	var derr *DownloadError
	if errors.As(err, &derr) {
		return derr.Category
	}
	return CatUnknown
}

// firstErrorLine prefers the first "ERROR:" line of yt-dlp output, falling
// back to the first non-empty line.
func firstErrorLine(text string) string {
	var fallback string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
		if fallback == "" {
			fallback = line
		}
	}
	if fallback == "" {
		return "download failed"
	}
	return fallback
}
