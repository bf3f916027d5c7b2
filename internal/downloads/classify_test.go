package downloads

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msg  string
		want Category
	}{
		{"sign in prompt", "ERROR: Sign in to confirm you're not a bot", CatBotDetection},
		{"http 429", "HTTP Error 429: Too Many Requests", CatBotDetection},
		{"captcha", "please solve the CAPTCHA to continue", CatBotDetection},
		{"bot detected", "ERROR: YouTube flagged this client: bot detected", CatBotDetection},
		{"robots txt is not bot detection", "ERROR: robots.txt disallowed this request", CatUnknown},
		{"bot in a title is not bot detection", "ERROR: Robot Wars Episode 3: download failed", CatUnknown},
		{"private video", "ERROR: Private video. Sign in if you've been granted access", CatUnavailable},
		{"unavailable", "ERROR: Video unavailable", CatUnavailable},
		{"members only", "this video is available to members-only", CatUnavailable},
		{"timeout", "urlopen error timed out", CatNetwork},
		{"connection reset", "Connection reset by peer", CatNetwork},
		{"unreachable", "Network is unreachable", CatNetwork},
		{"permission", "open /mnt/out: permission denied", CatFilesystem},
		{"disk full", "write /tmp/x.mp4: no space left on device", CatFilesystem},
		{"missing binary", `exec: "yt-dlp": executable file not found in $PATH`, CatDependency},
		{"gibberish", "something completely novel happened", CatUnknown},
		{"empty", "", CatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.msg); got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.msg, got, tc.want)
			}
		})
	}
}

func TestClassifyErrPrefersStderr(t *testing.T) {
	t.Parallel()
	err := errors.New("exit status 1")

	derr := classifyErr(err, "ERROR: Video unavailable\n")
	if derr.Category != CatUnavailable {
		t.Errorf("category = %s, want %s", derr.Category, CatUnavailable)
	}
	if derr.Msg != "ERROR: Video unavailable" {
		t.Errorf("msg = %q", derr.Msg)
	}
	if !errors.Is(derr, err) {
		t.Error("wrapped error lost")
	}
}

func TestClassifyErrPassthrough(t *testing.T) {
	t.Parallel()
	orig := &DownloadError{Category: CatFilesystem, Msg: "file vanished"}
	wrapped := fmt.Errorf("attempt failed: %w", orig)

	if got := classifyErr(wrapped, "network timeout"); got != orig {
		t.Error("already classified errors must pass through unchanged")
	}
	if got := CategoryOf(wrapped); got != CatFilesystem {
		t.Errorf("CategoryOf = %s, want %s", got, CatFilesystem)
	}
	if got := CategoryOf(errors.New("plain")); got != CatUnknown {
		t.Errorf("CategoryOf(plain) = %s, want %s", got, CatUnknown)
	}
}

func TestFirstErrorLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want string
	}{
		{"error line wins", "WARNING: something\nERROR: Video unavailable\nmore noise", "ERROR: Video unavailable"},
		{"first non-empty fallback", "\n\n  some diagnostic  \nanother", "some diagnostic"},
		{"empty input", "\n \n", "download failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := firstErrorLine(tc.text); got != tc.want {
				t.Errorf("firstErrorLine = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSuggestionsPerCategory(t *testing.T) {
	t.Parallel()
	for _, cat := range []Category{CatBotDetection, CatNetwork, CatUnavailable, CatFilesystem, CatDependency, CatUnknown} {
		e := &DownloadError{Category: cat, Msg: "x"}
		if len(e.Suggestions()) == 0 {
			t.Errorf("no suggestions for %s", cat)
		}
	}
}
