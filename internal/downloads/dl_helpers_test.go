package downloads

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseProgressLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		line    string
		wantOK  bool
		wantPct float64
		wantETA time.Duration
	}{
		{
			name:    "full line",
			line:    "[download]  45.2% of ~120.50MiB at 2.30MiB/s ETA 00:35",
			wantOK:  true,
			wantPct: 45.2,
			wantETA: 35 * time.Second,
		},
		{
			name:    "hours eta",
			line:    "[download]   1.0% of 4.20GiB at 512.00KiB/s ETA 01:10:09",
			wantOK:  true,
			wantPct: 1.0,
			wantETA: 1*time.Hour + 10*time.Minute + 9*time.Second,
		},
		{
			name:    "bare percent",
			line:    "[download] 100.0%",
			wantOK:  true,
			wantPct: 100,
		},
		{
			name:    "overshoot clamped",
			line:    "[download] 100.2% of 10.00MiB at 1.00MiB/s ETA 00:00",
			wantOK:  true,
			wantPct: 100,
		},
		{
			name:   "destination line",
			line:   "[download] Destination: /tmp/video.mp4",
			wantOK: false,
		},
		{
			name:   "unrelated output",
			line:   "[info] Writing video metadata",
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := parseProgressLine(tc.line)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if p.Pct != tc.wantPct {
				t.Errorf("pct = %v, want %v", p.Pct, tc.wantPct)
			}
			if p.ETA != tc.wantETA {
				t.Errorf("eta = %v, want %v", p.ETA, tc.wantETA)
			}
		})
	}
}

func TestNormalizeETA(t *testing.T) {
	t.Parallel()
	if got := normalizeETA("01:23"); got != "00:01:23" {
		t.Errorf("normalizeETA(01:23) = %q", got)
	}
	if got := normalizeETA("02:01:23"); got != "02:01:23" {
		t.Errorf("normalizeETA(02:01:23) = %q", got)
	}
}

func TestVerifyVideoDownload(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	good := filepath.Join(dir, "good.mp4")
	if err := os.WriteFile(good, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := verifyVideoDownload(good); err != nil {
		t.Errorf("valid file rejected: %v", err)
	}

	empty := filepath.Join(dir, "empty.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := verifyVideoDownload(empty); err == nil {
		t.Error("empty file should fail verification")
	}

	if err := verifyVideoDownload(filepath.Join(dir, "missing.mp4")); err == nil {
		t.Error("missing file should fail verification")
	}

	if err := verifyVideoDownload(dir); err == nil {
		t.Error("directory should fail verification")
	}
}

func TestWaitForFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	present := filepath.Join(dir, "present.mp4")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := waitForFile(present, time.Second); err != nil {
		t.Errorf("existing file: %v", err)
	}

	if err := waitForFile(filepath.Join(dir, "never.mp4"), 300*time.Millisecond); err == nil {
		t.Error("expected timeout for absent file")
	}

	late := filepath.Join(dir, "late.mp4")
	go func() {
		time.Sleep(150 * time.Millisecond)
		os.WriteFile(late, []byte("x"), 0o644)
	}()
	if err := waitForFile(late, 2*time.Second); err != nil {
		t.Errorf("late file: %v", err)
	}
}
