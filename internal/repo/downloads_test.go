package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"playlistfy/internal/database"
	"playlistfy/internal/models"
)

func newTestStore(t *testing.T) *DownloadStore {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "archive", "playlistfy.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return GetDownloadStore(db.Handle())
}

func TestAddDownloadAssignsID(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t)
	ctx := context.Background()

	v := &models.Video{
		VideoID:    "abc12345678",
		URL:        "https://www.youtube.com/watch?v=abc12345678",
		Title:      "First Video",
		UploadedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := ds.AddDownload(ctx, v); err != nil {
		t.Fatal(err)
	}
	if v.ID == 0 {
		t.Error("row ID not assigned")
	}

	// Re-adding the same URL must not create a second row or change the ID.
	id := v.ID
	if err := ds.AddDownload(ctx, v); err != nil {
		t.Fatal(err)
	}
	if v.ID != id {
		t.Errorf("ID changed on re-add: %d -> %d", id, v.ID)
	}

	if err := ds.AddDownload(ctx, &models.Video{}); err == nil {
		t.Error("expected error for video without URL")
	}
}

func TestUpdateAndIsDownloaded(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t)
	ctx := context.Background()

	const url = "https://www.youtube.com/watch?v=def12345678"
	v := &models.Video{VideoID: "def12345678", URL: url, Title: "Second Video"}
	if err := ds.AddDownload(ctx, v); err != nil {
		t.Fatal(err)
	}

	done, err := ds.IsDownloaded(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("pending row must not report downloaded")
	}

	update := models.StatusUpdate{VideoURL: url, Status: models.DLStatusDownloading, Percent: 55.5}
	if err := ds.UpdateDownloadStatus(ctx, update); err != nil {
		t.Fatal(err)
	}

	update = models.StatusUpdate{VideoURL: url, Status: models.DLStatusCompleted, Percent: 100}
	if err := ds.UpdateDownloadStatus(ctx, update); err != nil {
		t.Fatal(err)
	}

	done, err = ds.IsDownloaded(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("completed row must report downloaded")
	}

	if done, err := ds.IsDownloaded(ctx, "https://www.youtube.com/watch?v=nosuchvideo"); err != nil || done {
		t.Errorf("unknown URL: done=%v err=%v", done, err)
	}
}

func TestRecentDownloadsOrder(t *testing.T) {
	t.Parallel()
	ds := newTestStore(t)
	ctx := context.Background()

	urls := []string{
		"https://www.youtube.com/watch?v=vid00000001",
		"https://www.youtube.com/watch?v=vid00000002",
		"https://www.youtube.com/watch?v=vid00000003",
	}
	for i, url := range urls {
		v := &models.Video{URL: url, Title: "Video"}
		if err := ds.AddDownload(ctx, v); err != nil {
			t.Fatal(err)
		}
		// Distinct updated_at values so ordering is deterministic.
		time.Sleep(5 * time.Millisecond)
		u := models.StatusUpdate{VideoURL: url, Status: models.DLStatusCompleted, Percent: float64(i)}
		if err := ds.UpdateDownloadStatus(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := ds.RecentDownloads(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d rows, want 2", len(recent))
	}
	if recent[0].URL != urls[2] || recent[1].URL != urls[1] {
		t.Errorf("wrong order: %s, %s", recent[0].URL, recent[1].URL)
	}
	if recent[0].DownloadStatus.Status != models.DLStatusCompleted {
		t.Errorf("status = %s", recent[0].DownloadStatus.Status)
	}
}

func TestNormalizeDownloadStatus(t *testing.T) {
	t.Parallel()
	u := models.StatusUpdate{Status: models.DLStatusDownloading, Percent: 103.4}
	normalizeDownloadStatus(&u)
	if u.Percent != 100 || u.Status != models.DLStatusCompleted {
		t.Errorf("overshoot: %+v", u)
	}

	u = models.StatusUpdate{Percent: -2}
	normalizeDownloadStatus(&u)
	if u.Percent != 0 || u.Status != models.DLStatusPending {
		t.Errorf("undershoot: %+v", u)
	}
}
