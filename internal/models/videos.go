// Package models holds the data structures passed between playlistfy's
// layers.
package models

import "time"

// Download status values.
const (
	DLStatusPending     = "pending"
	DLStatusDownloading = "downloading"
	DLStatusCompleted   = "completed"
	DLStatusFailed      = "failed"
	DLStatusSkipped     = "skipped"
)

// Video is one download task: a URL plus the parameters resolved for it.
// Created per video (including each playlist entry) and consumed exactly
// once by the invoker. OutBase, when set, fixes the output file's base
// name; empty leaves naming to yt-dlp's title template.
type Video struct {
	ID         int64
	VideoID    string
	URL        string
	Title      string
	Duration   int
	Index      int
	DirOut     string
	OutBase    string
	VPath      string
	UploadedAt time.Time
	UpdatedAt  time.Time

	DownloadStatus Status
}

// Status carries the live download state of a video.
type Status struct {
	Status string
	Pct    float64
	Error  error
}

// StatusUpdate is a point-in-time snapshot sent to the download tracker.
type StatusUpdate struct {
	VideoID  int64
	VideoURL string
	Status   string
	Percent  float64
	Error    error
}

// Playlist is an ordered collection of videos sharing a remote identifier.
type Playlist struct {
	URL     string
	ID      string
	Title   string
	Creator string
	Videos  []*Video
}

// TotalDuration sums the entry durations.
func (p *Playlist) TotalDuration() time.Duration {
	var total int
	for _, v := range p.Videos {
		total += v.Duration
	}
	return time.Duration(total) * time.Second
}
