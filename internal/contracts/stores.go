// Package contracts defines the store interfaces consumed by the
// download and app layers.
package contracts

import (
	"context"

	"playlistfy/internal/models"
)

// DownloadStore persists download records and live status updates.
type DownloadStore interface {
	// AddDownload inserts a new record for the video and sets its row ID.
	AddDownload(ctx context.Context, v *models.Video) error

	// UpdateDownloadStatus writes a status snapshot for an existing record.
	UpdateDownloadStatus(ctx context.Context, update models.StatusUpdate) error

	// IsDownloaded reports whether a completed record exists for the URL.
	IsDownloaded(ctx context.Context, url string) (bool, error)

	// RecentDownloads returns up to limit records, newest first.
	RecentDownloads(ctx context.Context, limit int) ([]*models.Video, error)
}
