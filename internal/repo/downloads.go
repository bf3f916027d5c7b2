// Package repo implements the archive stores on top of sqlite.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/logging"
	"playlistfy/internal/models"

	"github.com/Masterminds/squirrel"
)

// DownloadStore persists download outcomes so finished videos are skipped
// on later runs.
type DownloadStore struct {
	DB *sql.DB
}

// GetDownloadStore returns a download store instance with injected database.
func GetDownloadStore(db *sql.DB) *DownloadStore {
	return &DownloadStore{
		DB: db,
	}
}

// AddDownload inserts (or refreshes) the archive row for a video and fills
// in its row ID.
func (ds *DownloadStore) AddDownload(ctx context.Context, v *models.Video) error {
	if v == nil || v.URL == "" {
		return fmt.Errorf("video model has no URL")
	}

	status := v.DownloadStatus.Status
	if status == "" {
		status = models.DLStatusPending
	}

	now := time.Now()
	query := squirrel.
		Insert(consts.DBDownloads).
		Columns(consts.QVidURL, consts.QVidExtID, consts.QVidTitle, consts.QVidPath,
			consts.QDLStatus, consts.QDLPct, consts.QUploadedAt, consts.QCreatedAt, consts.QUpdatedAt).
		Values(v.URL, v.VideoID, v.Title, v.VPath, status, v.DownloadStatus.Pct, v.UploadedAt, now, now).
		Suffix(fmt.Sprintf("ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s, %s = excluded.%s, %s = excluded.%s",
			consts.QVidURL,
			consts.QVidTitle, consts.QVidTitle,
			consts.QDLStatus, consts.QDLStatus,
			consts.QUpdatedAt, consts.QUpdatedAt)).
		RunWith(ds.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert download row for %q: %w", v.URL, err)
	}

	idQuery := squirrel.
		Select(consts.QVidID).
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QVidURL: v.URL}).
		RunWith(ds.DB)

	if err := idQuery.QueryRowContext(ctx).Scan(&v.ID); err != nil {
		return fmt.Errorf("failed to read back row ID for %q: %w", v.URL, err)
	}
	return nil
}

// UpdateDownloadStatus writes a status snapshot to the archive.
func (ds *DownloadStore) UpdateDownloadStatus(ctx context.Context, update models.StatusUpdate) error {
	if update.VideoURL == "" {
		return fmt.Errorf("status update has no URL")
	}

	tx, err := ds.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Failed to rollback status update for %q (original error: %v): %v", update.VideoURL, err, rbErr)
			}
		}
	}()

	normalizeDownloadStatus(&update)

	query := squirrel.
		Update(consts.DBDownloads).
		Set(consts.QDLStatus, update.Status).
		Set(consts.QDLPct, update.Percent).
		Set(consts.QUpdatedAt, time.Now()).
		Where(squirrel.Eq{consts.QVidURL: update.VideoURL}).
		RunWith(tx)

	if _, err = query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to update download status for %q: %w", update.VideoURL, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status update: %w", err)
	}
	return nil
}

// IsDownloaded reports whether the URL already completed in a prior run.
func (ds *DownloadStore) IsDownloaded(ctx context.Context, url string) (bool, error) {
	query := squirrel.
		Select("1").
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QVidURL: url, consts.QDLStatus: models.DLStatusCompleted}).
		Limit(1).
		RunWith(ds.DB)

	var one int
	err := query.QueryRowContext(ctx).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to query download archive for %q: %w", url, err)
	}
	return true, nil
}

// RecentDownloads returns the most recently touched archive rows, newest
// first.
func (ds *DownloadStore) RecentDownloads(ctx context.Context, limit int) ([]*models.Video, error) {
	if limit < 1 {
		limit = 10
	}

	query := squirrel.
		Select(consts.QVidID, consts.QVidURL, consts.QVidExtID, consts.QVidTitle,
			consts.QVidPath, consts.QDLStatus, consts.QDLPct, consts.QUpdatedAt).
		From(consts.DBDownloads).
		OrderBy(consts.QUpdatedAt + " DESC").
		Limit(uint64(limit)).
		RunWith(ds.DB)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent downloads: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		var (
			v    models.Video
			path sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.URL, &v.VideoID, &v.Title, &path,
			&v.DownloadStatus.Status, &v.DownloadStatus.Pct, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download row: %w", err)
		}
		v.VPath = path.String
		videos = append(videos, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate download rows: %w", err)
	}
	return videos, nil
}

// normalizeDownloadStatus keeps the percentage and status coherent before
// they hit the archive.
func normalizeDownloadStatus(update *models.StatusUpdate) {
	if update.Percent >= 100.0 {
		update.Percent = 100.0
		if update.Status == models.DLStatusDownloading {
			update.Status = models.DLStatusCompleted
		}
	} else if update.Percent < 0.0 {
		update.Percent = 0.0
	}
	if update.Status == "" {
		update.Status = models.DLStatusPending
	}
}
