package database

import (
	"database/sql"
	"fmt"
)

// initDownloadsTable initializes the download archive table.
func initDownloadsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS downloads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        url TEXT NOT NULL UNIQUE,
        video_id TEXT,
        title TEXT,
        path TEXT,
        status TEXT NOT NULL CHECK(status IN ('pending', 'downloading', 'completed', 'failed', 'skipped')),
        pct REAL DEFAULT 0,
        uploaded_at TIMESTAMP,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_downloads_url ON downloads(url);
    CREATE INDEX IF NOT EXISTS idx_downloads_status ON downloads(status);
    CREATE INDEX IF NOT EXISTS idx_downloads_updated_at ON downloads(updated_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create downloads table: %w", err)
	}
	return nil
}
