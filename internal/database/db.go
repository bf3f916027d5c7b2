// Package database opens and initializes the sqlite archive.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	handle *sql.DB
}

// Open opens (creating if needed) the archive database at path and ensures
// the schema exists.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	handle, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	d := &DB{handle: handle}
	if err := d.initTables(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Handle returns the underlying sql handle for store construction.
func (d *DB) Handle() *sql.DB {
	return d.handle
}

func (d *DB) Close() error {
	return d.handle.Close()
}

// initTables initializes the SQL tables.
func (d *DB) initTables() error {
	tx, err := d.handle.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := initDownloadsTable(tx); err != nil {
		return err
	}

	return tx.Commit()
}
