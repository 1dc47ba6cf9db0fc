// SPDX-License-Identifier: EPL-2.0

package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache is a sqlite-backed store of probed track metadata. Durations are
// keyed by path and file modification time, so a track only gets decoded
// for probing when it is new or has changed on disk.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS tracks (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		crossfade_ms INTEGER NOT NULL,
		duration REAL NOT NULL,
		mod_time INTEGER NOT NULL
	);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tracks table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached duration for path if the stored modification
// time still matches.
func (c *Cache) Lookup(path string, modTime int64) (float64, bool) {
	var duration float64
	var storedMod int64

	row := c.db.QueryRow(`SELECT duration, mod_time FROM tracks WHERE path = ?`, path)
	if err := row.Scan(&duration, &storedMod); err != nil {
		return 0, false
	}

	if storedMod != modTime {
		return 0, false
	}

	return duration, true
}

// Store upserts the metadata for one track.
func (c *Cache) Store(t TrackInfo, modTime int64) error {
	query := `INSERT OR REPLACE INTO tracks
		(path, name, kind, crossfade_ms, duration, mod_time)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := c.db.Exec(query, t.Path, t.Name, string(t.Kind), t.CrossfadeMS, t.Duration, modTime)
	if err != nil {
		return fmt.Errorf("storing track metadata: %w", err)
	}

	return nil
}
