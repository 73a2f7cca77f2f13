package library

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/chime/internal/db"
)

const (
	appName     = "chime"
	cacheDBName = "library.db"
)

// Cache persists scanned track metadata keyed by path and mtime so
// unchanged files are not re-read on the next startup. It is an
// optimization only: every operation failing leaves the scan correct,
// just slower.
type Cache struct {
	db *sql.DB
}

// OpenCache opens the cache database in the user cache directory,
// creating it if needed.
func OpenCache() (*Cache, error) {
	dbPath, err := xdg.CacheFile(filepath.Join(appName, cacheDBName))
	if err != nil {
		return nil, err
	}
	return OpenCacheAt(dbPath)
}

// OpenCacheAt opens the cache database at an explicit path.
func OpenCacheAt(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Cache{db: sqlDB}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func initSchema(sqlDB *sql.DB) error {
	_, err := sqlDB.Exec(`
		CREATE TABLE IF NOT EXISTS tracks (
			path TEXT PRIMARY KEY,
			mtime INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			genre TEXT NOT NULL,
			track_number INTEGER NOT NULL,
			year INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			format TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	return err
}

// cachedTrack pairs a track with the file mtime it was read at.
type cachedTrack struct {
	track Track
	mtime int64
}

// Load returns all cached entries keyed by path.
func (c *Cache) Load() (map[string]cachedTrack, error) {
	rows, err := c.db.Query(`
		SELECT path, mtime, title, artist, album, genre, track_number, year, duration_ms, format, size_bytes
		FROM tracks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]cachedTrack)
	for rows.Next() {
		var t Track
		var mtime, durationMS int64
		if err := rows.Scan(&t.Path, &mtime, &t.Title, &t.Artist, &t.Album, &t.Genre,
			&t.TrackNumber, &t.Year, &durationMS, &t.Format, &t.SizeBytes); err != nil {
			return nil, err
		}
		t.Duration = time.Duration(durationMS) * time.Millisecond
		entries[t.Path] = cachedTrack{track: t, mtime: mtime}
	}
	return entries, rows.Err()
}

// Store upserts the given freshly read entries in a single transaction.
func (c *Cache) Store(entries []cachedTrack) error {
	if len(entries) == 0 {
		return nil
	}
	return db.WithTx(c.db, func(tx *sql.Tx) error {
		now := time.Now().Unix()
		for _, e := range entries {
			_, err := tx.Exec(`
				INSERT INTO tracks (path, mtime, title, artist, album, genre, track_number, year, duration_ms, format, size_bytes, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(path) DO UPDATE SET
					mtime = excluded.mtime,
					title = excluded.title,
					artist = excluded.artist,
					album = excluded.album,
					genre = excluded.genre,
					track_number = excluded.track_number,
					year = excluded.year,
					duration_ms = excluded.duration_ms,
					format = excluded.format,
					size_bytes = excluded.size_bytes,
					updated_at = excluded.updated_at
			`, e.track.Path, e.mtime, e.track.Title, e.track.Artist, e.track.Album, e.track.Genre,
				e.track.TrackNumber, e.track.Year, e.track.Duration.Milliseconds(), e.track.Format,
				e.track.SizeBytes, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Prune deletes cached entries whose path is not in keep.
func (c *Cache) Prune(keep map[string]bool) error {
	rows, err := c.db.Query(`SELECT path FROM tracks`)
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return err
		}
		if !keep[path] {
			stale = append(stale, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	return db.WithTx(c.db, func(tx *sql.Tx) error {
		for _, path := range stale {
			if _, err := tx.Exec(`DELETE FROM tracks WHERE path = ?`, path); err != nil {
				return err
			}
		}
		return nil
	})
}
