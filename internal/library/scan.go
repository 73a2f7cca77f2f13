package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/llehouerou/chime/internal/tags"
)

const scanWorkers = 8

// Scan builds the track list for the given path. A single file yields
// a one-track library; a directory is walked recursively. When cache
// is non-nil, files whose modification time is unchanged are loaded
// from it instead of being re-read, and entries for vanished files are
// pruned.
func Scan(root string, cache *Cache) ([]Track, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if !tags.IsMusicFile(root) {
			return nil, ErrNoTracks
		}
		t := readTrack(root, info)
		return []Track{t}, nil
	}

	files, err := discoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if len(files) == 0 {
		return nil, ErrNoTracks
	}

	var cached map[string]cachedTrack
	if cache != nil {
		cached, err = cache.Load()
		if err != nil {
			slog.Warn("library cache unreadable, re-reading all files", "error", err)
			cached = nil
		}
	}

	tracks, fresh := readAll(files, cached)

	if cache != nil {
		if err := cache.Store(fresh); err != nil {
			slog.Warn("failed to update library cache", "error", err)
		}
		keep := make(map[string]bool, len(files))
		for _, f := range files {
			keep[f.path] = true
		}
		if err := cache.Prune(keep); err != nil {
			slog.Warn("failed to prune library cache", "error", err)
		}
	}

	return tracks, nil
}

type scanFile struct {
	path  string
	mtime int64
	size  int64
}

// discoverFiles walks the tree collecting supported audio files.
// Hidden directories and unreadable entries are skipped.
func discoverFiles(root string) ([]scanFile, error) {
	var files []scanFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !tags.IsMusicFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			slog.Warn("skipping file without info", "path", path, "error", err)
			return nil
		}
		files = append(files, scanFile{
			path:  path,
			mtime: info.ModTime().Unix(),
			size:  info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// readAll resolves each discovered file to a Track, taking unchanged
// files from the cache and reading the rest with a small worker pool.
// It returns all tracks plus the subset that was freshly read.
func readAll(files []scanFile, cached map[string]cachedTrack) ([]Track, []cachedTrack) {
	tracks := make([]Track, 0, len(files))
	var toRead []scanFile
	for _, f := range files {
		if c, ok := cached[f.path]; ok && c.mtime == f.mtime {
			tracks = append(tracks, c.track)
			continue
		}
		toRead = append(toRead, f)
	}

	if len(toRead) == 0 {
		return tracks, nil
	}

	workCh := make(chan scanFile)
	resultCh := make(chan cachedTrack)

	var wg sync.WaitGroup
	for range scanWorkers {
		wg.Go(func() {
			for f := range workCh {
				info, err := os.Stat(f.path)
				if err != nil {
					slog.Warn("skipping vanished file", "path", f.path, "error", err)
					continue
				}
				resultCh <- cachedTrack{track: readTrack(f.path, info), mtime: f.mtime}
			}
		})
	}

	go func() {
		for _, f := range toRead {
			workCh <- f
		}
		close(workCh)
		wg.Wait()
		close(resultCh)
	}()

	fresh := make([]cachedTrack, 0, len(toRead))
	for r := range resultCh {
		fresh = append(fresh, r)
		tracks = append(tracks, r.track)
	}
	return tracks, fresh
}

// readTrack reads tags and audio properties for a single file. Tag
// read failures degrade to a filename-derived title, so any supported
// file still becomes a playable track.
func readTrack(path string, info os.FileInfo) Track {
	fi, err := tags.ReadWithAudio(path)
	if err != nil {
		slog.Warn("failed to read file, using filename only", "path", path, "error", err)
		return Track{
			Path:      path,
			Title:     filepath.Base(path),
			SizeBytes: info.Size(),
		}
	}
	return Track{
		Path:        path,
		Title:       fi.Title,
		Artist:      fi.Artist,
		Album:       fi.Album,
		Genre:       fi.Genre,
		TrackNumber: fi.TrackNumber,
		Year:        fi.Year(),
		Duration:    fi.Duration,
		Format:      fi.Format,
		SizeBytes:   info.Size(),
	}
}
