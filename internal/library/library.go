// Package library builds the in-memory track list the player works
// from. The library is assembled once at startup by scanning a file or
// directory tree and is immutable afterwards; track IDs are positions
// in the sorted list and stay valid for the lifetime of the process.
package library

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNoTracks is returned when a scan finds no playable audio files.
var ErrNoTracks = errors.New("no playable audio files found")

// Track is a single playable file with the metadata shown in the UI.
type Track struct {
	ID          int
	Path        string
	Title       string
	Artist      string
	Album       string
	Genre       string
	TrackNumber int
	Year        int
	Duration    time.Duration
	Format      string
	SizeBytes   int64
}

// Library is an immutable, sorted collection of tracks.
type Library struct {
	tracks []Track
}

// New sorts the given tracks into stable play order and assigns IDs.
func New(tracks []Track) *Library {
	sorted := make([]Track, len(tracks))
	copy(sorted, tracks)
	sortTracks(sorted)
	for i := range sorted {
		sorted[i].ID = i
	}
	return &Library{tracks: sorted}
}

// Tracks returns the full track list in play order. Callers must treat
// the returned slice as read-only.
func (l *Library) Tracks() []Track {
	return l.tracks
}

func (l *Library) Len() int {
	return len(l.tracks)
}

// Get returns the track with the given ID.
func (l *Library) Get(id int) (Track, bool) {
	if id < 0 || id >= len(l.tracks) {
		return Track{}, false
	}
	return l.tracks[id], true
}

// sortTracks orders tracks by artist, album, track number, title and
// finally path, so scans of the same tree always produce the same
// order regardless of filesystem iteration order.
func sortTracks(tracks []Track) {
	sort.Slice(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]
		if c := strings.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist)); c != 0 {
			return c < 0
		}
		if c := strings.Compare(strings.ToLower(a.Album), strings.ToLower(b.Album)); c != 0 {
			return c < 0
		}
		if a.TrackNumber != b.TrackNumber {
			return a.TrackNumber < b.TrackNumber
		}
		if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
			return c < 0
		}
		return a.Path < b.Path
	})
}
