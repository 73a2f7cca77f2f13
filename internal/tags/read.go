package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read reads tag metadata from a music file.
// It returns only tag metadata, not audio stream properties.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag chokes on some UTF-16 ID3 frames, ffmpeg-created
		// M4A atoms, and untagged WAV/AAC files. TagLib reads them all.
		return readWithTaglib(path)
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	track, _ := m.Track()

	t := &Tag{
		Path:        path,
		Title:       title,
		Artist:      m.Artist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: track,
		Date:        yearToDate(m.Year()),
	}

	// dhowden reads FLAC year from the DATE comment only when it is a
	// bare year; recover full dates from the Vorbis comment block.
	if t.Date == "" && strings.ToLower(filepath.Ext(path)) == ExtFLAC {
		readFLACDate(path, t)
	}

	t.sanitize()
	return t, nil
}

// readWithTaglib reads metadata through the TagLib bindings. Used as the
// fallback for files dhowden/tag cannot parse.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	title := tags.get(taglib.Title)
	if title == "" {
		title = filepath.Base(path)
	}

	trackNum, _ := tags.parseNumberPair(taglib.TrackNumber)

	date := tags.get(taglib.Date)
	if date == "" {
		date = tags.get("YEAR")
	}

	t := &Tag{
		Path:        path,
		Title:       title,
		Artist:      tags.get(taglib.Artist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		TrackNumber: trackNum,
		Date:        date,
	}

	t.sanitize()
	return t, nil
}

// ReadWithAudio reads both tag metadata and audio stream properties.
// Tag failures degrade to a filename-derived title; audio property
// failures degrade to zero values. Only unreadable files error.
func ReadWithAudio(path string) (*FileInfo, error) {
	t, err := Read(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, statErr
		}
		t = &Tag{
			Path:  path,
			Title: filepath.Base(path),
		}
	}

	audio, err := ReadAudioInfo(path)
	if err != nil {
		audio = &AudioInfo{Format: formatForExt(filepath.Ext(path))}
	}

	return &FileInfo{
		Tag:       *t,
		AudioInfo: *audio,
	}, nil
}

// yearToDate converts a year integer to a date string.
// Returns empty string for year 0.
func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
