package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
	"go.senan.xyz/taglib"
)

// ReadAudioInfo reads audio stream properties (duration, format, sample
// rate) without decoding the whole file. Format-specific header parsing
// is tried first; TagLib's property reader covers the rest.
func ReadAudioInfo(path string) (*AudioInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsMusicFile(path) {
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}

	var (
		info *AudioInfo
		err  error
	)

	switch ext {
	case ExtMP3:
		info, err = readMP3AudioInfo(path)
	case ExtFLAC:
		info, err = flacStreamInfo(path)
	case ExtM4A, ExtMP4:
		info, err = readM4AAudioInfo(path)
	default: // wav, ogg, aac
		info, err = taglibAudioInfo(path, formatForExt(ext))
	}
	if err != nil {
		return taglibAudioInfo(path, formatForExt(ext))
	}
	return info, nil
}

// readMP3AudioInfo extracts audio info by parsing MP3 frame headers.
func readMP3AudioInfo(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}

	sampleCount := max(decoder.SampleCount(), 0)
	duration := time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second))

	return &AudioInfo{
		Duration:   duration,
		Format:     "MP3",
		SampleRate: sampleRate,
		BitDepth:   16, // MP3 decodes to 16-bit
	}, nil
}

// readM4AAudioInfo extracts audio info from the M4A/MP4 container.
func readM4AAudioInfo(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	container, err := m4a.Open(f)
	if err != nil {
		return nil, err
	}

	codecType := container.Codec()
	var format string
	switch codecType {
	case m4a.CodecAAC:
		format = "AAC"
	case m4a.CodecALAC:
		format = "ALAC"
	case m4a.CodecUnknown:
		format = "M4A"
	}

	bitDepth := 16
	if codecType == m4a.CodecALAC && container.SampleSize() == 24 {
		bitDepth = 24
	}

	return &AudioInfo{
		Duration:   container.Duration(),
		Format:     format,
		SampleRate: int(container.SampleRate()),
		BitDepth:   bitDepth,
	}, nil
}

// taglibAudioInfo reads stream properties through the TagLib bindings.
func taglibAudioInfo(path, format string) (*AudioInfo, error) {
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return nil, err
	}
	return &AudioInfo{
		Duration:   props.Length,
		Format:     format,
		SampleRate: int(props.SampleRate),
		BitDepth:   16,
	}, nil
}

func formatForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ExtMP3:
		return "MP3"
	case ExtFLAC:
		return "FLAC"
	case ExtWAV:
		return "WAV"
	case ExtOGG:
		return "OGG"
	case ExtM4A, ExtMP4:
		return "M4A"
	case ExtAAC:
		return "AAC"
	default:
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
}
