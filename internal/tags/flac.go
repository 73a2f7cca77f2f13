package tags

import (
	"strings"
	"time"

	goflac "github.com/go-flac/go-flac"
)

// readFLACDate fills Date from the raw Vorbis comment block. Some taggers
// write full YYYY-MM-DD dates that dhowden/tag drops.
func readFLACDate(path string, t *Tag) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		comments := parseVorbisComments(meta.Data)
		t.Date = comments["DATE"]
		if t.Date == "" {
			t.Date = comments["YEAR"]
		}
		return
	}
}

// flacStreamInfo reads duration, sample rate and bit depth from the FLAC
// STREAMINFO block without decoding any audio.
func flacStreamInfo(path string) (*AudioInfo, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data

		// Sample rate: 20 bits starting at byte 10.
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		// Bits per sample: 5 bits spanning bytes 12-13, stored minus one.
		bitsPerSample := ((int(data[12])&0x01)<<4 | int(data[13])>>4) + 1
		// Total samples: 36 bits spanning bytes 13-17.
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 |
			int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])

		duration := time.Duration(0)
		if sampleRate > 0 {
			duration = time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second))
		}

		return &AudioInfo{
			Duration:   duration,
			Format:     "FLAC",
			SampleRate: sampleRate,
			BitDepth:   bitsPerSample,
		}, nil
	}

	return taglibAudioInfo(path, "FLAC")
}

// parseVorbisComments parses a raw Vorbis comment block into a map with
// upper-cased keys.
func parseVorbisComments(data []byte) map[string]string {
	comments := make(map[string]string)

	if len(data) < 4 {
		return comments
	}

	// Vendor string first: 4-byte little-endian length, then the bytes.
	vendorLen := int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3])<<24
	pos := 4 + vendorLen
	if pos < 0 || pos+4 > len(data) {
		return comments
	}

	commentCount := int(data[pos]) | int(data[pos+1])<<8 | int(data[pos+2])<<16 | int(data[pos+3])<<24
	pos += 4

	for i := 0; i < commentCount && pos+4 <= len(data); i++ {
		commentLen := int(data[pos]) | int(data[pos+1])<<8 | int(data[pos+2])<<16 | int(data[pos+3])<<24
		pos += 4

		if commentLen < 0 || pos+commentLen > len(data) {
			break
		}

		comment := string(data[pos : pos+commentLen])
		pos += commentLen

		if idx := strings.Index(comment, "="); idx > 0 {
			key := strings.ToUpper(comment[:idx])
			comments[key] = comment[idx+1:]
		}
	}

	return comments
}
