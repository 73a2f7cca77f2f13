package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/llehouerou/chime/internal/tags"
)

// Play starts playback of the given audio file, replacing whatever was
// playing before. Volume and speed settings carry over to the new
// track.
func (p *Player) Play(path string) error {
	p.Stop()

	// Small delay to let any pending speaker callback complete after
	// speaker.Clear()
	time.Sleep(10 * time.Millisecond)

	// Drain any stale finish signal from the previous track
	select {
	case <-p.finishedCh:
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		f.Close()
		return err
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		err = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
		if err != nil {
			streamer.Close()
			f.Close()
			return err
		}
		speakerInitialized = true
	}

	p.streamer = streamer
	p.format = format
	p.file = f

	// Chain: decoder → sample tap → rate match → speed → pause → volume.
	// The tap sits at the decoder so the visualizer sees source-rate
	// samples and stalls with the rest of the chain on pause.
	var chain beep.Streamer = newSampleTap(streamer, int(format.SampleRate), p.samplesCh)
	if format.SampleRate != speakerSampleRate {
		chain = beep.Resample(4, format.SampleRate, speakerSampleRate, chain)
	}
	p.speedRes = beep.ResampleRatio(4, p.speed, chain)
	p.ctrl = &beep.Ctrl{Streamer: p.speedRes, Paused: false}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: levelToVolume(p.volumeLevel), Silent: p.volumeLevel <= 0}

	p.state = Playing

	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		select {
		case p.finishedCh <- struct{}{}:
		default:
		}
	})))

	return nil
}

// ErrUnsupportedFormat is returned when no decoder handles the file's
// extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// decode picks a decoder by file extension and returns the raw
// streamer plus its native format.
func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case tags.ExtMP3:
		return decodeGoMP3(f)
	case tags.ExtFLAC:
		// Skip an ID3v2 tag if present; some taggers prepend one and
		// the FLAC decoder chokes on it.
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case tags.ExtWAV:
		return wav.Decode(f)
	case tags.ExtOGG:
		return vorbis.Decode(f)
	case tags.ExtM4A, tags.ExtMP4, tags.ExtAAC:
		streamer, format, _, err := decodeM4A(f)
		return streamer, format, err
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
