package player

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// m4aDecoder wraps the go-m4a container reader with an AAC or ALAC
// sample decoder, auto-detected from the container.
type m4aDecoder struct {
	container  *m4a.Reader
	closer     io.Closer
	codecType  m4a.CodecType
	err        error
	currentIdx int
	totalLen   int
	sampleSize int // bits per sample (16 or 24)
	channels   int

	aacDecoder  *faad2.Decoder
	alacDecoder *alac.Alac

	// Decoded PCM pending delivery, as float64 stereo frames
	pcmBuffer [][2]float64
	pcmOffset int
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	codecType := container.Codec()
	sampleRate := container.SampleRate()
	channels := container.Channels()

	precision := 2 // 16-bit default
	if codecType == m4a.CodecALAC && container.SampleSize() == 24 {
		precision = 3
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2, // always output stereo
		Precision:   precision,
	}

	d := &m4aDecoder{
		container:  container,
		closer:     rc,
		codecType:  codecType,
		totalLen:   int(container.Duration().Seconds() * float64(sampleRate)),
		sampleSize: int(container.SampleSize()),
		channels:   int(channels),
	}

	switch codecType {
	case m4a.CodecAAC:
		decoder, err := faad2.NewDecoder(context.Background())
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := decoder.Init(context.Background(), container.CodecConfig()); err != nil {
			decoder.Close(context.Background())
			return nil, beep.Format{}, err
		}
		d.aacDecoder = decoder

	case m4a.CodecALAC:
		cfg := alac.Config{
			SampleRate:  int(sampleRate),
			SampleSize:  int(container.SampleSize()),
			NumChannels: int(channels),
			FrameSize:   4096, // ALAC default
		}
		decoder, err := alac.NewWithConfig(cfg)
		if err != nil {
			return nil, beep.Format{}, err
		}
		d.alacDecoder = decoder

	case m4a.CodecUnknown:
		return nil, beep.Format{}, errors.New("unsupported codec in M4A container")
	}

	return d, format, nil
}

func (d *m4aDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	for n < len(samples) {
		// Drain buffered frames first
		if d.pcmOffset < len(d.pcmBuffer) {
			for n < len(samples) && d.pcmOffset < len(d.pcmBuffer) {
				samples[n] = d.pcmBuffer[d.pcmOffset]
				d.pcmOffset++
				n++
			}
			continue
		}

		if d.currentIdx >= d.container.SampleCount() {
			if n > 0 {
				return n, true
			}
			return 0, false
		}

		sampleData, err := d.container.ReadSample(d.currentIdx)
		if err != nil {
			d.err = err
			return n, n > 0
		}
		d.currentIdx++

		switch d.codecType {
		case m4a.CodecAAC:
			pcm, err := d.aacDecoder.Decode(context.Background(), sampleData)
			if err != nil {
				d.err = err
				return n, n > 0
			}
			d.pcmBuffer = d.int16ToStereo(pcm)

		case m4a.CodecALAC:
			rawPCM := d.alacDecoder.Decode(sampleData)
			d.pcmBuffer = d.alacBytesToStereo(rawPCM)

		case m4a.CodecUnknown:
			d.err = errors.New("unsupported codec")
			return n, n > 0
		}

		d.pcmOffset = 0
	}

	return n, true
}

func (d *m4aDecoder) int16ToStereo(pcm []int16) [][2]float64 {
	if d.channels == 2 {
		frames := make([][2]float64, len(pcm)/2)
		for i := range frames {
			frames[i][0] = float64(pcm[i*2]) / 32768.0
			frames[i][1] = float64(pcm[i*2+1]) / 32768.0
		}
		return frames
	}
	// Mono: duplicate to both channels
	frames := make([][2]float64, len(pcm))
	for i, sample := range pcm {
		v := float64(sample) / 32768.0
		frames[i][0] = v
		frames[i][1] = v
	}
	return frames
}

// alacBytesToStereo converts ALAC raw PCM bytes to float64 stereo
// frames, handling 16-bit and 24-bit sample sizes.
func (d *m4aDecoder) alacBytesToStereo(data []byte) [][2]float64 {
	if d.sampleSize == 24 {
		return d.alac24BitToStereo(data)
	}
	return d.alac16BitToStereo(data)
}

func (d *m4aDecoder) alac24BitToStereo(data []byte) [][2]float64 {
	bytesPerFrame := 3 * d.channels
	frameCount := len(data) / bytesPerFrame
	frames := make([][2]float64, frameCount)

	for i := range frameCount {
		offset := i * bytesPerFrame
		// 24-bit little-endian, sign-extend to int32
		left := int32(data[offset]) | int32(data[offset+1])<<8 | int32(data[offset+2])<<16
		if left&0x800000 != 0 {
			left |= ^0xFFFFFF
		}

		right := left
		if d.channels == 2 {
			right = int32(data[offset+3]) | int32(data[offset+4])<<8 | int32(data[offset+5])<<16
			if right&0x800000 != 0 {
				right |= ^0xFFFFFF
			}
		}

		frames[i][0] = float64(left) / 8388608.0 // 2^23
		frames[i][1] = float64(right) / 8388608.0
	}
	return frames
}

func (d *m4aDecoder) alac16BitToStereo(data []byte) [][2]float64 {
	bytesPerFrame := 2 * d.channels
	frameCount := len(data) / bytesPerFrame
	frames := make([][2]float64, frameCount)

	for i := range frameCount {
		offset := i * bytesPerFrame
		left := int16(data[offset]) | int16(data[offset+1])<<8

		right := left
		if d.channels == 2 {
			right = int16(data[offset+2]) | int16(data[offset+3])<<8
		}

		frames[i][0] = float64(left) / 32768.0
		frames[i][1] = float64(right) / 32768.0
	}
	return frames
}

func (d *m4aDecoder) Err() error {
	return d.err
}

func (d *m4aDecoder) Len() int {
	return d.totalLen
}

func (d *m4aDecoder) Position() int {
	pos := d.container.SampleTime(d.currentIdx)
	return int(pos.Seconds() * float64(d.container.SampleRate()))
}

func (d *m4aDecoder) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if p > d.totalLen {
		p = d.totalLen
	}

	pos := time.Duration(float64(p) / float64(d.container.SampleRate()) * float64(time.Second))

	d.currentIdx = d.container.SeekToTime(pos)
	d.pcmBuffer = nil
	d.pcmOffset = 0
	d.err = nil

	return nil
}

func (d *m4aDecoder) Close() error {
	if d.aacDecoder != nil {
		d.aacDecoder.Close(context.Background())
	}
	// The ALAC decoder has no explicit close
	return d.closer.Close()
}
