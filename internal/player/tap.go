package player

import "github.com/gopxl/beep/v2"

// visualizerWindowsPerSecond controls how often the tap emits a mono
// window, roughly matching a 30 fps visualizer refresh.
const visualizerWindowsPerSecond = 30

// sampleTap forwards samples unchanged while collecting a mono
// downmix. Every ~1/30 s of audio it emits the collected window on the
// samples channel with a non-blocking send, so a slow or absent reader
// never stalls the output stage.
type sampleTap struct {
	s      beep.Streamer
	out    chan<- []float64
	buf    []float64
	window int
}

func newSampleTap(s beep.Streamer, sampleRate int, out chan<- []float64) *sampleTap {
	window := sampleRate / visualizerWindowsPerSecond
	if window <= 0 {
		window = 1
	}
	return &sampleTap{
		s:      s,
		out:    out,
		buf:    make([]float64, 0, window),
		window: window,
	}
}

func (t *sampleTap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.s.Stream(samples)

	for i := range n {
		t.buf = append(t.buf, (samples[i][0]+samples[i][1])/2)
		if len(t.buf) >= t.window {
			t.flush()
		}
	}

	return n, ok
}

func (t *sampleTap) flush() {
	window := make([]float64, len(t.buf))
	copy(window, t.buf)
	t.buf = t.buf[:0]

	select {
	case t.out <- window:
	default:
		// Reader is behind; drop this window
	}
}

func (t *sampleTap) Err() error {
	return t.s.Err()
}
