package spectrum

import (
	"math"
	"math/cmplx"
	"sync/atomic"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

const (
	// NumBands is the number of spectrum bins in a snapshot.
	NumBands = 64

	// WaveformWidth is the number of waveform columns in a snapshot.
	WaveformWidth = 200

	fftSize         = 2048
	smoothingFactor = 0.35
	refreshInterval = 33 * time.Millisecond // ~30 Hz

	barDecay  = 0.85
	peakDecay = 0.92
)

// Analyzer consumes mono sample windows from the player and produces
// one Snapshot per refresh interval. It runs on its own cadence and
// never blocks the audio path: the sample channel is fed with
// non-blocking sends on the player side, and snapshots are emitted
// with drop-oldest semantics.
type Analyzer struct {
	samples <-chan []float64
	out     chan Snapshot
	mode    atomic.Int32
	done    chan struct{}

	window   []float64 // rolling buffer of the last fftSize samples
	latest   []float64 // most recent raw window, for the waveform view
	fresh    bool
	bars     []float64
	prevBars []float64
	peaks    []float64
	waveform []float64
	hann     []float64
}

// NewAnalyzer creates an analyzer reading from the given sample feed.
func NewAnalyzer(samples <-chan []float64, initial Mode) *Analyzer {
	hann := make([]float64, fftSize)
	for i := range hann {
		hann[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}

	a := &Analyzer{
		samples:  samples,
		out:      make(chan Snapshot, 2),
		done:     make(chan struct{}),
		window:   make([]float64, 0, fftSize),
		bars:     make([]float64, NumBands),
		prevBars: make([]float64, NumBands),
		peaks:    make([]float64, NumBands),
		waveform: make([]float64, WaveformWidth),
		hann:     hann,
	}
	a.mode.Store(int32(initial))
	return a
}

// SetMode switches the visualization. Safe to call from any goroutine;
// switching never affects audio output.
func (a *Analyzer) SetMode(m Mode) {
	a.mode.Store(int32(m))
}

// Mode returns the active visualization mode.
func (a *Analyzer) Mode() Mode {
	return Mode(a.mode.Load())
}

// Snapshots returns the stream of visualizer frames.
func (a *Analyzer) Snapshots() <-chan Snapshot {
	return a.out
}

// Stop terminates the Run loop.
func (a *Analyzer) Stop() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

// Run ingests samples and emits snapshots until Stop is called. Meant
// to run on its own goroutine.
func (a *Analyzer) Run() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return
		case window := <-a.samples:
			a.ingest(window)
		case <-ticker.C:
			mode := a.Mode()
			if mode == ModeOff {
				// The samples case keeps draining the feed; just skip
				// the transform to save CPU.
				continue
			}
			if a.fresh {
				a.process(mode)
				a.fresh = false
			} else {
				a.decay()
			}
			a.emit(mode)
		}
	}
}

// ingest appends a mono window to the rolling buffer, trimming it to
// the FFT size.
func (a *Analyzer) ingest(window []float64) {
	a.latest = window
	a.window = append(a.window, window...)
	if excess := len(a.window) - fftSize; excess > 0 {
		a.window = a.window[excess:]
	}
	a.fresh = true
}

func (a *Analyzer) process(mode Mode) {
	switch mode {
	case ModeBars:
		a.processFFT()
	case ModeWaveform:
		a.processWaveform()
	case ModeOff:
	}
}

// processFFT computes the smoothed, normalized log-spaced spectrum
// from the rolling window.
func (a *Analyzer) processFFT() {
	input := make([]float64, fftSize)
	copy(input, a.window)
	for i := range min(len(a.window), fftSize) {
		input[i] *= a.hann[i]
	}

	coeffs := fft.FFTReal(input)

	// Magnitudes of the positive frequencies
	half := fftSize / 2
	magnitudes := make([]float64, half)
	for i := range half {
		magnitudes[i] = cmplx.Abs(coeffs[i]) / float64(half)
	}

	// Bin into logarithmically spaced bands
	newBars := make([]float64, NumBands)
	for band := range NumBands {
		lo := logBinStart(band, NumBands, half)
		hi := logBinStart(band+1, NumBands, half)
		lo = min(lo, half)
		hi = max(min(hi, half), lo+1)

		var sum float64
		for _, m := range magnitudes[lo:hi] {
			sum += m
		}
		newBars[band] = sum / float64(hi-lo)
	}

	// Exponential moving average against the previous frame
	for i := range NumBands {
		a.bars[i] = a.prevBars[i]*(1-smoothingFactor) + newBars[i]*smoothingFactor
	}
	copy(a.prevBars, a.bars)

	// Normalize to [0,1]
	var maxBar float64
	for _, b := range a.bars {
		maxBar = math.Max(maxBar, b)
	}
	if maxBar > 0.001 {
		for i := range a.bars {
			a.bars[i] = math.Min(a.bars[i]/maxBar, 1)
		}
	}

	// Peak hold
	for i, b := range a.bars {
		if b > a.peaks[i] {
			a.peaks[i] = b
		}
	}
}

// processWaveform downsamples the latest window into fixed-width
// columns, averaging each span for a smoother trace.
func (a *Analyzer) processWaveform() {
	if len(a.latest) == 0 {
		for i := range a.waveform {
			a.waveform[i] = 0
		}
		return
	}

	step := float64(len(a.latest)) / float64(WaveformWidth)
	for i := range WaveformWidth {
		start := int(float64(i) * step)
		end := min(int(float64(i+1)*step), len(a.latest))
		if start >= len(a.latest) {
			a.waveform[i] = 0
			continue
		}
		if end <= start {
			end = start + 1
		}

		var sum float64
		for _, s := range a.latest[start:end] {
			sum += s
		}
		a.waveform[i] = sum / float64(end-start)
	}
}

// decay fades the display toward silence when no new samples arrive
// (paused or stopped playback). Peaks fall slower than bars.
func (a *Analyzer) decay() {
	for i := range a.bars {
		a.bars[i] *= barDecay
	}
	for i := range a.peaks {
		a.peaks[i] *= peakDecay
	}
	for i := range a.waveform {
		a.waveform[i] *= barDecay
	}
	copy(a.prevBars, a.bars)
}

// emit publishes a snapshot, dropping the oldest pending one if the
// consumer is behind.
func (a *Analyzer) emit(mode Mode) {
	snap := Snapshot{Mode: mode}
	switch mode {
	case ModeBars:
		snap.Bars = append([]float64(nil), a.bars...)
		snap.Peaks = append([]float64(nil), a.peaks...)
	case ModeWaveform:
		snap.Waveform = append([]float64(nil), a.waveform...)
	case ModeOff:
		return
	}

	select {
	case a.out <- snap:
	default:
		select {
		case <-a.out:
		default:
		}
		select {
		case a.out <- snap:
		default:
		}
	}
}

// logBinStart computes the first FFT bin of a band using logarithmic
// spacing. Band 0 starts at bin 1, skipping the DC component.
func logBinStart(band, numBands, numBins int) int {
	if band == 0 {
		return 1
	}
	logMax := math.Log(float64(numBins))
	logPos := logMax * float64(band) / float64(numBands)
	return int(math.Exp(logPos))
}
