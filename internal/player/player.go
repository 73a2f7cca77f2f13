// Package player owns the decode and output pipeline for a single
// track: it opens the file, picks a decoder for the container format,
// and drives the speaker through a chain that taps samples for the
// visualizer, applies pause, playback speed and volume.
//
// All methods are expected to be called from one goroutine (the
// playback engine); the seek loop and the speaker callback are the
// only internal goroutines.
package player

import (
	"os"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

const (
	// seekRequests buffers at most one pending seek; newer requests
	// replace older ones that have not started yet.
	seekBuffer = 1

	// sampleChanBuffer bounds the visualizer feed. The analyzer reads
	// slower than real time at worst; stale windows are dropped.
	sampleChanBuffer = 4
)

// MinSpeed and MaxSpeed bound the playback speed ratio.
const (
	MinSpeed = 0.25
	MaxSpeed = 3.0
)

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

type seekRequest struct {
	target   time.Duration
	relative bool
}

// Player plays one audio file at a time through the speaker.
type Player struct {
	state    State
	streamer beep.StreamSeekCloser
	format   beep.Format
	file     *os.File

	ctrl     *beep.Ctrl
	speedRes *beep.Resampler
	volume   *effects.Volume

	volumeLevel float64
	speed       float64

	seekChan   chan seekRequest
	finishedCh chan struct{}
	samplesCh  chan []float64
}

// New creates a player with the given initial volume level.
func New(volumeLevel float64) *Player {
	p := &Player{
		state:       Stopped,
		volumeLevel: volumeLevel,
		speed:       1.0,
		seekChan:    make(chan seekRequest, seekBuffer),
		finishedCh:  make(chan struct{}, 1),
		samplesCh:   make(chan []float64, sampleChanBuffer),
	}
	go p.seekLoop()
	return p
}

// State returns the current transport state.
func (p *Player) State() State { return p.state }

// Duration returns the total duration of the current track.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// FinishedChan signals once when the current track plays to its end.
// Stop and track swaps do not signal.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}

// Samples returns the visualizer feed: mono sample windows captured
// from the decode chain roughly 30 times per second while audio is
// flowing.
func (p *Player) Samples() <-chan []float64 {
	return p.samplesCh
}
