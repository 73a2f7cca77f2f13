package playback

import (
	"time"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/spectrum"
)

// Status is a snapshot of the engine state, delivered to subscribers
// after every applied command and periodically while playback is active.
// Track is nil when nothing is loaded.
type Status struct {
	Track      *library.Track
	QueueIndex int // position in play order, -1 when nothing is loaded
	QueueLen   int

	Transport State
	Position  time.Duration
	Duration  time.Duration

	Volume  float64
	Speed   float64
	Shuffle bool
	Repeat  RepeatMode

	Visualizer spectrum.Mode
	Theme      string

	// SleepRemaining is the time until the sleep timer pauses playback,
	// zero when the timer is off.
	SleepRemaining time.Duration

	// Err describes the most recent playback failure. It stays set while
	// failing tracks are skipped over and clears on the next clean start.
	Err string
}
