package player

import "time"

// Interface defines the player contract for dependency injection and
// testing.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekRelative(delta time.Duration)
	SeekAbsolute(pos time.Duration)
	SetVolume(level float64)
	Volume() float64
	SetSpeed(ratio float64)
	Speed() float64
	FinishedChan() <-chan struct{}
	Samples() <-chan []float64
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
