package playback

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/player"
	"github.com/llehouerou/chime/internal/spectrum"
)

const (
	// commandBufferSize bounds the command queue. Producers never block:
	// commands beyond this are dropped and logged.
	commandBufferSize = 64

	// tickInterval drives position updates and the sleep timer.
	tickInterval = 100 * time.Millisecond

	// restartThreshold is how far into a track Previous restarts it
	// instead of moving back.
	restartThreshold = 3 * time.Second

	// sleepFadeWindow is the stretch before sleep expiry during which
	// the volume fades linearly to zero.
	sleepFadeWindow = time.Minute
)

// sleepSteps are the sleep timer durations in cycle order.
var sleepSteps = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	45 * time.Minute,
	60 * time.Minute,
}

// Options configures the initial engine state.
type Options struct {
	Volume     float64
	Shuffle    bool
	Repeat     RepeatMode
	Theme      string
	Visualizer spectrum.Mode
}

// Engine owns all playback state. It consumes commands from a bounded
// queue and applies them on a single goroutine; observers get state
// through subscriptions, never by reading engine fields.
type Engine struct {
	player   player.Interface
	library  *library.Library
	analyzer *spectrum.Analyzer
	bc       *Broadcaster

	cmds chan Command
	done chan struct{}

	// Fields below are owned by the Run goroutine.
	order      *playOrder
	volume     float64
	speed      float64
	shuffle    bool
	repeat     RepeatMode
	themeIdx   int
	visualizer spectrum.Mode
	lastErr    string

	sleepIdx int       // index into sleepSteps, -1 when off
	sleepAt  time.Time // expiry deadline, zero when off
}

// New creates an engine over the given player and library. The analyzer
// is optional; when present the engine forwards its frames to
// subscribers and keeps its mode in sync with the visualizer setting.
func New(p player.Interface, lib *library.Library, analyzer *spectrum.Analyzer, opts Options) *Engine {
	e := &Engine{
		player:     p,
		library:    lib,
		analyzer:   analyzer,
		bc:         NewBroadcaster(),
		cmds:       make(chan Command, commandBufferSize),
		done:       make(chan struct{}),
		order:      newPlayOrder(lib.Len()),
		volume:     lo.Clamp(opts.Volume, 0, 1),
		speed:      1.0,
		shuffle:    opts.Shuffle,
		repeat:     opts.Repeat,
		visualizer: opts.Visualizer,
		sleepIdx:   -1,
	}
	for i, name := range themes {
		if name == opts.Theme {
			e.themeIdx = i
			break
		}
	}
	if e.shuffle {
		e.order.shuffle()
	}
	if analyzer != nil {
		analyzer.SetMode(e.visualizer)
	}
	return e
}

// Enqueue hands a command to the engine without blocking. When the
// queue is full the command is dropped and logged.
func (e *Engine) Enqueue(cmd Command) {
	select {
	case e.cmds <- cmd:
	default:
		slog.Warn("command queue full, dropping command", "command", fmt.Sprintf("%T", cmd))
	}
}

// Subscribe registers an observer for status and spectrum snapshots.
func (e *Engine) Subscribe() *Subscription { return e.bc.Subscribe() }

// Unsubscribe removes an observer.
func (e *Engine) Unsubscribe(sub *Subscription) { e.bc.Unsubscribe(sub) }

// Done is closed once the engine has shut down after a Quit command.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Run applies commands until Quit arrives. It is the only goroutine
// that touches playback state.
func (e *Engine) Run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	finished := e.player.FinishedChan()
	var frames <-chan spectrum.Snapshot
	if e.analyzer != nil {
		frames = e.analyzer.Snapshots()
	}

	e.player.SetVolume(e.volume)
	e.broadcast()

	for {
		select {
		case cmd := <-e.cmds:
			if _, quit := cmd.(Quit); quit {
				e.shutdown()
				return
			}
			e.apply(cmd)
			e.broadcast()
		case <-finished:
			e.advance()
			e.broadcast()
		case snap := <-frames:
			e.bc.BroadcastSpectrum(snap)
		case <-ticker.C:
			if e.tick() {
				e.broadcast()
			}
		}
	}
}

func (e *Engine) apply(cmd Command) {
	switch c := cmd.(type) {
	case Play:
		e.play()
	case Pause:
		e.player.Pause()
	case TogglePlay:
		e.toggle()
	case Next:
		e.next()
	case Previous:
		e.previous()
	case SeekRelative:
		if _, ok := e.order.current(); ok {
			e.player.SeekRelative(c.Delta)
		}
	case SeekAbsolute:
		if _, ok := e.order.current(); ok {
			e.player.SeekAbsolute(c.Position)
		}
	case SetVolume:
		e.setVolume(c.Level)
	case VolumeDelta:
		e.setVolume(e.volume + c.Delta)
	case SetSpeed:
		e.setSpeed(c.Ratio)
	case SpeedDelta:
		e.setSpeed(e.speed + c.Delta)
	case SelectTrack:
		if e.order.moveTo(c.ID) {
			e.startCurrent()
		}
	case ToggleShuffle:
		e.toggleShuffle()
	case CycleRepeat:
		e.repeat = e.repeat.Cycle()
	case CycleVisualizer:
		e.visualizer = e.visualizer.Cycle()
		if e.analyzer != nil {
			e.analyzer.SetMode(e.visualizer)
		}
	case CycleTheme:
		e.themeIdx = (e.themeIdx + 1) % len(themes)
	case CycleSleepTimer:
		e.cycleSleepTimer()
	}
}

// play starts the first track in play order when nothing is loaded,
// resumes when paused, and otherwise leaves a playing track alone.
func (e *Engine) play() {
	if _, ok := e.order.current(); !ok {
		if _, ok := e.order.first(); ok {
			e.startCurrent()
		}
		return
	}
	switch e.player.State() {
	case player.Paused:
		e.player.Resume()
	case player.Stopped:
		e.startCurrent()
	case player.Playing:
		// Already playing
	}
}

func (e *Engine) toggle() {
	if e.player.State() == player.Stopped {
		e.play()
		return
	}
	e.player.Toggle()
}

// next advances in play order: wraps under repeat All, stops past the
// last track otherwise.
func (e *Engine) next() {
	if e.advanceOrder() {
		e.startCurrent()
	} else {
		e.stop()
	}
}

// previous restarts the current track when more than restartThreshold
// in, otherwise steps back in play order. At the front it wraps under
// repeat All and restarts the track otherwise.
func (e *Engine) previous() {
	if _, ok := e.order.current(); !ok {
		return
	}
	if e.player.Position() > restartThreshold {
		e.player.SeekAbsolute(0)
		return
	}
	if _, ok := e.order.prev(); ok {
		e.startCurrent()
		return
	}
	if e.repeat == RepeatAll {
		if _, ok := e.order.last(); ok {
			e.startCurrent()
		}
		return
	}
	e.player.SeekAbsolute(0)
}

// advance reacts to a track finishing on its own. Repeat One replays
// the track; otherwise playback moves on like Next.
func (e *Engine) advance() {
	if _, ok := e.order.current(); !ok {
		return
	}
	if e.repeat == RepeatOne {
		e.startCurrent()
		return
	}
	e.next()
}

// advanceOrder moves the order to the track after the current one,
// wrapping under repeat All. It does not start playback.
func (e *Engine) advanceOrder() bool {
	if _, ok := e.order.next(); ok {
		return true
	}
	if e.repeat == RepeatAll {
		_, ok := e.order.first()
		return ok
	}
	return false
}

// startCurrent plays the track the order points at. Tracks that fail to
// decode are skipped, keeping the failure visible to subscribers until
// a track starts cleanly. If every candidate fails, playback stops.
func (e *Engine) startCurrent() {
	failed := false
	for range e.order.len() {
		id, ok := e.order.current()
		if !ok {
			break
		}
		track, ok := e.library.Get(id)
		if !ok {
			break
		}
		if err := e.player.Play(track.Path); err != nil {
			failed = true
			e.lastErr = err.Error()
			slog.Warn("cannot play track, skipping", "path", track.Path, "error", err)
			if !e.advanceOrder() {
				break
			}
			continue
		}
		if !failed {
			e.lastErr = ""
		}
		return
	}
	e.stop()
}

// stop halts the player and unloads the current track.
func (e *Engine) stop() {
	e.player.Stop()
	e.order.clear()
}

func (e *Engine) toggleShuffle() {
	e.shuffle = !e.shuffle
	if e.shuffle {
		e.order.shuffle()
	} else {
		e.order.restore()
	}
}

func (e *Engine) setVolume(level float64) {
	e.volume = lo.Clamp(level, 0, 1)
	e.applyPlayerVolume()
}

func (e *Engine) setSpeed(ratio float64) {
	e.speed = lo.Clamp(ratio, player.MinSpeed, player.MaxSpeed)
	e.player.SetSpeed(e.speed)
}

// cycleSleepTimer arms the next sleep duration, or disarms after the
// last step and restores the volume.
func (e *Engine) cycleSleepTimer() {
	e.sleepIdx++
	if e.sleepIdx >= len(sleepSteps) {
		e.disarmSleep()
		return
	}
	e.sleepAt = time.Now().Add(sleepSteps[e.sleepIdx])
	e.applyPlayerVolume()
}

func (e *Engine) disarmSleep() {
	e.sleepIdx = -1
	e.sleepAt = time.Time{}
	e.applyPlayerVolume()
}

// tick drives the sleep timer and reports whether subscribers need a
// periodic snapshot. Position updates only matter while playing or
// while a sleep countdown is running.
func (e *Engine) tick() bool {
	if e.sleepIdx >= 0 {
		remaining := time.Until(e.sleepAt)
		if remaining <= 0 {
			e.disarmSleep()
			e.player.Pause()
			return true
		}
		if remaining < sleepFadeWindow {
			e.applyPlayerVolume()
		}
		return true
	}
	return e.player.State() == player.Playing
}

// applyPlayerVolume pushes the effective volume to the player: the set
// level, scaled down linearly over the final minute of a sleep
// countdown.
func (e *Engine) applyPlayerVolume() {
	level := e.volume
	if e.sleepIdx >= 0 {
		if remaining := time.Until(e.sleepAt); remaining < sleepFadeWindow {
			level *= float64(remaining) / float64(sleepFadeWindow)
			if level < 0 {
				level = 0
			}
		}
	}
	e.player.SetVolume(level)
}

func (e *Engine) broadcast() {
	e.bc.BroadcastStatus(e.snapshot())
}

func (e *Engine) snapshot() Status {
	st := Status{
		QueueIndex: e.order.position(),
		QueueLen:   e.order.len(),
		Transport:  transportState(e.player.State()),
		Position:   e.player.Position(),
		Duration:   e.player.Duration(),
		Volume:     e.volume,
		Speed:      e.speed,
		Shuffle:    e.shuffle,
		Repeat:     e.repeat,
		Visualizer: e.visualizer,
		Theme:      themes[e.themeIdx],
		Err:        e.lastErr,
	}
	if id, ok := e.order.current(); ok {
		if track, ok := e.library.Get(id); ok {
			st.Track = &track
		}
	}
	if e.sleepIdx >= 0 {
		if remaining := time.Until(e.sleepAt); remaining > 0 {
			st.SleepRemaining = remaining
		}
	}
	return st
}

// transportState maps the audio backend state onto the engine transport.
func transportState(s player.State) State {
	switch s {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// shutdown stops playback and releases observers. Run returns right
// after.
func (e *Engine) shutdown() {
	e.player.Stop()
	if e.analyzer != nil {
		e.analyzer.Stop()
	}
	e.bc.Close()
	close(e.done)
}
