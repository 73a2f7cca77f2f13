package playback

import "time"

// Command is a request for the engine to change playback state. Commands
// from any goroutine are queued through Enqueue and applied one at a time
// by the engine goroutine, in arrival order.
type Command interface {
	command()
}

// Play starts the current track, resumes a paused one, or starts the
// first track in play order when nothing is loaded.
type Play struct{}

// Pause pauses playback. No-op unless playing.
type Pause struct{}

// TogglePlay toggles between playing and paused, starting playback when
// stopped.
type TogglePlay struct{}

// Next advances to the next track in play order.
type Next struct{}

// Previous restarts the current track when more than three seconds in,
// otherwise moves to the previous track in play order.
type Previous struct{}

// SeekRelative seeks by a signed delta, clamped to the track bounds.
type SeekRelative struct {
	Delta time.Duration
}

// SeekAbsolute seeks to a position, clamped to the track bounds.
type SeekAbsolute struct {
	Position time.Duration
}

// SetVolume sets the volume level, clamped to [0, 1].
type SetVolume struct {
	Level float64
}

// VolumeDelta adjusts the volume level by a signed delta, clamped to [0, 1].
type VolumeDelta struct {
	Delta float64
}

// SetSpeed sets the playback speed ratio, clamped to [0.25, 3.0].
type SetSpeed struct {
	Ratio float64
}

// SpeedDelta adjusts the playback speed by a signed delta, clamped to
// [0.25, 3.0].
type SpeedDelta struct {
	Delta float64
}

// SelectTrack jumps to the library track with the given ID and plays it.
type SelectTrack struct {
	ID int
}

// ToggleShuffle toggles shuffle. Turning it on rebuilds the play order as
// a permutation anchored at the current track; turning it off restores
// library order at the current track.
type ToggleShuffle struct{}

// CycleRepeat cycles the repeat mode: Off -> All -> One -> Off.
type CycleRepeat struct{}

// CycleVisualizer cycles the visualizer mode: bars -> waveform -> off.
type CycleVisualizer struct{}

// CycleTheme cycles the color theme.
type CycleTheme struct{}

// CycleSleepTimer cycles the sleep timer: off -> 15m -> 30m -> 45m ->
// 60m -> off.
type CycleSleepTimer struct{}

// Quit stops playback and shuts the engine down.
type Quit struct{}

func (Play) command()            {}
func (Pause) command()           {}
func (TogglePlay) command()      {}
func (Next) command()            {}
func (Previous) command()        {}
func (SeekRelative) command()    {}
func (SeekAbsolute) command()    {}
func (SetVolume) command()       {}
func (VolumeDelta) command()     {}
func (SetSpeed) command()        {}
func (SpeedDelta) command()      {}
func (SelectTrack) command()     {}
func (ToggleShuffle) command()   {}
func (CycleRepeat) command()     {}
func (CycleVisualizer) command() {}
func (CycleTheme) command()      {}
func (CycleSleepTimer) command() {}
func (Quit) command()            {}
