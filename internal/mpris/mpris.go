//go:build linux

// Package mpris exposes playback control to desktop environments over
// D-Bus via the org.mpris.MediaPlayer2 interfaces.
package mpris

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/chime/internal/library"
	"github.com/llehouerou/chime/internal/playback"
	"github.com/llehouerou/chime/internal/player"
)

// Adapter bridges desktop media controls to the playback engine.
// Control methods enqueue commands; property reads answer from the
// latest broadcast snapshot, so the adapter never touches engine state
// directly.
type Adapter struct {
	engine *playback.Engine
	sub    *playback.Subscription
	server *server.Server
	done   chan struct{}

	mu     sync.Mutex
	status playback.Status
}

// New subscribes to the engine and starts serving the MPRIS interfaces
// on the session bus.
func New(engine *playback.Engine) (*Adapter, error) {
	if _, err := dbus.SessionBus(); err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}

	a := &Adapter{
		engine: engine,
		sub:    engine.Subscribe(),
		done:   make(chan struct{}),
	}
	a.server = server.NewServer("chime", &rootAdapter{a: a}, &playerAdapter{a: a})

	go a.follow()
	go func() {
		if err := a.server.Listen(); err != nil {
			slog.Warn("mpris server stopped", "error", err)
		}
	}()

	return a, nil
}

// Close stops following the engine and releases the bus name.
func (a *Adapter) Close() error {
	a.engine.Unsubscribe(a.sub)
	close(a.done)
	return a.server.Stop()
}

// follow keeps the cached snapshot current. It exits when the adapter
// is closed or the engine shuts down.
func (a *Adapter) follow() {
	for {
		select {
		case st := <-a.sub.Status:
			a.mu.Lock()
			a.status = st
			a.mu.Unlock()
		case <-a.sub.Done:
			return
		case <-a.done:
			return
		}
	}
}

func (a *Adapter) latest() playback.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct {
	a *Adapter
}

func (r *rootAdapter) Raise() error {
	return nil // terminal app, nothing to raise
}

func (r *rootAdapter) Quit() error {
	r.a.engine.Enqueue(playback.Quit{})
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return true, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Chime", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{
		"audio/mpeg", "audio/flac", "audio/wav",
		"audio/ogg", "audio/mp4", "audio/aac",
	}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter plus the
// optional LoopStatus and Shuffle interfaces.
type playerAdapter struct {
	a *Adapter
}

func (p *playerAdapter) Next() error {
	p.a.engine.Enqueue(playback.Next{})
	return nil
}

func (p *playerAdapter) Previous() error {
	p.a.engine.Enqueue(playback.Previous{})
	return nil
}

func (p *playerAdapter) Pause() error {
	p.a.engine.Enqueue(playback.Pause{})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.a.engine.Enqueue(playback.TogglePlay{})
	return nil
}

// Stop pauses and rewinds. The engine has no dedicated stop transition;
// a paused session at zero is the resumable equivalent.
func (p *playerAdapter) Stop() error {
	p.a.engine.Enqueue(playback.Pause{})
	p.a.engine.Enqueue(playback.SeekAbsolute{Position: 0})
	return nil
}

func (p *playerAdapter) Play() error {
	p.a.engine.Enqueue(playback.Play{})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.a.engine.Enqueue(playback.SeekRelative{Delta: time.Duration(offset) * time.Microsecond})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.a.engine.Enqueue(playback.SeekAbsolute{Position: time.Duration(position) * time.Microsecond})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // library is fixed at startup
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.a.latest().Transport {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	if s := p.a.latest().Speed; s > 0 {
		return s, nil
	}
	return 1.0, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	if rate > 0 {
		p.a.engine.Enqueue(playback.SetSpeed{Ratio: rate})
	}
	return nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return player.MinSpeed, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return player.MaxSpeed, nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.a.latest()
	if st.Track == nil {
		return types.Metadata{}, nil
	}

	length := st.Duration
	if length == 0 {
		length = st.Track.Duration
	}
	meta := types.Metadata{
		TrackId:     trackObjectPath(st.Track.ID),
		Length:      types.Microseconds(length.Microseconds()),
		Title:       st.Track.Title,
		Artist:      []string{st.Track.Artist},
		Album:       st.Track.Album,
		TrackNumber: st.Track.TrackNumber,
	}
	if art := library.CoverArt(st.Track.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.a.latest().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.a.engine.Enqueue(playback.SetVolume{Level: v})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.a.latest().Position.Microseconds(), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	st := p.a.latest()
	return st.QueueLen > 0 && (st.Repeat != playback.RepeatOff || st.QueueIndex+1 < st.QueueLen), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	// Previous restarts the current track when past the threshold, so
	// it is meaningful whenever something is loaded.
	return p.a.latest().Track != nil, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.a.latest().QueueLen > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch p.a.latest().Repeat {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll:
		return types.LoopStatusPlaylist, nil
	case playback.RepeatOff:
		return types.LoopStatusNone, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Repeat is only reachable through cycling, so the gap to the requested
// mode is covered by as many cycle commands as it takes.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	var want playback.RepeatMode
	switch status {
	case types.LoopStatusNone:
		want = playback.RepeatOff
	case types.LoopStatusTrack:
		want = playback.RepeatOne
	case types.LoopStatusPlaylist:
		want = playback.RepeatAll
	default:
		return fmt.Errorf("unsupported loop status %q", status)
	}

	for cur := p.a.latest().Repeat; cur != want; cur = cur.Cycle() {
		p.a.engine.Enqueue(playback.CycleRepeat{})
	}
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.a.latest().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.a.latest().Shuffle != shuffle {
		p.a.engine.Enqueue(playback.ToggleShuffle{})
	}
	return nil
}

func trackObjectPath(id int) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("/org/mpris/MediaPlayer2/chime/track/%d", id))
}
