package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback and releases the decode session.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.ctrl = nil
	p.speedRes = nil
	p.volume = nil
	p.state = Stopped
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	switch p.state {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

// Position returns the current playback position. It is derived from
// decoder frames consumed, so speed changes and pauses never drift it
// from the audible output.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	// Read position without the speaker lock - may be slightly stale
	// but avoids deadlocks.
	return p.format.SampleRate.D(p.streamer.Position())
}

// SeekRelative moves the playback position by the given delta.
// Non-blocking: a pending unprocessed seek is replaced.
func (p *Player) SeekRelative(delta time.Duration) {
	p.enqueueSeek(seekRequest{target: delta, relative: true})
}

// SeekAbsolute moves the playback position to the given offset,
// clamped to the track bounds. Non-blocking like SeekRelative.
func (p *Player) SeekAbsolute(pos time.Duration) {
	p.enqueueSeek(seekRequest{target: pos})
}

func (p *Player) enqueueSeek(req seekRequest) {
	if p.streamer == nil || p.state == Stopped {
		return
	}

	select {
	case p.seekChan <- req:
	default:
		// Channel full, drain the stale request and send the new one
		select {
		case <-p.seekChan:
		default:
		}
		select {
		case p.seekChan <- req:
		default:
		}
	}
}

// seekLoop processes seek requests sequentially. Only the most recent
// pending seek is processed, older ones are dropped.
func (p *Player) seekLoop() {
	for req := range p.seekChan {
		p.doSeek(req)
	}
}

func (p *Player) doSeek(req seekRequest) {
	// Quick check without lock - if already stopped, skip entirely
	if p.streamer == nil || p.state == Stopped || p.volume == nil {
		return
	}

	streamer := p.streamer
	if streamer == nil {
		return
	}
	maxPos := streamer.Len()

	var newPos int
	if req.relative {
		newPos = streamer.Position() + p.format.SampleRate.N(req.target)
	} else {
		newPos = p.format.SampleRate.N(req.target)
	}

	// Seeking at or past the end finishes the track; the engine then
	// advances per its repeat/shuffle policy.
	if newPos >= maxPos {
		select {
		case p.finishedCh <- struct{}{}:
		default:
		}
		return
	}

	speaker.Lock()
	// Re-check under lock in case Stop() was called
	if p.streamer == nil || p.state == Stopped || p.volume == nil {
		speaker.Unlock()
		return
	}

	newPos = max(newPos, 0)

	// Mute, seek, then unmute to avoid audible artifacts from stale
	// resampler buffers
	p.volume.Silent = true
	_ = p.streamer.Seek(newPos)
	speaker.Unlock()

	// Brief pause to let the buffer clear before unmuting
	time.Sleep(100 * time.Millisecond)

	if p.volume == nil || p.state == Stopped {
		return
	}

	speaker.Lock()
	if p.volume != nil {
		p.volume.Silent = p.volumeLevel <= 0
	}
	speaker.Unlock()
}
