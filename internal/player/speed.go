package player

import "github.com/gopxl/beep/v2/speaker"

// SetSpeed sets the playback speed multiplier, clamped to
// [MinSpeed, MaxSpeed]. Speed is a plain resampling ratio change, so
// pitch shifts with it.
func (p *Player) SetSpeed(ratio float64) {
	if ratio < MinSpeed {
		ratio = MinSpeed
	}
	if ratio > MaxSpeed {
		ratio = MaxSpeed
	}

	p.speed = ratio

	if p.speedRes != nil {
		speaker.Lock()
		p.speedRes.SetRatio(ratio)
		speaker.Unlock()
	}
}

// Speed returns the current speed multiplier.
func (p *Player) Speed() float64 {
	return p.speed
}
